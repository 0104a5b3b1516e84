package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/registry"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ToolsHandler exposes the registry over REST: discovery plus invocation.
type ToolsHandler struct {
	reg *registry.Registry
}

func NewToolsHandler(reg *registry.Registry) *ToolsHandler {
	return &ToolsHandler{reg: reg}
}

// List handles GET /tools
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.reg.List()
	descriptors := make([]models.ToolDescriptor, 0, len(list))
	for _, t := range list {
		descriptors = append(descriptors, models.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	models.WriteJSON(w, http.StatusOK, descriptors)
}

// Invoke handles POST /tools/{tool_name}. The request body is the arguments
// object; an empty body means no arguments.
func (h *ToolsHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool_name")

	args := map[string]any{}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, models.ErrorBody{
			Kind:    string(tools.KindInvalidParameters),
			Message: "could not read request body: " + err.Error(),
		})
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			models.WriteError(w, http.StatusBadRequest, models.ErrorBody{
				Kind:    string(tools.KindInvalidParameters),
				Message: "request body must be a JSON object: " + err.Error(),
			})
			return
		}
	}

	payload, err := h.reg.Dispatch(r.Context(), name, args)
	if err != nil {
		te := tools.AsError(err)
		log.Warn().Str("tool", name).Str("kind", string(te.Kind)).Msg("tool invocation failed")
		models.WriteError(w, te.HTTPStatus(), models.ErrorBody{
			Kind:    string(te.Kind),
			Message: te.Message,
			Context: te.Context,
		})
		return
	}

	models.WriteJSON(w, http.StatusOK, payload)
}
