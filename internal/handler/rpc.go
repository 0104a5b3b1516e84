package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/protocol"
)

// RPCHandler carries the tool protocol over HTTP for clients that speak the
// JSON-RPC envelope but cannot attach to a stdio pipe.
type RPCHandler struct {
	handler *protocol.Handler
}

func NewRPCHandler(h *protocol.Handler) *RPCHandler {
	return &RPCHandler{handler: h}
}

// Serve handles POST /mcp. The JSON-RPC response is always written with
// HTTP 200; failures live in the envelope's error object, same as on stdio.
func (h *RPCHandler) Serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		models.WriteJSON(w, http.StatusOK,
			protocol.NewError(nil, protocol.CodeParseError, "unreadable request body", nil))
		return
	}

	resp := h.handler.HandleRaw(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
