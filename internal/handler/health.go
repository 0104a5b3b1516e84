package handler

import (
	"net/http"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/registry"
)

// HealthHandler reports liveness and which capabilities came up. There is no
// per-provider connectivity probe: the providers are pay-per-call APIs and a
// health check must not burn quota.
type HealthHandler struct {
	reg *registry.Registry
}

func NewHealthHandler(reg *registry.Registry) *HealthHandler {
	return &HealthHandler{reg: reg}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	for _, name := range h.reg.Names() {
		checks[name] = "registered"
	}

	models.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status: "healthy",
		Server: "apifuse",
		Checks: checks,
	})
}
