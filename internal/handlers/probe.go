package handlers

import (
	"github.com/gofiber/fiber/v3"

	"keywordmatrix/internal/handlers/api"
	"keywordmatrix/internal/store"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store store.Store
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(s store.Store) *ProbeHandler {
	return &ProbeHandler{store: s}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return api.Success(c, fiber.StatusOK, nil)
}

// Readiness handles the /readyz endpoint. Returns 200 OK if the run store
// accepts writes.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		return api.Failure(c, fiber.StatusServiceUnavailable, "run store unavailable")
	}

	return api.Success(c, fiber.StatusOK, nil)
}
