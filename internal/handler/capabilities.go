package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/labelforge/api/internal/printer"
	"github.com/labelforge/api/pkg/response"
)

type CapabilitiesHandler struct {
	provider *printer.CapabilityProvider
}

func NewCapabilitiesHandler(p *printer.CapabilityProvider) *CapabilitiesHandler {
	return &CapabilitiesHandler{provider: p}
}

// Get handles GET /api/v1/capabilities
func (h *CapabilitiesHandler) Get(c *fiber.Ctx) error {
	return response.OK(c, h.provider.Capabilities(c.Context()))
}
