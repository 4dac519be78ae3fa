package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/flags
// @Summary Evaluated feature flags for the caller
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	identity := caller(c)
	return c.JSON(s.flags.Snapshot(identity.UserID))
}
