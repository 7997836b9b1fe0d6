package api

import (
	"github.com/gofiber/fiber/v2"
)

// GetHealth reports liveness and how many routes each preview will query.
func (s *APIServer) GetHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Version: Version,
		Routes:  len(s.Routes),
	})
}
