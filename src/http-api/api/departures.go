package api

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/trmnl-departures/src/common/trmnl"
)

// GetDepartures renders the webhook body a send would post, without posting it.
func (s *APIServer) GetDepartures(c *fiber.Ctx) error {
	result, err := s.Board.Build(c.UserContext(), s.Routes)
	if err != nil {
		s.Logger.Errorw("failed to build departure board", "error", err)
		errStr := err.Error()
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Error:   "Upstream error",
			Message: "Failed to retrieve departures",
			Stack:   &errStr,
		})
	}

	payload, err := trmnl.Encode(result)
	if err != nil {
		errStr := err.Error()
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Encoding error",
			Message: "Failed to encode webhook payload",
			Stack:   &errStr,
		})
	}

	c.Set("X-Payload-Bytes", strconv.Itoa(len(payload)))
	c.Set("X-Payload-Oversized", strconv.FormatBool(trmnl.Oversized(payload)))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Send(payload)
}
