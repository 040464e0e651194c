package handler

import (
	"encoding/json"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// respondError writes err as {"error": msg} with the status of its kind.
// Internal causes are logged, never returned.
func respondError(c *fiber.Ctx, err error) error {
	ae := apperr.As(err)
	entry := logger.WithRequest(c)

	switch ae.Kind {
	case apperr.KindInternal:
		entry.WithError(ae.Err).Error(ae.Message)
	case apperr.KindUpstream:
		entry.WithError(ae.Err).WithField("upstream_status", ae.UpstreamStatus).Warn(ae.Message)
		if len(ae.UpstreamBody) > 0 && json.Valid(ae.UpstreamBody) {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(ae.StatusCode()).Send(ae.UpstreamBody)
		}
	default:
		entry.Debug(ae.Message)
	}

	return c.Status(ae.StatusCode()).JSON(fiber.Map{"error": ae.Message})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

// paramID parses a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return uint(id), nil
}
