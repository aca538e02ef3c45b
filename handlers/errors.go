// handlers/errors.go - Service error to HTTP status mapping
package handlers

import (
	"errors"
	"log"

	"teamselect/services"

	"github.com/gofiber/fiber/v2"
)

func respondError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	status := 500
	switch {
	case services.IsNotFound(err):
		status = 404
	case services.IsForbidden(err):
		status = 403
	case services.IsBusiness(err):
		status = 409
	}

	if status == 500 {
		log.Printf("internal error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
