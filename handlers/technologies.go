// handlers/technologies.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type CreateTechnologyRequest struct {
	Name string `json:"name"`
}

// GetTechnologies returns the full technology catalogue.
func GetTechnologies(c *fiber.Ctx) error {
	techs, err := technologyService.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "technologies": techs, "count": len(techs)})
}

// CreateTechnology adds a technology to the catalogue. Admin only.
func CreateTechnology(c *fiber.Ctx) error {
	var req CreateTechnologyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	tech, err := technologyService.Create(req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "technology": tech})
}

// DeleteTechnology removes a technology and its student/team links. Admin only.
func DeleteTechnology(c *fiber.Ctx) error {
	techID, err := c.ParamsInt("id")
	if err != nil || techID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid technology ID"})
	}

	if err := technologyService.Delete(uint(techID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
