// handlers/applications.go
package handlers

import (
	"teamselect/models"

	"github.com/gofiber/fiber/v2"
)

type CreateApplicationRequest struct {
	StudentID uint   `json:"student_id"`
	TeamID    uint   `json:"team_id"`
	Type      string `json:"type"`
}

type UpdateApplicationRequest struct {
	Status string `json:"status"`
}

// CreateApplication files a join request or an invite. The acting user must be
// the sender: the student for a request, the team's captain for an invite.
func CreateApplication(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.StudentID == 0 || req.TeamID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "student_id and team_id required"})
	}

	appType, err := models.ParseApplicationType(req.Type)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	app, err := applicationService.Create(req.StudentID, req.TeamID, appType, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "application": app})
}

// UpdateApplication moves an application through its lifecycle: accept,
// reject, cancel, or re-send.
func UpdateApplication(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	appID, err := c.ParamsInt("id")
	if err != nil || appID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid application ID"})
	}

	var req UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	app, err := applicationService.UpdateStatus(uint(appID), status, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "application": app})
}

// GetApplication returns a single application with its student and team.
func GetApplication(c *fiber.Ctx) error {
	appID, err := c.ParamsInt("id")
	if err != nil || appID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid application ID"})
	}

	app, err := applicationService.FindByID(uint(appID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "application": app})
}

// GetMyApplications returns the acting student's applications, both requests
// they sent and invites addressed to them.
func GetMyApplications(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	student, err := studentService.FindByUserID(user.ID)
	if err != nil {
		return respondError(c, err)
	}

	apps, err := applicationService.StudentApplications(student.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "applications": apps, "count": len(apps)})
}

// GetTeamApplicants returns the students with a pending application to the team.
func GetTeamApplicants(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	students, err := applicationService.TeamApplicants(uint(teamID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "students": students, "count": len(students)})
}

// DeleteApplication removes an application outright. Admin only.
func DeleteApplication(c *fiber.Ctx) error {
	appID, err := c.ParamsInt("id")
	if err != nil || appID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid application ID"})
	}

	if err := applicationService.Delete(uint(appID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
