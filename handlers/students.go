// handlers/students.go
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type CreateStudentRequest struct {
	Course        int    `json:"course"`
	GroupNumber   int    `json:"group_number"`
	AboutSelf     string `json:"about_self"`
	Contacts      string `json:"contacts"`
	TechnologyIDs []uint `json:"technology_ids,omitempty"`
}

// CreateStudent registers a student profile for the acting user.
func CreateStudent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if _, err := studentService.FindByUserID(user.ID); err == nil {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Student profile already exists"})
	}

	student, err := studentService.Create(user.ID, req.Course, req.GroupNumber, req.AboutSelf, req.Contacts, req.TechnologyIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "student": student})
}

// GetMyStudent returns the acting user's student profile.
func GetMyStudent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	student, err := studentService.FindByUserID(user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "student": student})
}

// GetStudent returns a student profile by id.
func GetStudent(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil || studentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid student ID"})
	}

	student, err := studentService.FindByID(uint(studentID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "student": student})
}

// SearchStudents filters students. Query params: course, has_team.
func SearchStudents(c *fiber.Ctx) error {
	var course *int
	if raw := c.Query("course"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid course"})
		}
		course = &v
	}

	var hasTeam *bool
	if raw := c.Query("has_team"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid has_team"})
		}
		hasTeam = &v
	}

	students, err := studentService.Search(course, hasTeam)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "students": students, "count": len(students)})
}

// GetStudentApplications returns the applications referencing a student.
func GetStudentApplications(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil || studentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid student ID"})
	}

	apps, err := studentService.Applications(uint(studentID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "applications": apps, "count": len(apps)})
}

// GetStudentAppliedTeams returns the teams a student has an application with.
func GetStudentAppliedTeams(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil || studentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid student ID"})
	}

	teams, err := studentService.AppliedTeams(uint(studentID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams, "count": len(teams)})
}

// GetStudentTeamHistory returns every team the student has ever been part of.
func GetStudentTeamHistory(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil || studentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid student ID"})
	}

	if _, err := studentService.FindByID(uint(studentID)); err != nil {
		return respondError(c, err)
	}

	teams, err := teamService.TeamHistoryForStudent(uint(studentID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams, "count": len(teams)})
}
