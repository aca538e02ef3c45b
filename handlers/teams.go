// handlers/teams.go
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type CreateTeamRequest struct {
	Name               string `json:"name"`
	ProjectDescription string `json:"project_description"`
	ProjectType        string `json:"project_type"`
	TrackID            uint   `json:"track_id"`
	CaptainID          uint   `json:"captain_id,omitempty"` // admin only
	TechnologyIDs      []uint `json:"technology_ids,omitempty"`
}

type MemberRequest struct {
	StudentID uint `json:"student_id"`
}

// CreateTeam creates a team with the acting student as captain. Admins may
// create a team on behalf of another student via captain_id.
func CreateTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" || req.TrackID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name and track_id required"})
	}

	captainID := req.CaptainID
	if captainID == 0 || !user.IsAdmin {
		student, err := studentService.FindByUserID(user.ID)
		if err != nil {
			return respondError(c, err)
		}
		captainID = student.ID
	}

	team, err := teamService.CreateTeam(req.Name, req.ProjectDescription, req.ProjectType, req.TrackID, captainID, req.TechnologyIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "team": team})
}

// GetTeam returns a team with its members and track.
func GetTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	team, err := teamService.FindByID(uint(teamID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "team": team})
}

// SearchTeams filters teams by name substring, track and fullness.
// Query params: like, track_id, is_full.
func SearchTeams(c *fiber.Ctx) error {
	like := c.Query("like")

	var trackID *uint
	if raw := c.Query("track_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid track_id"})
		}
		v := uint(id)
		trackID = &v
	}

	var isFull *bool
	if raw := c.Query("is_full"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid is_full"})
		}
		isFull = &v
	}

	teams, err := teamService.Search(like, trackID, isFull)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams, "count": len(teams)})
}

// DeleteTeam disbands a team. Captain or admin only.
func DeleteTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	if err := teamService.DeleteTeam(uint(teamID), user); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AddTeamMember adds a student directly, bypassing the application flow.
// Captains are bound by the composition rules; admins may overfill.
func AddTeamMember(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}

	var req MemberRequest
	if err := c.BodyParser(&req); err != nil || req.StudentID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "student_id required"})
	}

	team, err := teamService.AddStudentToTeam(uint(teamID), req.StudentID, user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "team": team})
}

// RemoveTeamMember removes a member. Permitted for admins, the captain, and
// the member themself.
func RemoveTeamMember(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team ID"})
	}
	studentID, err := c.ParamsInt("studentId")
	if err != nil || studentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid student ID"})
	}

	team, err := teamService.RemoveStudentFromTeam(uint(teamID), uint(studentID), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "team": team})
}
