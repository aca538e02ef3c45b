// handlers/tracks.go
package handlers

import (
	"time"

	"teamselect/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTrackRequest struct {
	Name                      string `json:"name"`
	About                     string `json:"about"`
	Type                      string `json:"type"`
	StartDate                 string `json:"start_date"` // RFC 3339
	EndDate                   string `json:"end_date"`
	MinConstraint             int    `json:"min_constraint"`
	MaxConstraint             int    `json:"max_constraint"`
	MaxSecondCourseConstraint int    `json:"max_second_course_constraint"`
}

// GetTracks returns all tracks, newest first.
func GetTracks(c *fiber.Ctx) error {
	tracks, err := trackService.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "tracks": tracks, "count": len(tracks)})
}

// GetTrack returns a track by id.
func GetTrack(c *fiber.Ctx) error {
	trackID, err := c.ParamsInt("id")
	if err != nil || trackID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid track ID"})
	}

	track, err := trackService.FindByID(uint(trackID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "track": track})
}

// CreateTrack creates a new selection track. Admin only.
func CreateTrack(c *fiber.Ctx) error {
	var req CreateTrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name required"})
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid start_date"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid end_date"})
	}

	track := &models.Track{
		Name:                      req.Name,
		About:                     req.About,
		Type:                      models.TrackType(req.Type),
		StartDate:                 start,
		EndDate:                   end,
		MinConstraint:             req.MinConstraint,
		MaxConstraint:             req.MaxConstraint,
		MaxSecondCourseConstraint: req.MaxSecondCourseConstraint,
	}
	if track.MinConstraint == 0 {
		track.MinConstraint = 3
	}
	if track.MaxConstraint == 0 {
		track.MaxConstraint = 5
	}

	created, err := trackService.Create(track)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "track": created})
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
