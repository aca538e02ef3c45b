// handlers/init.go - Handler wiring
package handlers

import (
	"teamselect/database"
	"teamselect/middleware"
	"teamselect/models"
	"teamselect/services"

	"github.com/gofiber/fiber/v2"
)

var (
	teamService        *services.TeamService
	studentService     *services.StudentService
	trackService       *services.TrackService
	technologyService  *services.TechnologyService
	applicationService *services.ApplicationService
)

// Init wires the handler package to the shared database connection.
func Init() {
	db := database.GetDB()
	teamService = services.NewTeamService(db)
	studentService = services.NewStudentService(db)
	trackService = services.NewTrackService(db)
	technologyService = services.NewTechnologyService(db)
	applicationService = services.NewApplicationService(db, teamService, studentService)
}

// currentUser resolves the authenticated user record for the request.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return nil, fiber.NewError(401, "Unknown user")
	}
	return &user, nil
}
