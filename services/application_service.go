// services/application_service.go - Invite/request lifecycle engine
package services

import (
	"log"
	"time"

	"teamselect/models"

	"gorm.io/gorm"
)

// ApplicationService drives the shared invite/request lifecycle:
// SENT -> ACCEPTED | REJECTED | CANCELLED. Accepting is the only transition
// with membership side effects, and it commits them atomically with the
// status flip.
type ApplicationService struct {
	db       *gorm.DB
	teams    *TeamService
	students *StudentService
}

func NewApplicationService(db *gorm.DB, teams *TeamService, students *StudentService) *ApplicationService {
	return &ApplicationService{db: db, teams: teams, students: students}
}

// FindByID loads an application with everything the transition rules need:
// the student, the team, its members and its track.
func (s *ApplicationService) FindByID(id uint) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("Student").
		Preload("Team").
		Preload("Team.Students").
		Preload("Team.CurrentTrack").
		First(&app, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("application", id)
		}
		return nil, err
	}
	return &app, nil
}

// Create files an application in status SENT. If one already exists for the
// (student, team) pair it is revalidated and flipped back to SENT instead of
// inserting a duplicate.
func (s *ApplicationService) Create(studentID, teamID uint, appType models.ApplicationType, actingUserID uint) (*models.Application, error) {
	team, err := s.teams.FindByID(teamID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if err := s.validateCreate(team, student, appType, actingUserID); err != nil {
		return nil, err
	}

	var app models.Application
	err = s.db.Where("team_id = ? AND student_id = ?", teamID, studentID).First(&app).Error
	switch {
	case err == nil:
		// Re-send semantics: one application per pair, ever.
		if err := s.db.Model(&app).Updates(map[string]interface{}{
			"status": models.StatusSent,
			"type":   appType,
		}).Error; err != nil {
			return nil, err
		}
		app.Status = models.StatusSent
		app.Type = appType
	case err == gorm.ErrRecordNotFound:
		app = models.Application{
			StudentID: studentID,
			TeamID:    teamID,
			Type:      appType,
			Status:    models.StatusSent,
		}
		if err := s.db.Create(&app).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	app.Student = student
	app.Team = team
	log.Printf("Application %d (%s) sent: student %d, team %d", app.ID, app.Type, studentID, teamID)
	return &app, nil
}

// UpdateStatus applies one lifecycle transition on behalf of the acting user.
func (s *ApplicationService) UpdateStatus(appID uint, newStatus models.ApplicationStatus, actingUserID uint) (*models.Application, error) {
	app, err := s.FindByID(appID)
	if err != nil {
		return nil, err
	}

	switch newStatus {
	case models.StatusAccepted:
		return s.accept(app, actingUserID)
	case models.StatusRejected:
		return s.reject(app, actingUserID)
	case models.StatusCancelled:
		return s.cancel(app, actingUserID)
	case models.StatusSent:
		return s.resend(app, actingUserID)
	default:
		return nil, newBusiness("unsupported application status: %s", newStatus)
	}
}

// TeamApplicants returns the students with a pending application to the team.
func (s *ApplicationService) TeamApplicants(teamID uint) ([]models.Student, error) {
	if _, err := s.teams.FindByID(teamID); err != nil {
		return nil, err
	}
	var students []models.Student
	err := s.db.
		Joins("JOIN applications ON applications.student_id = students.id").
		Where("applications.team_id = ? AND applications.status = ?", teamID, models.StatusSent).
		Find(&students).Error
	return students, err
}

// StudentApplications returns the applications referencing the student.
func (s *ApplicationService) StudentApplications(studentID uint) ([]models.Application, error) {
	return s.students.Applications(studentID)
}

// Delete removes an application outright.
func (s *ApplicationService) Delete(id uint) error {
	res := s.db.Delete(&models.Application{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newNotFound("application", id)
	}
	log.Printf("Deleted application %d", id)
	return nil
}

// validateCreate runs the full create rule set: the acting user must be the
// application's sender, the student must be free, the track open, and the
// team able to take the student.
func (s *ApplicationService) validateCreate(team *models.Team, student *models.Student, appType models.ApplicationType, actingUserID uint) error {
	sender := student
	if appType == models.ApplicationInvite {
		captain, err := s.students.FindByID(team.CaptainID)
		if err != nil {
			return err
		}
		sender = captain
	}
	if sender.UserID != actingUserID {
		return newForbidden("you cannot send an application on behalf of another student")
	}
	if student.HasTeam {
		return newBusiness("student already has a team")
	}
	if TrackClosed(team.CurrentTrack, time.Now()) {
		return newBusiness("the track's selection window has ended")
	}
	return s.teams.CanAccept(team, student)
}

// validateTarget resolves the application's target and checks the acting user
// is that student. For requests the recorded captain must additionally still
// be a member of the team; a stale captain id grants nothing.
func (s *ApplicationService) validateTarget(app *models.Application, actingUserID uint) (*models.Student, error) {
	target, err := s.students.FindByID(app.TargetID())
	if err != nil {
		return nil, err
	}
	if target.UserID != actingUserID {
		return nil, newForbidden("only the application's target can accept or reject it")
	}
	if app.Type == models.ApplicationRequest {
		if target.CurrentTeamID == nil || *target.CurrentTeamID != app.TeamID {
			return nil, newForbidden("only the application's target can accept or reject it")
		}
	}
	return target, nil
}

func (s *ApplicationService) accept(app *models.Application, actingUserID uint) (*models.Application, error) {
	if app.IsResolved() {
		return nil, newBusiness("application is already resolved")
	}
	if _, err := s.validateTarget(app, actingUserID); err != nil {
		return nil, err
	}

	// Revalidate against current state: the team may have filled up or the
	// student joined elsewhere since the application was sent.
	student, err := s.students.FindByID(app.StudentID)
	if err != nil {
		return nil, err
	}
	if student.HasTeam {
		return nil, newBusiness("student already has a team")
	}
	team := app.Team
	if err := s.teams.CanAccept(team, student); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.teams.AddStudent(tx, team, student, false); err != nil {
			return err
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).
			Update("status", models.StatusAccepted).Error; err != nil {
			return err
		}
		// The student found a team: withdraw their other pending applications.
		if err := tx.Model(&models.Application{}).
			Where("student_id = ? AND status = ? AND id <> ?", app.StudentID, models.StatusSent, app.ID).
			Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		// A team that just filled up cannot take anyone else either.
		if team.IsFull {
			if err := tx.Model(&models.Application{}).
				Where("team_id = ? AND status = ?", app.TeamID, models.StatusSent).
				Update("status", models.StatusCancelled).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	app.Status = models.StatusAccepted
	app.Student = student
	log.Printf("Application %d accepted: student %d joined team %d", app.ID, student.ID, team.ID)
	return app, nil
}

func (s *ApplicationService) reject(app *models.Application, actingUserID uint) (*models.Application, error) {
	if app.IsResolved() {
		return nil, newBusiness("application is already resolved")
	}
	if _, err := s.validateTarget(app, actingUserID); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Application{}).Where("id = ?", app.ID).
		Update("status", models.StatusRejected).Error; err != nil {
		return nil, err
	}
	app.Status = models.StatusRejected
	return app, nil
}

func (s *ApplicationService) cancel(app *models.Application, actingUserID uint) (*models.Application, error) {
	if app.IsResolved() {
		return nil, newBusiness("only a pending application can be cancelled")
	}
	sender, err := s.students.FindByID(app.SenderID())
	if err != nil {
		return nil, err
	}
	if sender.UserID != actingUserID {
		return nil, newForbidden("only the sender can cancel the application")
	}
	if err := s.db.Model(&models.Application{}).Where("id = ?", app.ID).
		Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	app.Status = models.StatusCancelled
	return app, nil
}

// resend flips a rejected or cancelled application back to SENT after
// re-running the full create validation. Accepted applications are terminal.
func (s *ApplicationService) resend(app *models.Application, actingUserID uint) (*models.Application, error) {
	if app.Status == models.StatusAccepted {
		return nil, newBusiness("cannot change the status of an accepted application")
	}
	student, err := s.students.FindByID(app.StudentID)
	if err != nil {
		return nil, err
	}
	if err := s.validateCreate(app.Team, student, app.Type, actingUserID); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Application{}).Where("id = ?", app.ID).
		Update("status", models.StatusSent).Error; err != nil {
		return nil, err
	}
	app.Status = models.StatusSent
	return app, nil
}
