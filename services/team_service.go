// services/team_service.go - Team composition and membership bookkeeping
package services

import (
	"log"
	"time"

	"teamselect/models"

	"gorm.io/gorm"
)

// TeamService owns every mutation of team membership and of the denormalized
// student projections (HasTeam, IsCaptain, CurrentTeamID). No other code path
// touches those fields.
type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// FindByID retrieves a team with its members and track preloaded.
func (s *TeamService) FindByID(id uint) (*models.Team, error) {
	return s.findByIDTx(s.db, id)
}

func (s *TeamService) findByIDTx(tx *gorm.DB, id uint) (*models.Team, error) {
	var team models.Team
	err := tx.Preload("Students").Preload("CurrentTrack").First(&team, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("team", id)
		}
		return nil, err
	}
	return &team, nil
}

// SecondYearCount counts members subject to the second-course quota.
func (s *TeamService) SecondYearCount(team *models.Team) int {
	count := 0
	for _, member := range team.Students {
		if IsSecondYear(member.Course) {
			count++
		}
	}
	return count
}

// WasMemberBefore reports whether the student has ever been a member of the
// team, including memberships that already ended.
func (s *TeamService) WasMemberBefore(teamID, studentID uint) (bool, error) {
	return s.wasMemberBefore(s.db, teamID, studentID)
}

func (s *TeamService) wasMemberBefore(tx *gorm.DB, teamID, studentID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.TeamHistory{}).
		Where("team_id = ? AND student_id = ?", teamID, studentID).
		Count(&count).Error
	return count > 0, err
}

// CanAccept checks whether the team may take the student as a new member.
// Team must be loaded with Students and CurrentTrack.
func (s *TeamService) CanAccept(team *models.Team, student *models.Student) error {
	return s.canAccept(s.db, team, student, false)
}

func (s *TeamService) canAccept(tx *gorm.DB, team *models.Team, student *models.Student, skipFull bool) error {
	track := team.CurrentTrack

	if !skipFull && team.QuantityOfStudents >= track.MaxConstraint {
		return newBusiness("team is already full")
	}
	if IsSecondYear(student.Course) && s.SecondYearCount(team) >= track.MaxSecondCourseConstraint {
		return newBusiness("team already has the maximum of %d second-year students", track.MaxSecondCourseConstraint)
	}
	eligible, ok := EligibleTrackType(student.Course)
	if !ok || eligible != track.Type {
		return newBusiness("wrong track: students of course %d cannot join a %s track team", student.Course, track.Type)
	}
	if team.HasMember(student.ID) {
		return newBusiness("student is already in the team")
	}
	wasMember, err := s.wasMemberBefore(tx, team.ID, student.ID)
	if err != nil {
		return err
	}
	if wasMember {
		return newBusiness("student cannot re-join a team they left before")
	}
	return nil
}

// AddStudent makes the student a member of the team inside the caller's
// transaction. The capacity increment is a guarded UPDATE on the teams row,
// so two concurrent adds serialize on it and the loser rolls back instead of
// over-filling the team. CanAccept is expected to have passed already.
func (s *TeamService) AddStudent(tx *gorm.DB, team *models.Team, student *models.Student, skipFull bool) error {
	update := tx.Model(&models.Team{}).Where("id = ?", team.ID)
	if !skipFull {
		update = update.Where("quantity_of_students < ?", team.CurrentTrack.MaxConstraint)
	}
	res := update.Update("quantity_of_students", gorm.Expr("quantity_of_students + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newBusiness("team is already full")
	}

	var count int
	if err := tx.Model(&models.Team{}).Select("quantity_of_students").
		Where("id = ?", team.ID).Scan(&count).Error; err != nil {
		return err
	}
	isFull := count >= team.CurrentTrack.MaxConstraint
	if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).
		Update("is_full", isFull).Error; err != nil {
		return err
	}

	// The unique (team, student) index turns a racing duplicate join into a
	// constraint error that aborts the transaction.
	history := models.TeamHistory{TeamID: team.ID, StudentID: student.ID, JoinedAt: time.Now()}
	if err := tx.Create(&history).Error; err != nil {
		return newBusiness("student is already in the team")
	}

	if err := tx.Model(&models.Student{}).Where("id = ?", student.ID).
		Updates(map[string]interface{}{
			"has_team":        true,
			"current_team_id": team.ID,
		}).Error; err != nil {
		return err
	}

	// Recount inside the transaction: the guarded update above already
	// serialized concurrent adds on the teams row, so this count sees any
	// second-year member a racing transaction committed.
	if IsSecondYear(student.Course) {
		var secondYears int64
		if err := tx.Model(&models.Student{}).
			Where("current_team_id = ? AND course = 2", team.ID).
			Count(&secondYears).Error; err != nil {
			return err
		}
		if int(secondYears) > team.CurrentTrack.MaxSecondCourseConstraint {
			return newBusiness("team already has the maximum of %d second-year students", team.CurrentTrack.MaxSecondCourseConstraint)
		}
	}

	student.HasTeam = true
	student.CurrentTeamID = &team.ID
	student.CurrentTeam = team
	team.Students = append(team.Students, *student)
	team.QuantityOfStudents = count
	team.IsFull = isFull
	return nil
}

// RemoveStudent takes the student out of the team and clears their membership
// projections. The captain cannot be removed; captain changes go through team
// deletion or an explicit transfer.
func (s *TeamService) RemoveStudent(team *models.Team, student *models.Student) error {
	if team.CaptainID == student.ID {
		return newBusiness("cannot remove the captain from their own team")
	}
	if student.CurrentTeamID == nil || *student.CurrentTeamID != team.ID {
		return newBusiness("student is not a member of the team")
	}

	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Team{}).
			Where("id = ? AND quantity_of_students > 0", team.ID).
			Update("quantity_of_students", gorm.Expr("quantity_of_students - 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Team{}).Select("quantity_of_students").
			Where("id = ?", team.ID).Scan(&count).Error; err != nil {
			return err
		}
		// An overfilled team can come back down to exactly max and still be full.
		if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).
			Update("is_full", count >= team.CurrentTrack.MaxConstraint).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TeamHistory{}).
			Where("team_id = ? AND student_id = ? AND left_at IS NULL", team.ID, student.ID).
			Update("left_at", time.Now()).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).Where("id = ?", student.ID).
			Updates(map[string]interface{}{
				"has_team":        false,
				"is_captain":      false,
				"current_team_id": nil,
			}).Error
	})
	if err != nil {
		return err
	}

	student.HasTeam = false
	student.IsCaptain = false
	student.CurrentTeamID = nil
	student.CurrentTeam = nil
	for i, member := range team.Students {
		if member.ID == student.ID {
			team.Students = append(team.Students[:i], team.Students[i+1:]...)
			break
		}
	}
	team.QuantityOfStudents = count
	team.IsFull = count >= team.CurrentTrack.MaxConstraint
	return nil
}

// CreateTeam creates a team on the track, attaches its technology tags and
// makes the captain its first member.
func (s *TeamService) CreateTeam(name, description, projectType string, trackID, captainID uint, technologyIDs []uint) (*models.Team, error) {
	if name == "" {
		return nil, newBusiness("team name is required")
	}

	techs, err := resolveTechnologies(s.db, technologyIDs)
	if err != nil {
		return nil, err
	}

	var track models.Track
	if err := s.db.First(&track, trackID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("track", trackID)
		}
		return nil, err
	}

	captain, err := s.findStudent(captainID)
	if err != nil {
		return nil, err
	}
	if captain.HasTeam {
		return nil, newBusiness("student already has a team")
	}
	eligible, ok := EligibleTrackType(captain.Course)
	if !ok || eligible != track.Type {
		return nil, newBusiness("wrong track: students of course %d cannot join a %s track team", captain.Course, track.Type)
	}
	if TrackClosed(&track, time.Now()) {
		return nil, newBusiness("the track's selection window has ended")
	}

	team := &models.Team{
		Name:               name,
		ProjectDescription: description,
		ProjectType:        projectType,
		CurrentTrackID:     track.ID,
		CurrentTrack:       &track,
		Technologies:       techs,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		if err := s.AddStudent(tx, team, captain, true); err != nil {
			return err
		}
		if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).
			Update("captain_id", captain.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).Where("id = ?", captain.ID).
			Update("is_captain", true).Error
	})
	if err != nil {
		return nil, err
	}

	team.CaptainID = captain.ID
	captain.IsCaptain = true
	log.Printf("Created team %d (%s) on track %d, captain %d", team.ID, team.Name, track.ID, captain.ID)
	return team, nil
}

// DeleteTeam disbands the team: members lose their membership projections,
// pending applications are cancelled, the team row goes away. Only the
// captain or an admin may do this.
func (s *TeamService) DeleteTeam(teamID uint, acting *models.User) error {
	team, err := s.FindByID(teamID)
	if err != nil {
		return err
	}

	if !acting.IsAdmin {
		captain, err := s.findStudent(team.CaptainID)
		if err != nil {
			return err
		}
		if captain.UserID != acting.ID {
			return newForbidden("only the captain or an admin can delete the team")
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).
			Where("current_team_id = ?", team.ID).
			Updates(map[string]interface{}{
				"has_team":        false,
				"is_captain":      false,
				"current_team_id": nil,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TeamHistory{}).
			Where("team_id = ? AND left_at IS NULL", team.ID).
			Update("left_at", time.Now()).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Application{}).
			Where("team_id = ? AND status = ?", team.ID, models.StatusSent).
			Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, team.ID).Error
	})
	if err != nil {
		return err
	}
	log.Printf("Deleted team %d (%s)", team.ID, team.Name)
	return nil
}

// AddStudentToTeam is the direct membership path used by admins and captains,
// bypassing the application lifecycle. Admins may overfill a team; everyone
// else is bound by the usual composition rules.
func (s *TeamService) AddStudentToTeam(teamID, studentID uint, acting *models.User) (*models.Team, error) {
	team, err := s.FindByID(teamID)
	if err != nil {
		return nil, err
	}
	student, err := s.findStudent(studentID)
	if err != nil {
		return nil, err
	}

	if !acting.IsAdmin {
		captain, err := s.findStudent(team.CaptainID)
		if err != nil {
			return nil, err
		}
		if captain.UserID != acting.ID {
			return nil, newForbidden("only the captain or an admin can add members directly")
		}
	}

	if student.HasTeam {
		return nil, newBusiness("student already has a team")
	}
	if err := s.canAccept(s.db, team, student, acting.IsAdmin); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.AddStudent(tx, team, student, acting.IsAdmin)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// RemoveStudentFromTeam resolves and removes a member. Permitted for admins,
// the team's captain, and the student themself (leaving).
func (s *TeamService) RemoveStudentFromTeam(teamID, studentID uint, acting *models.User) (*models.Team, error) {
	team, err := s.FindByID(teamID)
	if err != nil {
		return nil, err
	}
	student, err := s.findStudent(studentID)
	if err != nil {
		return nil, err
	}

	if !acting.IsAdmin && student.UserID != acting.ID {
		captain, err := s.findStudent(team.CaptainID)
		if err != nil {
			return nil, err
		}
		if captain.UserID != acting.ID {
			return nil, newForbidden("only the captain, an admin or the student themself can remove a member")
		}
	}

	if err := s.RemoveStudent(team, student); err != nil {
		return nil, err
	}
	return team, nil
}

// TeamHistoryForStudent returns every team the student has ever been part of.
func (s *TeamService) TeamHistoryForStudent(studentID uint) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.
		Joins("JOIN team_histories ON team_histories.team_id = teams.id").
		Where("team_histories.student_id = ?", studentID).
		Find(&teams).Error
	return teams, err
}

// Search filters teams by name substring, track and fullness.
func (s *TeamService) Search(like string, trackID *uint, isFull *bool) ([]models.Team, error) {
	query := s.db.Preload("Students").Preload("CurrentTrack")
	if like != "" {
		query = query.Where("name LIKE ?", "%"+like+"%")
	}
	if trackID != nil {
		query = query.Where("current_track_id = ?", *trackID)
	}
	if isFull != nil {
		query = query.Where("is_full = ?", *isFull)
	}

	var teams []models.Team
	err := query.Order("created_at DESC").Find(&teams).Error
	return teams, err
}

func (s *TeamService) findStudent(id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("student", id)
		}
		return nil, err
	}
	return &student, nil
}
