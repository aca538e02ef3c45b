// services/student_service.go
package services

import (
	"teamselect/models"

	"gorm.io/gorm"
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

func (s *StudentService) FindByID(id uint) (*models.Student, error) {
	var student models.Student
	err := s.db.Preload("User").First(&student, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("student", id)
		}
		return nil, err
	}
	return &student, nil
}

// FindByUserID resolves the student profile behind an authenticated user.
func (s *StudentService) FindByUserID(userID uint) (*models.Student, error) {
	var student models.Student
	err := s.db.Preload("User").Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFoundMsg("no student profile for user %d", userID)
		}
		return nil, err
	}
	return &student, nil
}

// Create registers a student profile for a user, attaches their technology
// tags and assigns the most recent track matching the student's course, if
// one exists.
func (s *StudentService) Create(userID uint, course, groupNumber int, aboutSelf, contacts string, technologyIDs []uint) (*models.Student, error) {
	if course < 1 || course > 6 {
		return nil, newBusiness("course must be between 1 and 6")
	}

	techs, err := resolveTechnologies(s.db, technologyIDs)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		UserID:       userID,
		Course:       course,
		GroupNumber:  groupNumber,
		AboutSelf:    aboutSelf,
		Contacts:     contacts,
		Technologies: techs,
	}

	if trackType, ok := EligibleTrackType(course); ok {
		var track models.Track
		err := s.db.Where("type = ?", trackType).
			Order("start_date DESC").First(&track).Error
		if err == nil {
			student.TrackID = &track.ID
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	if err := s.db.Create(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}

// Applications returns every application referencing the student.
func (s *StudentService) Applications(studentID uint) ([]models.Application, error) {
	if _, err := s.FindByID(studentID); err != nil {
		return nil, err
	}
	var apps []models.Application
	err := s.db.Preload("Team").Where("student_id = ?", studentID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

// AppliedTeams returns the teams the student has an application with.
func (s *StudentService) AppliedTeams(studentID uint) ([]models.Team, error) {
	if _, err := s.FindByID(studentID); err != nil {
		return nil, err
	}
	var teams []models.Team
	err := s.db.
		Joins("JOIN applications ON applications.team_id = teams.id").
		Where("applications.student_id = ?", studentID).
		Find(&teams).Error
	return teams, err
}

// Search filters students by course and team membership.
func (s *StudentService) Search(course *int, hasTeam *bool) ([]models.Student, error) {
	query := s.db.Preload("User")
	if course != nil {
		query = query.Where("course = ?", *course)
	}
	if hasTeam != nil {
		query = query.Where("has_team = ?", *hasTeam)
	}

	var students []models.Student
	err := query.Find(&students).Error
	return students, err
}
