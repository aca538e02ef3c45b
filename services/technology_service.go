// services/technology_service.go
package services

import (
	"teamselect/models"

	"gorm.io/gorm"
)

// TechnologyService manages the shared skill tag catalogue referenced by
// students and teams.
type TechnologyService struct {
	db *gorm.DB
}

func NewTechnologyService(db *gorm.DB) *TechnologyService {
	return &TechnologyService{db: db}
}

func (s *TechnologyService) FindByID(id uint) (*models.Technology, error) {
	var tech models.Technology
	if err := s.db.First(&tech, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("technology", id)
		}
		return nil, err
	}
	return &tech, nil
}

func (s *TechnologyService) FindAll() ([]models.Technology, error) {
	var techs []models.Technology
	err := s.db.Order("name").Find(&techs).Error
	return techs, err
}

// Create adds a technology to the catalogue. Names are unique.
func (s *TechnologyService) Create(name string) (*models.Technology, error) {
	if name == "" {
		return nil, newBusiness("technology name is required")
	}
	var existing models.Technology
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, newBusiness("technology %q already exists", name)
	}
	tech := &models.Technology{Name: name}
	if err := s.db.Create(tech).Error; err != nil {
		return nil, err
	}
	return tech, nil
}

// Delete removes a technology and its links to students and teams.
func (s *TechnologyService) Delete(id uint) error {
	tech, err := s.FindByID(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_technologies WHERE technology_id = ?", tech.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM team_technologies WHERE technology_id = ?", tech.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Technology{}, tech.ID).Error
	})
}

// resolveTechnologies turns a list of technology ids into entities, rejecting
// unknown ids. Used by student and team creation.
func resolveTechnologies(db *gorm.DB, ids []uint) ([]models.Technology, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var techs []models.Technology
	if err := db.Where("id IN ?", ids).Find(&techs).Error; err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(techs))
	for _, tech := range techs {
		found[tech.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, newNotFound("technology", id)
		}
	}
	return techs, nil
}
