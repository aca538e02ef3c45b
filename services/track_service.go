// services/track_service.go
package services

import (
	"teamselect/models"

	"gorm.io/gorm"
)

type TrackService struct {
	db *gorm.DB
}

func NewTrackService(db *gorm.DB) *TrackService {
	return &TrackService{db: db}
}

func (s *TrackService) FindByID(id uint) (*models.Track, error) {
	var track models.Track
	err := s.db.First(&track, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFound("track", id)
		}
		return nil, err
	}
	return &track, nil
}

func (s *TrackService) FindAll() ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.Order("start_date DESC").Find(&tracks).Error
	return tracks, err
}

// LatestByType returns the most recently started track of the given type.
func (s *TrackService) LatestByType(trackType models.TrackType) (*models.Track, error) {
	var track models.Track
	err := s.db.Where("type = ?", trackType).
		Order("start_date DESC").First(&track).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newNotFoundMsg("no %s track found", trackType)
		}
		return nil, err
	}
	return &track, nil
}

// Create validates the constraint set and persists a new track.
func (s *TrackService) Create(track *models.Track) (*models.Track, error) {
	if track.Type != models.TrackBachelor && track.Type != models.TrackMaster {
		return nil, newBusiness("track type must be bachelor or master")
	}
	if track.MinConstraint <= 0 || track.MaxConstraint < track.MinConstraint {
		return nil, newBusiness("invalid team size constraints")
	}
	if track.MaxSecondCourseConstraint < 0 {
		return nil, newBusiness("invalid second-course constraint")
	}
	if !track.StartDate.IsZero() && !track.EndDate.IsZero() && track.EndDate.Before(track.StartDate) {
		return nil, newBusiness("track end date is before its start date")
	}
	if err := s.db.Create(track).Error; err != nil {
		return nil, err
	}
	return track, nil
}
