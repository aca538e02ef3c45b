// models/track.go
package models

import "time"

type TrackType string

const (
	TrackBachelor TrackType = "bachelor"
	TrackMaster   TrackType = "master"
)

type Track struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	About     string    `json:"about" gorm:"type:text"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Type      TrackType `json:"type" gorm:"size:16;not null;index"`

	// Team size bounds and the per-team cap on second-course students.
	MinConstraint             int `json:"min_constraint" gorm:"default:3"`
	MaxConstraint             int `json:"max_constraint" gorm:"default:5"`
	MaxSecondCourseConstraint int `json:"max_second_course_constraint" gorm:"default:1"`

	Teams []Team `json:"teams,omitempty" gorm:"foreignKey:CurrentTrackID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Track) TableName() string {
	return "tracks"
}
