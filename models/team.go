// models/team.go
package models

import "time"

type Team struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	Name               string `json:"name" gorm:"size:100;not null"`
	ProjectDescription string `json:"project_description" gorm:"type:text"`
	ProjectType        string `json:"project_type" gorm:"size:100"`

	// Cached counters derived from Students; kept in sync by the team service.
	QuantityOfStudents int  `json:"quantity_of_students" gorm:"default:0"`
	IsFull             bool `json:"is_full" gorm:"default:false"`

	CaptainID uint `json:"captain_id" gorm:"index"`

	CurrentTrackID uint   `json:"current_track_id" gorm:"not null;index"`
	CurrentTrack   *Track `json:"current_track,omitempty" gorm:"foreignKey:CurrentTrackID"`

	// The membership set is the source of truth for QuantityOfStudents.
	Students []Student `json:"students,omitempty" gorm:"foreignKey:CurrentTeamID"`

	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:TeamID"`
	Technologies []Technology  `json:"technologies,omitempty" gorm:"many2many:team_technologies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// HasMember reports whether the student is in the loaded membership set.
func (t *Team) HasMember(studentID uint) bool {
	for _, s := range t.Students {
		if s.ID == studentID {
			return true
		}
	}
	return false
}
