// models/student.go
package models

import "time"

type Student struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User        *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course      int    `json:"course" gorm:"not null"`
	GroupNumber int    `json:"group_number"`
	AboutSelf   string `json:"about_self" gorm:"type:text"`
	Contacts    string `json:"contacts"`

	// Denormalized projections of team membership. Only the team service
	// mutates these, together with the team's membership set.
	HasTeam       bool  `json:"has_team" gorm:"default:false"`
	IsCaptain     bool  `json:"is_captain" gorm:"default:false"`
	CurrentTeamID *uint `json:"current_team_id"`
	CurrentTeam   *Team `json:"current_team,omitempty" gorm:"foreignKey:CurrentTeamID"`

	TrackID *uint  `json:"track_id" gorm:"index"`
	Track   *Track `json:"track,omitempty" gorm:"foreignKey:TrackID"`

	Technologies []Technology  `json:"technologies,omitempty" gorm:"many2many:student_technologies"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:StudentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
