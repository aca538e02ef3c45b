// models/team_history.go
package models

import "time"

// TeamHistory records that a student has been a member of a team at some
// point. Rows survive the student leaving; a student who has a history row
// for a team may not join it again. The unique pair index also fences
// concurrent duplicate joins.
type TeamHistory struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	TeamID    uint       `json:"team_id" gorm:"not null;uniqueIndex:idx_team_history_member"`
	StudentID uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_team_history_member"`
	JoinedAt  time.Time  `json:"joined_at" gorm:"not null"`
	LeftAt    *time.Time `json:"left_at"`
}

func (TeamHistory) TableName() string {
	return "team_histories"
}
