// models/application.go
package models

import (
	"fmt"
	"strings"
	"time"
)

type ApplicationType string

const (
	ApplicationInvite  ApplicationType = "invite"
	ApplicationRequest ApplicationType = "request"
)

type ApplicationStatus string

const (
	StatusSent      ApplicationStatus = "sent"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCancelled ApplicationStatus = "cancelled"
)

// ParseApplicationStatus accepts the status in any letter case.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(strings.ToLower(s)) {
	case StatusSent:
		return StatusSent, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// ParseApplicationType accepts the type in any letter case.
func ParseApplicationType(s string) (ApplicationType, error) {
	switch ApplicationType(strings.ToLower(s)) {
	case ApplicationInvite:
		return ApplicationInvite, nil
	case ApplicationRequest:
		return ApplicationRequest, nil
	}
	return "", fmt.Errorf("unknown application type %q", s)
}

// Application is a student's request to join a team or a captain's invite to
// a student. Both variants share one status lifecycle and differ only in who
// counts as sender and target, which SenderID/TargetID encode.
type Application struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	StudentID uint              `json:"student_id" gorm:"not null;uniqueIndex:idx_applications_pair"`
	Student   *Student          `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	TeamID    uint              `json:"team_id" gorm:"not null;uniqueIndex:idx_applications_pair"`
	Team      *Team             `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Type      ApplicationType   `json:"type" gorm:"size:16;not null"`
	Status    ApplicationStatus `json:"status" gorm:"size:16;not null;default:'sent';index"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// SenderID returns the student who sent the application and may cancel it:
// the applicant for a request, the team's captain for an invite.
// Team must be preloaded.
func (a *Application) SenderID() uint {
	if a.Type == ApplicationInvite {
		return a.Team.CaptainID
	}
	return a.StudentID
}

// TargetID returns the student the application is addressed to, the only one
// who may accept or reject it: the team's captain for a request, the invited
// student for an invite. Team must be preloaded.
func (a *Application) TargetID() uint {
	if a.Type == ApplicationInvite {
		return a.StudentID
	}
	return a.Team.CaptainID
}

// IsResolved reports whether the application is in a terminal status.
func (a *Application) IsResolved() bool {
	return a.Status != StatusSent
}
