package models

import (
	"strings"
	"time"
)

// ApplicationStatus is the state of an application
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusConfirmed ApplicationStatus = "confirmed"
	StatusRejected  ApplicationStatus = "rejected"
)

// ParseApplicationStatus maps a status string onto the known states
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// Application links one student to one exam offering.
// Major is copied from the exam when the application is submitted.
type Application struct {
	ID               int64             `json:"id" db:"id"`
	StudentID        int64             `json:"studentId" db:"student_id"`
	ExamID           int64             `json:"examId" db:"exam_id"`
	Major            string            `json:"major" db:"major"`
	ApplicationTime  time.Time         `json:"applicationTime" db:"application_time"`
	Status           ApplicationStatus `json:"status" db:"status"`
	ConfirmedBy      *int64            `json:"confirmedBy,omitempty" db:"confirmed_by"`
	ConfirmationTime *time.Time        `json:"confirmationTime,omitempty" db:"confirmation_time"`
}

// Decision is the outcome recorded by a recruitment administrator
type Decision struct {
	Status    ApplicationStatus
	DecidedBy int64
	DecidedAt time.Time
}
