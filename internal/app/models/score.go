package models

import "time"

// ScoreEntry is one subject score for an application. Entries are append-only.
type ScoreEntry struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	Subject       string    `json:"subject" db:"subject" example:"Mathematics"`
	Score         float64   `json:"score" db:"score" example:"88.5"`
	EnteredBy     int64     `json:"enteredBy" db:"entered_by"`
	EntryTime     time.Time `json:"entryTime" db:"entry_time"`
}
