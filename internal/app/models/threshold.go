package models

import "time"

// AdmissionThreshold is the minimum total score for an (exam, major) pair
type AdmissionThreshold struct {
	ExamID   int64     `json:"examId" db:"exam_id"`
	Major    string    `json:"major" db:"major"`
	MinScore float64   `json:"minScore" db:"min_score"`
	SetBy    int64     `json:"setBy" db:"set_by"`
	SetTime  time.Time `json:"setTime" db:"set_time"`
}
