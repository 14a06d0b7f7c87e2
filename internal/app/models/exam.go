package models

import "time"

// Exam is an exam offering students apply to
type Exam struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	Name           string    `json:"name" db:"exam_name" example:"2025 Graduate Entrance Exam"`
	Type           string    `json:"type" db:"exam_type" example:"written"`
	Time           time.Time `json:"time" db:"exam_time"`
	Major          string    `json:"major" db:"exam_major" example:"CS"`
	CandidateCount int       `json:"candidateCount" db:"candidate_count" example:"120"`
	Remarks        string    `json:"remarks,omitempty" db:"remarks"`
}

// ExamFilter narrows exam listings; zero values mean no filter
type ExamFilter struct {
	Year  int
	Type  string
	Major string // substring match
}
