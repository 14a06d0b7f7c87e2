package models

// VerdictStatus is the derived admission outcome
type VerdictStatus string

const (
	VerdictUnpublished VerdictStatus = "unpublished"
	VerdictAdmitted    VerdictStatus = "admitted"
	VerdictNotAdmitted VerdictStatus = "not-admitted"
)

// Verdict is computed on every read and never stored.
// MinScore is nil while no threshold is published.
type Verdict struct {
	ApplicationID int64         `json:"applicationId"`
	ExamID        int64         `json:"examId"`
	Major         string        `json:"major"`
	Status        VerdictStatus `json:"status"`
	Total         float64       `json:"total"`
	MinScore      *float64      `json:"minScore"`
}

// ApplicationResult bundles an application with its scores and verdict
type ApplicationResult struct {
	Application Application  `json:"application"`
	Exam        *Exam        `json:"exam,omitempty"`
	Scores      []ScoreEntry `json:"scores"`
	Verdict     Verdict      `json:"verdict"`
}
