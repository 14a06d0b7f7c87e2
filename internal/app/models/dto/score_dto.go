package dto

// ScoreRequest records one subject score
type ScoreRequest struct {
	ApplicationID int64    `json:"applicationId" binding:"required,min=1"`
	Subject       string   `json:"subject" binding:"required,max=100"`
	Score         *float64 `json:"score" binding:"required"`
}

// ThresholdRequest publishes or replaces the minimum score for an exam and major
type ThresholdRequest struct {
	ExamID   int64    `json:"examId" binding:"required,min=1"`
	Major    string   `json:"major" binding:"required,max=100"`
	MinScore *float64 `json:"minScore" binding:"required"`
}
