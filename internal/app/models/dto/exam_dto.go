package dto

// ExamRequest creates or replaces an exam offering
type ExamRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Type           string `json:"type" binding:"required,max=50"`
	Time           string `json:"time" binding:"required" example:"2025-12-20T09:00:00Z"`
	Major          string `json:"major" binding:"required,max=100"`
	CandidateCount int    `json:"candidateCount" binding:"gte=0"`
	Remarks        string `json:"remarks"`
}

// ExamListQuery holds the optional list filters
type ExamListQuery struct {
	Year  int    `form:"year" binding:"omitempty,gte=1900"`
	Type  string `form:"type"`
	Major string `form:"major"`
}
