package dto

// ApplyRequest submits an application for an exam offering
type ApplyRequest struct {
	ExamID *int64 `json:"examId" binding:"required"`
}

// DecisionRequest approves or rejects an application.
// A non-empty Status takes precedence over Approve. Status is matched case-insensitively.
type DecisionRequest struct {
	Approve *bool  `json:"approve"`
	Status  string `json:"status" example:"confirmed"`
}
