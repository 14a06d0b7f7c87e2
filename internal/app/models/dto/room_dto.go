package dto

import "github.com/yigit/examadmission/internal/app/models"

// AssignRoomsRequest drives one seat allocation pass. Zero values fall back to configured defaults.
type AssignRoomsRequest struct {
	ExamID          *int64 `json:"examId"`
	SeatsPerRoom    int    `json:"seatsPerRoom" example:"30"`
	RoomPrefix      string `json:"roomPrefix" example:"A"`
	StartRoomNumber int    `json:"startRoomNumber" example:"101"`
	ExamDate        string `json:"examDate" example:"2025-12-20"`
	ExamTime        string `json:"examTime" example:"09:00-11:00"`
	Address         string `json:"address"`
}

// AssignRoomsResponse reports the outcome of an allocation pass
type AssignRoomsResponse struct {
	Assigned    int                     `json:"assigned"`
	Assignments []models.RoomAssignment `json:"assignments"`
}
