package models

import "time"

// RoomAssignment places one confirmed application in a room and seat
type RoomAssignment struct {
	ID            int64      `json:"id" db:"id"`
	ApplicationID int64      `json:"applicationId" db:"application_id"`
	ExamID        int64      `json:"examId" db:"exam_id"`
	RoomNumber    string     `json:"roomNumber" db:"room_number" example:"A101"`
	SeatNumber    int        `json:"seatNumber" db:"seat_number" example:"1"`
	ExamDate      *time.Time `json:"examDate,omitempty" db:"exam_date"`
	ExamTime      string     `json:"examTime,omitempty" db:"exam_time" example:"09:00-11:00"`
	Address       string     `json:"address" db:"address"`
	AssignedBy    int64      `json:"assignedBy" db:"assigned_by"`
	AssignedTime  time.Time  `json:"assignedTime" db:"assigned_time"`
}

// RoomConfig drives one seat allocation pass
type RoomConfig struct {
	SeatsPerRoom int
	RoomPrefix   string
	StartRoom    int
	ExamDate     *time.Time
	ExamTime     string
	Address      string
}
