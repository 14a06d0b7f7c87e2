package services

import (
	"strconv"

	"github.com/yigit/examadmission/internal/app/models"
)

// Allocation defaults
const (
	DefaultSeatsPerRoom = 30
	DefaultRoomPrefix   = "A"
	DefaultStartRoom    = 101
)

// SeatCursor walks rooms and seats in allocation order
type SeatCursor struct {
	prefix       string
	seatsPerRoom int
	room         int
	seat         int
}

// NewSeatCursor starts at seat 1 of the configured first room
func NewSeatCursor(cfg models.RoomConfig) *SeatCursor {
	return &SeatCursor{
		prefix:       cfg.RoomPrefix,
		seatsPerRoom: cfg.SeatsPerRoom,
		room:         cfg.StartRoom,
		seat:         1,
	}
}

// Position returns the current room label and seat number
func (c *SeatCursor) Position() (string, int) {
	return c.prefix + strconv.Itoa(c.room), c.seat
}

// Advance moves to the next seat, opening the next room when the current one is full
func (c *SeatCursor) Advance() {
	c.seat++
	if c.seat > c.seatsPerRoom {
		c.seat = 1
		c.room++
	}
}

// NormalizeRoomConfig fills missing values from defaults. Non-positive seat counts use the default.
func NormalizeRoomConfig(cfg models.RoomConfig, defaults AllocationDefaults) models.RoomConfig {
	if defaults.SeatsPerRoom <= 0 {
		defaults.SeatsPerRoom = DefaultSeatsPerRoom
	}
	if defaults.RoomPrefix == "" {
		defaults.RoomPrefix = DefaultRoomPrefix
	}
	if defaults.StartRoom <= 0 {
		defaults.StartRoom = DefaultStartRoom
	}

	if cfg.SeatsPerRoom <= 0 {
		cfg.SeatsPerRoom = defaults.SeatsPerRoom
	}
	if cfg.RoomPrefix == "" {
		cfg.RoomPrefix = defaults.RoomPrefix
	}
	if cfg.StartRoom <= 0 {
		cfg.StartRoom = defaults.StartRoom
	}
	return cfg
}

// PlanSeats assigns seats to apps in the given order from a fresh cursor.
// It does not touch storage; cfg must already be normalized.
func PlanSeats(apps []models.Application, cfg models.RoomConfig) []models.RoomAssignment {
	cursor := NewSeatCursor(cfg)
	plan := make([]models.RoomAssignment, 0, len(apps))
	for _, app := range apps {
		room, seat := cursor.Position()
		plan = append(plan, models.RoomAssignment{
			ApplicationID: app.ID,
			ExamID:        app.ExamID,
			RoomNumber:    room,
			SeatNumber:    seat,
			ExamDate:      cfg.ExamDate,
			ExamTime:      cfg.ExamTime,
			Address:       cfg.Address,
		})
		cursor.Advance()
	}
	return plan
}
