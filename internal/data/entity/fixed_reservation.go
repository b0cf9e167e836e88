package entity

import (
	"github.com/google/uuid"
)

// FixedReservation is a recurring weekly booking tied to a weekday
// rather than a calendar date. While active it blocks the same
// weekday/slot/court every week. It never expires on its own.
type FixedReservation struct {
	BaseNoDelete
	Weekday   int       `db:"weekday"` // 0 = Sunday, 6 = Saturday
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	CourtID   uuid.UUID `db:"court_id"`
	UserID    uuid.UUID `db:"user_id"`
	RateID    uuid.UUID `db:"rate_id"`
	IsActive  bool      `db:"is_active"`
}
