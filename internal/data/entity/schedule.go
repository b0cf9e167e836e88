package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleDay says whether the facility operates on a given weekday.
type ScheduleDay struct {
	BaseNoDelete
	Weekday  int  `db:"weekday"` // 0 = Sunday, 6 = Saturday
	IsActive bool `db:"is_active"`
}

// ScheduleWindow is one start/end operating range on a weekday for a
// sport type. Slots are generated from these windows.
type ScheduleWindow struct {
	BaseNoDelete
	ScheduleDayID uuid.UUID `db:"schedule_day_id"`
	SportTypeID   uuid.UUID `db:"sport_type_id"`
	StartTime     string    `db:"start_time"`
	EndTime       string    `db:"end_time"`
}

// UnavailableDay blocks a specific date. CourtID nil blocks the whole
// facility for that date.
type UnavailableDay struct {
	BaseSimple
	Date    time.Time  `db:"date"`
	CourtID *uuid.UUID `db:"court_id"`
	Reason  string     `db:"reason"`
}
