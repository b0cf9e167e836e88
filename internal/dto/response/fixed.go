package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type FixedReservationResponse struct {
	ID        string    `json:"id"`
	Weekday   int       `json:"weekday"`
	Slot      string    `json:"slot"`
	CourtID   string    `json:"court_id"`
	UserID    string    `json:"user_id"`
	RateID    string    `json:"rate_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FixedReservationToResponse(fixed *entity.FixedReservation) FixedReservationResponse {
	return FixedReservationResponse{
		ID:        fixed.ID.String(),
		Weekday:   fixed.Weekday,
		Slot:      fixed.StartTime + "-" + fixed.EndTime,
		CourtID:   fixed.CourtID.String(),
		UserID:    fixed.UserID.String(),
		RateID:    fixed.RateID.String(),
		IsActive:  fixed.IsActive,
		CreatedAt: fixed.CreatedAt,
	}
}
