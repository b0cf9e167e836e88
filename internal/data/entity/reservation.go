package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusApproved ReservationStatus = "approved"
	ReservationStatusRejected ReservationStatus = "rejected"
	ReservationStatusCanceled ReservationStatus = "canceled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusApproved ||
		s == ReservationStatusRejected ||
		s == ReservationStatusCanceled
}

// Reservation is an ad-hoc booking of one court for one slot on one
// calendar date. ExpiresAt is only set while the reservation is pending;
// the persisted value is the source of truth for expiration, the
// in-memory timer is just the trigger.
type Reservation struct {
	BaseNoDelete
	Date          time.Time         `db:"date"`
	StartTime     string            `db:"start_time"`
	EndTime       string            `db:"end_time"`
	CourtID       uuid.UUID         `db:"court_id"`
	UserID        uuid.UUID         `db:"user_id"`
	RateID        uuid.UUID         `db:"rate_id"`
	Price         float64           `db:"price"`
	DepositAmount float64           `db:"deposit_amount"`
	Status        ReservationStatus `db:"status"`
	ExpiresAt     *time.Time        `db:"expires_at"`
	PaymentToken  *string           `db:"payment_token"`
	PaymentURL    *string           `db:"payment_url"`
}
