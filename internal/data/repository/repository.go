package repository

import (
	"court-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User           UserRepository
	Court          CourtRepository
	Rate           RateRepository
	ScheduleDay    ScheduleDayRepository
	ScheduleWindow ScheduleWindowRepository
	UnavailableDay UnavailableDayRepository
	Fixed          FixedReservationRepository
	Reservation    ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Court:          NewCourtRepository(db, log),
		Rate:           NewRateRepository(db, log),
		ScheduleDay:    NewScheduleDayRepository(db, log),
		ScheduleWindow: NewScheduleWindowRepository(db, log),
		UnavailableDay: NewUnavailableDayRepository(db, log),
		Fixed:          NewFixedReservationRepository(db, log),
		Reservation:    NewReservationRepository(db, log),
	}
}
