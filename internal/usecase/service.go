package usecase

import (
	"court-booking/internal/data/repository"
	"court-booking/internal/gateway"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Reservation  ReservationService
	Schedule     ScheduleService
	Fixed        FixedReservationService
	Expiration   *ExpirationRegistry
}

func NewService(repo *repository.Repository, payments gateway.PaymentGateway, config *utils.Config, log *zap.Logger) *Service {
	expiration := NewExpirationRegistry(repo.Reservation, log)

	return &Service{
		Availability: NewAvailabilityService(repo, config, log),
		Reservation:  NewReservationService(repo, payments, expiration, config, log),
		Schedule:     NewScheduleService(repo, config, log),
		Fixed:        NewFixedReservationService(repo, log),
		Expiration:   expiration,
	}
}
