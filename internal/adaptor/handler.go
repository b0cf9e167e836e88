package adaptor

import (
	"errors"
	"net/http"

	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

// Handler bundles every HTTP handler group.
type Handler struct {
	Availability *AvailabilityHandler
	Reservation  *ReservationHandler
	Payment      *PaymentHandler
	Fixed        *FixedReservationHandler
	Schedule     *ScheduleHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Reservation:  NewReservationHandler(service.Reservation, log),
		Payment:      NewPaymentHandler(service.Reservation, log),
		Fixed:        NewFixedReservationHandler(service.Fixed, log),
		Schedule:     NewScheduleHandler(service.Schedule, log),
	}
}

// respondServiceError maps usecase sentinels onto HTTP responses.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
