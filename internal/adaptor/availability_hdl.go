package adaptor

import (
	"net/http"

	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailableSlots handles GET /api/availability?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	slots, err := h.service.GetAvailableSlots(r.Context(), date)
	if err != nil {
		respondServiceError(w, h.log, err, "get available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetOccupiedSlots handles GET /api/availability/occupied?date=YYYY-MM-DD&schedule_day_id={uuid}
func (h *AvailabilityHandler) GetOccupiedSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	scheduleDayID := query.Get("schedule_day_id")
	if scheduleDayID == "" {
		utils.ResponseBadRequest(w, "schedule_day_id query parameter is required", nil)
		return
	}

	slots, err := h.service.GetOccupiedSlots(r.Context(), date, scheduleDayID)
	if err != nil {
		respondServiceError(w, h.log, err, "get occupied slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}
