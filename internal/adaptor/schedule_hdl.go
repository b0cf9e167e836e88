package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// GetWeek handles GET /api/schedule/week
func (h *ScheduleHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.GetWeek(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "get week schedule")
		return
	}

	utils.ResponseSuccess(w, "success", days)
}

// GetOperatingWindows handles GET /api/schedule/windows?weekday=0..6&sport_type_id={uuid}
func (h *ScheduleHandler) GetOperatingWindows(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	weekday, err := strconv.Atoi(query.Get("weekday"))
	if err != nil {
		utils.ResponseBadRequest(w, "weekday query parameter is required", nil)
		return
	}

	windows, err := h.service.GetOperatingWindows(r.Context(), weekday, query.Get("sport_type_id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get operating windows")
		return
	}

	utils.ResponseSuccess(w, "success", windows)
}

// GetBlackout handles GET /api/schedule/blackout?date=YYYY-MM-DD
func (h *ScheduleHandler) GetBlackout(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	blackout, err := h.service.GetBlackout(r.Context(), date)
	if err != nil {
		respondServiceError(w, h.log, err, "get blackout")
		return
	}

	utils.ResponseSuccess(w, "success", blackout)
}

// AddUnavailableDay handles POST /api/admin/unavailable-days
func (h *ScheduleHandler) AddUnavailableDay(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUnavailableDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	day, err := h.service.AddUnavailableDay(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "add unavailable day")
		return
	}

	utils.ResponseCreated(w, "success", day)
}

// RemoveUnavailableDay handles DELETE /api/admin/unavailable-days/{id}
func (h *ScheduleHandler) RemoveUnavailableDay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Unavailable day ID is required", nil)
		return
	}

	if err := h.service.RemoveUnavailableDay(r.Context(), id); err != nil {
		respondServiceError(w, h.log, err, "remove unavailable day")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
