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

type FixedReservationHandler struct {
	service usecase.FixedReservationService
	log     *zap.Logger
}

func NewFixedReservationHandler(service usecase.FixedReservationService, log *zap.Logger) *FixedReservationHandler {
	return &FixedReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "fixed_reservation")),
	}
}

// GetForWeekday handles GET /api/fixed-reservations?weekday=0..6&sport_type_id={uuid}
func (h *FixedReservationHandler) GetForWeekday(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	weekday, err := strconv.Atoi(query.Get("weekday"))
	if err != nil {
		utils.ResponseBadRequest(w, "weekday query parameter is required", nil)
		return
	}

	fixed, err := h.service.GetActiveForWeekday(r.Context(), weekday, query.Get("sport_type_id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get fixed reservations")
		return
	}

	utils.ResponseSuccess(w, "success", fixed)
}

// CreateFixedReservation handles POST /api/admin/fixed-reservations
func (h *FixedReservationHandler) CreateFixedReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFixedReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	fixed, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create fixed reservation")
		return
	}

	utils.ResponseCreated(w, "success", fixed)
}

// SetActive handles PUT /api/admin/fixed-reservations/{id}/active
func (h *FixedReservationHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Fixed reservation ID is required", nil)
		return
	}

	var req request.SetFixedActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SetActive(r.Context(), id, *req.IsActive); err != nil {
		respondServiceError(w, h.log, err, "toggle fixed reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteFixedReservation handles DELETE /api/admin/fixed-reservations/{id}
func (h *FixedReservationHandler) DeleteFixedReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Fixed reservation ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.log, err, "delete fixed reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
