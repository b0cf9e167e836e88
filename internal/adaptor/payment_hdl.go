package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.ReservationService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Webhook handles POST /api/payments/webhook. The provider retries on
// non-2xx, so late callbacks for already-settled reservations are
// acknowledged instead of rejected.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	err := h.service.TransitionOnPaymentResult(r.Context(), req.ExternalReference, req.Status)
	if err != nil {
		if errors.Is(err, usecase.ErrStaleCallback) {
			h.log.Info("Ignoring stale payment callback",
				zap.String("reservation_id", req.ExternalReference),
				zap.String("payment_id", req.PaymentID),
				zap.String("status", req.Status),
			)
			utils.ResponseSuccess(w, "ignored", nil)
			return
		}
		respondServiceError(w, h.log, err, "process payment callback")
		return
	}

	h.log.Info("Payment callback processed",
		zap.String("reservation_id", req.ExternalReference),
		zap.String("payment_id", req.PaymentID),
		zap.String("status", req.Status),
	)

	utils.ResponseSuccess(w, "success", nil)
}
