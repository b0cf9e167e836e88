package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// POST /api/payments/webhook - Payment provider callback
	r.Post("/api/payments/webhook", paymentHandler.Webhook)
}
