package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFixed(r chi.Router, fixedHandler *adaptor.FixedReservationHandler) {
	// GET /api/fixed-reservations?weekday=0..6 - Active recurring bookings (public)
	r.Get("/api/fixed-reservations", fixedHandler.GetForWeekday)

	// Admin fixed reservation management routes
	r.Route("/api/admin/fixed-reservations", func(r chi.Router) {
		// POST /api/admin/fixed-reservations - Register recurring booking
		r.Post("/", fixedHandler.CreateFixedReservation)

		// PUT /api/admin/fixed-reservations/{id}/active - Toggle recurring booking
		r.Put("/{id}/active", fixedHandler.SetActive)

		// DELETE /api/admin/fixed-reservations/{id} - Remove recurring booking
		r.Delete("/{id}", fixedHandler.DeleteFixedReservation)
	})
}
