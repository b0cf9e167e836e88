package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/reservations", func(r chi.Router) {
		// POST /api/reservations - Create reservation (starts PENDING with a TTL)
		r.Post("/", reservationHandler.CreateReservation)

		// GET /api/reservations/{id} - Reservation details
		r.Get("/{id}", reservationHandler.GetReservation)

		// PUT /api/reservations/{id} - Reschedule a pending reservation
		r.Put("/{id}", reservationHandler.UpdateReservation)

		// DELETE /api/reservations/{id} - Cancel reservation
		r.Delete("/{id}", reservationHandler.CancelReservation)
	})

	// GET /api/users/{id}/reservations - Reservation history for a user
	r.Get("/api/users/{id}/reservations", reservationHandler.GetUserReservations)

	// DELETE /api/admin/reservations/{id} - Hard delete (admin)
	r.Delete("/api/admin/reservations/{id}", reservationHandler.RemoveReservation)
}
