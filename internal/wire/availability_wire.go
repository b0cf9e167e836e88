package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// GET /api/availability?date=YYYY-MM-DD - Slots with free courts
	r.Get("/api/availability", availabilityHandler.GetAvailableSlots)

	// GET /api/availability/occupied?date=YYYY-MM-DD&schedule_day_id={uuid} - Slots with taken courts
	r.Get("/api/availability/occupied", availabilityHandler.GetOccupiedSlots)
}
