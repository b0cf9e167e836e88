package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(r chi.Router, scheduleHandler *adaptor.ScheduleHandler) {
	r.Route("/api/schedule", func(r chi.Router) {
		// GET /api/schedule/week - Weekly operating calendar
		r.Get("/week", scheduleHandler.GetWeek)

		// GET /api/schedule/windows?weekday=0..6 - Operating windows for a weekday
		r.Get("/windows", scheduleHandler.GetOperatingWindows)

		// GET /api/schedule/blackout?date=YYYY-MM-DD - Blackout info for a date
		r.Get("/blackout", scheduleHandler.GetBlackout)
	})

	// Admin blackout management routes
	r.Route("/api/admin/unavailable-days", func(r chi.Router) {
		// POST /api/admin/unavailable-days - Block a date (whole facility or one court)
		r.Post("/", scheduleHandler.AddUnavailableDay)

		// DELETE /api/admin/unavailable-days/{id} - Unblock
		r.Delete("/{id}", scheduleHandler.RemoveUnavailableDay)
	})
}
