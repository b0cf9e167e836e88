// internal/wire/wire.go
package wire

import (
	"net/http"

	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/internal/gateway"
	"court-booking/internal/usecase"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependency graph. Service is exposed so the
// entrypoint can run expiration reconciliation before serving traffic.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, payments gateway.PaymentGateway, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, payments, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAvailability(r, handler.Availability)
	wireReservation(r, handler.Reservation)
	wirePayment(r, handler.Payment)
	wireFixed(r, handler.Fixed)
	wireSchedule(r, handler.Schedule)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
