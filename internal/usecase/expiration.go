package usecase

import (
	"context"
	"sync"
	"time"

	"court-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpirationRegistry owns one one-shot timer per pending reservation.
// The persisted expires_at is the source of truth; a timer is only the
// trigger, so Reconcile can rebuild the whole registry after a restart.
type ExpirationRegistry struct {
	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer

	reservations repository.ReservationRepository
	log          *zap.Logger
}

func NewExpirationRegistry(reservations repository.ReservationRepository, log *zap.Logger) *ExpirationRegistry {
	return &ExpirationRegistry{
		timers:       make(map[uuid.UUID]*time.Timer),
		reservations: reservations,
		log:          log.With(zap.String("service", "expiration")),
	}
}

// Arm schedules the expiration of one reservation. Re-arming an id
// replaces its previous timer.
func (e *ExpirationRegistry) Arm(id uuid.UUID, delay time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if timer, ok := e.timers[id]; ok {
		timer.Stop()
	}

	e.timers[id] = time.AfterFunc(delay, func() {
		e.fire(id)
	})

	e.log.Debug("Expiration armed",
		zap.String("reservation_id", id.String()),
		zap.Duration("delay", delay),
	)
}

// Disarm cancels a pending timer. Safe to call for ids that were never
// armed or have already fired.
func (e *ExpirationRegistry) Disarm(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if timer, ok := e.timers[id]; ok {
		timer.Stop()
		delete(e.timers, id)
		e.log.Debug("Expiration disarmed", zap.String("reservation_id", id.String()))
	}
}

// fire evaluates one reservation against its live status. The
// bookkeeping entry goes away regardless of the outcome; a failed
// reject write is left for the next reconcile pass.
func (e *ExpirationRegistry) fire(id uuid.UUID) {
	e.mu.Lock()
	delete(e.timers, id)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e.expire(ctx, id)
}

func (e *ExpirationRegistry) expire(ctx context.Context, id uuid.UUID) {
	reservation, err := e.reservations.FindByID(ctx, id)
	if err != nil {
		e.log.Error("Expiration read failed, leaving reservation for next sweep",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return
	}

	if reservation == nil || reservation.Status.IsTerminal() {
		return
	}

	rejected, err := e.reservations.SetRejectedIfPending(ctx, id)
	if err != nil {
		e.log.Error("Expiration reject failed, leaving reservation for next sweep",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return
	}

	if rejected {
		e.log.Info("Reservation expired",
			zap.String("reservation_id", id.String()),
			zap.String("user_id", reservation.UserID.String()),
		)
	}
}

// Reconcile rebuilds timers from persisted state: pending reservations
// already past expires_at are rejected synchronously, the rest are
// re-armed with their remaining delay. Runs at startup before the
// server accepts requests, and again from the periodic sweep.
func (e *ExpirationRegistry) Reconcile(ctx context.Context) error {
	pending, err := e.reservations.FindPending(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	expired, armed := 0, 0

	for _, reservation := range pending {
		if reservation.ExpiresAt == nil {
			// Pending without a deadline should not happen; expire it
			// so it cannot hold the slot forever.
			e.expire(ctx, reservation.ID)
			expired++
			continue
		}

		if remaining := reservation.ExpiresAt.Sub(now); remaining > 0 {
			e.Arm(reservation.ID, remaining)
			armed++
		} else {
			e.expire(ctx, reservation.ID)
			expired++
		}
	}

	e.log.Info("Expiration reconciled",
		zap.Int("pending", len(pending)),
		zap.Int("armed", armed),
		zap.Int("expired", expired),
	)

	return nil
}

// StartSweeper runs Reconcile on a fixed interval until ctx is done.
// It backstops timer-fire writes that failed.
func (e *ExpirationRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.Reconcile(ctx); err != nil {
					e.log.Error("Expiration sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop cancels every armed timer. Used on shutdown and in tests.
func (e *ExpirationRegistry) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, timer := range e.timers {
		timer.Stop()
		delete(e.timers, id)
	}
}
