package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/gateway"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the storage layer. It enforces
// the same uniqueness rules as the partial indexes so conflict paths
// behave like they do against Postgres. Thin per-interface adapters
// below expose it as a *repository.Repository.
type memStore struct {
	mu sync.Mutex

	users        map[uuid.UUID]*entity.User
	courts       map[uuid.UUID]*entity.Court
	rates        map[uuid.UUID]*entity.Rate
	scheduleDays map[int]*entity.ScheduleDay
	windows      []*entity.ScheduleWindow
	unavailable  []*entity.UnavailableDay
	fixed        []*entity.FixedReservation
	reservations map[uuid.UUID]*entity.Reservation
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*entity.User),
		courts:       make(map[uuid.UUID]*entity.Court),
		rates:        make(map[uuid.UUID]*entity.Rate),
		scheduleDays: make(map[int]*entity.ScheduleDay),
		reservations: make(map[uuid.UUID]*entity.Reservation),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:           memUserRepo{m},
		Court:          memCourtRepo{m},
		Rate:           memRateRepo{m},
		ScheduleDay:    memScheduleDayRepo{m},
		ScheduleWindow: memWindowRepo{m},
		UnavailableDay: memUnavailableRepo{m},
		Fixed:          memFixedRepo{m},
		Reservation:    memReservationRepo{m},
	}
}

// ---- users / courts / rates ----

type memUserRepo struct{ s *memStore }

func (r memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

type memCourtRepo struct{ s *memStore }

func (r memCourtRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.courts[id], nil
}

func (r memCourtRepo) FindAllActive(ctx context.Context) ([]*entity.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var active []*entity.Court
	for _, court := range r.s.courts {
		if court.IsActive {
			active = append(active, court)
		}
	}
	return active, nil
}

type memRateRepo struct{ s *memStore }

func (r memRateRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.rates[id], nil
}

// ---- schedule ----

type memScheduleDayRepo struct{ s *memStore }

func (r memScheduleDayRepo) FindByWeekday(ctx context.Context, weekday int) (*entity.ScheduleDay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.scheduleDays[weekday], nil
}

func (r memScheduleDayRepo) FindAll(ctx context.Context) ([]*entity.ScheduleDay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var days []*entity.ScheduleDay
	for _, day := range r.s.scheduleDays {
		days = append(days, day)
	}
	return days, nil
}

type memWindowRepo struct{ s *memStore }

func (r memWindowRepo) FindByWeekday(ctx context.Context, weekday int) ([]*entity.ScheduleWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := r.s.scheduleDays[weekday]
	if day == nil {
		return nil, nil
	}

	var windows []*entity.ScheduleWindow
	for _, window := range r.s.windows {
		if window.ScheduleDayID == day.ID {
			windows = append(windows, window)
		}
	}
	return windows, nil
}

func (r memWindowRepo) FindByWeekdayAndSport(ctx context.Context, weekday int, sportTypeID uuid.UUID) ([]*entity.ScheduleWindow, error) {
	windows, err := r.FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	var filtered []*entity.ScheduleWindow
	for _, window := range windows {
		if window.SportTypeID == sportTypeID {
			filtered = append(filtered, window)
		}
	}
	return filtered, nil
}

func (r memWindowRepo) FindByScheduleDayID(ctx context.Context, scheduleDayID uuid.UUID) ([]*entity.ScheduleWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var windows []*entity.ScheduleWindow
	for _, window := range r.s.windows {
		if window.ScheduleDayID == scheduleDayID {
			windows = append(windows, window)
		}
	}
	return windows, nil
}

type memUnavailableRepo struct{ s *memStore }

func (r memUnavailableRepo) Create(ctx context.Context, day *entity.UnavailableDay) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.unavailable = append(r.s.unavailable, day)
	return nil
}

func (r memUnavailableRepo) FindByDate(ctx context.Context, date time.Time) ([]*entity.UnavailableDay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matches []*entity.UnavailableDay
	for _, day := range r.s.unavailable {
		if day.Date.Equal(date) {
			matches = append(matches, day)
		}
	}
	return matches, nil
}

func (r memUnavailableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, day := range r.s.unavailable {
		if day.ID == id {
			r.s.unavailable = append(r.s.unavailable[:i], r.s.unavailable[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unavailable day %s not found", id)
}

// ---- fixed reservations ----

type memFixedRepo struct{ s *memStore }

func (r memFixedRepo) Create(ctx context.Context, fixed *entity.FixedReservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.fixed = append(r.s.fixed, fixed)
	return nil
}

func (r memFixedRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.FixedReservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, fixed := range r.s.fixed {
		if fixed.ID == id {
			return fixed, nil
		}
	}
	return nil, nil
}

func (r memFixedRepo) FindActiveByWeekday(ctx context.Context, weekday int) ([]*entity.FixedReservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matches []*entity.FixedReservation
	for _, fixed := range r.s.fixed {
		if fixed.IsActive && fixed.Weekday == weekday {
			matches = append(matches, fixed)
		}
	}
	return matches, nil
}

func (r memFixedRepo) FindActiveByWeekdayAndSport(ctx context.Context, weekday int, sportTypeID uuid.UUID) ([]*entity.FixedReservation, error) {
	matches, err := r.FindActiveByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var filtered []*entity.FixedReservation
	for _, fixed := range matches {
		if court := r.s.courts[fixed.CourtID]; court != nil && court.SportTypeID == sportTypeID {
			filtered = append(filtered, fixed)
		}
	}
	return filtered, nil
}

func (r memFixedRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, fixed := range r.s.fixed {
		if fixed.ID == id {
			fixed.IsActive = active
			return nil
		}
	}
	return fmt.Errorf("fixed reservation %s not found", id)
}

func (r memFixedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, fixed := range r.s.fixed {
		if fixed.ID == id {
			r.s.fixed = append(r.s.fixed[:i], r.s.fixed[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fixed reservation %s not found", id)
}

// ---- reservations ----

type memReservationRepo struct{ s *memStore }

func (r memReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reservations {
		if existing.Status != entity.ReservationStatusRejected &&
			existing.Date.Equal(reservation.Date) &&
			existing.StartTime == reservation.StartTime &&
			existing.CourtID == reservation.CourtID {
			return repository.ErrDuplicate
		}
		if reservation.Status == entity.ReservationStatusPending &&
			existing.Status == entity.ReservationStatusPending &&
			existing.UserID == reservation.UserID {
			return repository.ErrDuplicate
		}
	}

	r.s.reservations[reservation.ID] = reservation
	return nil
}

func (r memReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.reservations[id], nil
}

func (r memReservationRepo) FindActiveByDate(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matches []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.Date.Equal(date) && reservation.Status != entity.ReservationStatusRejected {
			matches = append(matches, reservation)
		}
	}
	return matches, nil
}

func (r memReservationRepo) FindPendingByUserID(ctx context.Context, userID uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, reservation := range r.s.reservations {
		if reservation.UserID == userID && reservation.Status == entity.ReservationStatusPending {
			return reservation, nil
		}
	}
	return nil, nil
}

func (r memReservationRepo) ExistsActiveSlot(ctx context.Context, date time.Time, startTime string, courtID, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, reservation := range r.s.reservations {
		if reservation.ID != excludeID &&
			reservation.Status != entity.ReservationStatusRejected &&
			reservation.Date.Equal(date) &&
			reservation.StartTime == startTime &&
			reservation.CourtID == courtID {
			return true, nil
		}
	}
	return false, nil
}

func (r memReservationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matches []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.UserID == userID {
			matches = append(matches, reservation)
		}
	}

	if offset >= len(matches) {
		return nil, nil
	}
	matches = matches[offset:]
	if limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r memReservationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, reservation := range r.s.reservations {
		if reservation.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r memReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reservations {
		if existing.ID != reservation.ID &&
			existing.Status != entity.ReservationStatusRejected &&
			existing.Date.Equal(reservation.Date) &&
			existing.StartTime == reservation.StartTime &&
			existing.CourtID == reservation.CourtID {
			return repository.ErrDuplicate
		}
	}

	r.s.reservations[reservation.ID] = reservation
	return nil
}

func (r memReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[id]; !ok {
		return fmt.Errorf("reservation %s not found", id)
	}
	delete(r.s.reservations, id)
	return nil
}

func (r memReservationRepo) SetPaymentInfo(ctx context.Context, id uuid.UUID, token, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %s not found", id)
	}
	reservation.PaymentToken = &token
	reservation.PaymentURL = &url
	return nil
}

func (r memReservationRepo) ClearPaymentInfo(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if reservation, ok := r.s.reservations[id]; ok {
		reservation.PaymentToken = nil
		reservation.PaymentURL = nil
	}
	return nil
}

func (r memReservationRepo) SetApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(id, entity.ReservationStatusApproved, entity.ReservationStatusPending)
}

func (r memReservationRepo) SetRejectedIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(id, entity.ReservationStatusRejected, entity.ReservationStatusPending)
}

func (r memReservationRepo) SetCanceled(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(id, entity.ReservationStatusCanceled,
		entity.ReservationStatusPending, entity.ReservationStatusApproved)
}

func (r memReservationRepo) transition(id uuid.UUID, to entity.ReservationStatus, from ...entity.ReservationStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return false, nil
	}

	allowed := false
	for _, status := range from {
		if reservation.Status == status {
			allowed = true
		}
	}
	if !allowed {
		return false, nil
	}

	reservation.Status = to
	reservation.ExpiresAt = nil
	if to != entity.ReservationStatusCanceled {
		reservation.PaymentToken = nil
		reservation.PaymentURL = nil
	}
	return true, nil
}

func (r memReservationRepo) FindPending(ctx context.Context) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var pending []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.Status == entity.ReservationStatusPending {
			pending = append(pending, reservation)
		}
	}
	return pending, nil
}

// fakeGateway records preference calls and optionally fails them.
type fakeGateway struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (g *fakeGateway) CreatePreference(ctx context.Context, pref *gateway.Preference) (*gateway.PreferenceResult, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.fail {
		return nil, fmt.Errorf("payment provider unavailable")
	}
	return &gateway.PreferenceResult{
		ID:        "pref-" + pref.ExternalReference,
		InitPoint: "https://pay.example/checkout/" + pref.ExternalReference,
	}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			TTLMinutes:  30,
			SlotMinutes: 60,
			Timezone:    "UTC",
		},
	}
}

type testEnv struct {
	store   *memStore
	gateway *fakeGateway
	service *Service
}

func newTestEnv() *testEnv {
	store := newMemStore()
	gw := &fakeGateway{}

	return &testEnv{
		store:   store,
		gateway: gw,
		service: NewService(store.repository(), gw, testConfig(), zap.NewNop()),
	}
}

// Seed helpers insert reference rows directly and return their ids.

func (e *testEnv) seedUser(name string) uuid.UUID {
	id := uuid.New()
	e.store.users[id] = &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Name:         name,
		Email:        name + "@example.com",
	}
	return id
}

func (e *testEnv) seedCourt(name string, sportTypeID uuid.UUID, active bool) uuid.UUID {
	id := uuid.New()
	e.store.courts[id] = &entity.Court{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Name:         name,
		SportTypeID:  sportTypeID,
		IsActive:     active,
	}
	return id
}

func (e *testEnv) seedRate(price, deposit float64) uuid.UUID {
	id := uuid.New()
	e.store.rates[id] = &entity.Rate{
		BaseNoDelete:  entity.BaseNoDelete{ID: id},
		Name:          "standard",
		Price:         price,
		DepositAmount: deposit,
	}
	return id
}

func (e *testEnv) seedScheduleDay(weekday int, active bool) uuid.UUID {
	id := uuid.New()
	e.store.scheduleDays[weekday] = &entity.ScheduleDay{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Weekday:      weekday,
		IsActive:     active,
	}
	return id
}

func (e *testEnv) seedWindow(scheduleDayID, sportTypeID uuid.UUID, start, end string) uuid.UUID {
	id := uuid.New()
	e.store.windows = append(e.store.windows, &entity.ScheduleWindow{
		BaseNoDelete:  entity.BaseNoDelete{ID: id},
		ScheduleDayID: scheduleDayID,
		SportTypeID:   sportTypeID,
		StartTime:     start,
		EndTime:       end,
	})
	return id
}

func (e *testEnv) seedFixed(weekday int, start, end string, courtID, userID, rateID uuid.UUID, active bool) uuid.UUID {
	id := uuid.New()
	e.store.fixed = append(e.store.fixed, &entity.FixedReservation{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Weekday:      weekday,
		StartTime:    start,
		EndTime:      end,
		CourtID:      courtID,
		UserID:       userID,
		RateID:       rateID,
		IsActive:     active,
	})
	return id
}

func (e *testEnv) seedBlackout(date time.Time, courtID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	e.store.unavailable = append(e.store.unavailable, &entity.UnavailableDay{
		BaseSimple: entity.BaseSimple{ID: id},
		Date:       date,
		CourtID:    courtID,
	})
	return id
}

func (e *testEnv) seedReservation(date time.Time, start, end string, courtID, userID uuid.UUID, status entity.ReservationStatus, expiresAt *time.Time) uuid.UUID {
	id := uuid.New()
	e.store.reservations[id] = &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		CourtID:      courtID,
		UserID:       userID,
		Status:       status,
		ExpiresAt:    expiresAt,
	}
	return id
}

func (e *testEnv) reservation(id uuid.UUID) *entity.Reservation {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.store.reservations[id]
}

func (e *testEnv) timerCount() int {
	reg := e.service.Expiration
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.timers)
}
