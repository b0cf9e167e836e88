package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationFixture struct {
	env     *testEnv
	userID  uuid.UUID
	courtID uuid.UUID
	rateID  uuid.UUID
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	env := newTestEnv()
	t.Cleanup(env.service.Expiration.Stop)

	sportID := uuid.New()
	dayID := env.seedScheduleDay(1, true)
	env.seedWindow(dayID, sportID, "08:00", "10:00")

	return &reservationFixture{
		env:     env,
		userID:  env.seedUser("lea"),
		courtID: env.seedCourt("Court 1", sportID, true),
		rateID:  env.seedRate(100, 20),
	}
}

func (f *reservationFixture) createRequest() *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		Date:      monday,
		StartTime: "08:00",
		EndTime:   "09:00",
		CourtID:   f.courtID.String(),
		UserID:    f.userID.String(),
		RateID:    f.rateID.String(),
	}
}

func TestCreateReservationStartsPendingWithDeadline(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusPending, resp.Status)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), *resp.ExpiresAt, 5*time.Second)
	assert.Equal(t, 100.0, resp.Price)
	assert.Equal(t, 20.0, resp.DepositAmount)
	assert.NotEmpty(t, resp.PaymentURL)
	assert.Equal(t, 1, f.env.gateway.callCount())
	assert.Equal(t, 1, f.env.timerCount())
}

func TestCreateReservationConflictsOnTakenSlot(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	second := f.createRequest()
	second.UserID = f.env.seedUser("marc").String()

	_, err = f.env.service.Reservation.Create(context.Background(), second)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateReservationConflictsOnSecondPendingForUser(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	second := f.createRequest()
	second.StartTime = "09:00"
	second.EndTime = "10:00"

	_, err = f.env.service.Reservation.Create(context.Background(), second)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateReservationUnknownUserIsNotFound(t *testing.T) {
	f := newReservationFixture(t)

	req := f.createRequest()
	req.UserID = uuid.New().String()

	_, err := f.env.service.Reservation.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReservationSurvivesGatewayOutage(t *testing.T) {
	f := newReservationFixture(t)
	f.env.gateway.fail = true

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusPending, resp.Status)
	assert.Empty(t, resp.PaymentURL)
	assert.Equal(t, 1, f.env.timerCount(), "the deadline still bounds the unpaid hold")
}

func TestConcurrentCreatesYieldOneSuccess(t *testing.T) {
	f := newReservationFixture(t)
	otherUser := f.env.seedUser("marc")

	requests := []*request.CreateReservationRequest{f.createRequest(), f.createRequest()}
	requests[1].UserID = otherUser.String()

	var wg sync.WaitGroup
	errs := make([]error, len(requests))
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *request.CreateReservationRequest) {
			defer wg.Done()
			_, errs[i] = f.env.service.Reservation.Create(context.Background(), req)
		}(i, req)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestApprovedPaymentApprovesAndClearsDeadline(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	err = f.env.service.Reservation.TransitionOnPaymentResult(context.Background(), resp.ID, PaymentResultApproved)
	require.NoError(t, err)

	stored := f.env.reservation(uuid.MustParse(resp.ID))
	assert.Equal(t, entity.ReservationStatusApproved, stored.Status)
	assert.Nil(t, stored.ExpiresAt)
	assert.Equal(t, 0, f.env.timerCount(), "timer disarmed on approval")
}

func TestRejectedPaymentKeepsReservationRetryable(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	err = f.env.service.Reservation.TransitionOnPaymentResult(context.Background(), resp.ID, PaymentResultRejected)
	require.NoError(t, err)

	stored := f.env.reservation(uuid.MustParse(resp.ID))
	assert.Equal(t, entity.ReservationStatusPending, stored.Status, "user may retry with another method")
	assert.Nil(t, stored.PaymentToken)
	assert.NotNil(t, stored.ExpiresAt, "the hold deadline stays in force")
	assert.Equal(t, 1, f.env.timerCount())
}

func TestPendingPaymentResultIsNoOp(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	err = f.env.service.Reservation.TransitionOnPaymentResult(context.Background(), resp.ID, PaymentResultPending)
	require.NoError(t, err)

	stored := f.env.reservation(uuid.MustParse(resp.ID))
	assert.Equal(t, entity.ReservationStatusPending, stored.Status)
}

func TestLateCallbackAfterCancelIsStale(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.env.service.Reservation.Cancel(context.Background(), resp.ID))

	err = f.env.service.Reservation.TransitionOnPaymentResult(context.Background(), resp.ID, PaymentResultApproved)
	assert.ErrorIs(t, err, ErrStaleCallback)

	stored := f.env.reservation(uuid.MustParse(resp.ID))
	assert.Equal(t, entity.ReservationStatusCanceled, stored.Status)
}

func TestCancelPendingReservationDisarmsTimer(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	require.Equal(t, 1, f.env.timerCount())

	require.NoError(t, f.env.service.Reservation.Cancel(context.Background(), resp.ID))

	stored := f.env.reservation(uuid.MustParse(resp.ID))
	assert.Equal(t, entity.ReservationStatusCanceled, stored.Status)
	assert.Equal(t, 0, f.env.timerCount())
}

func TestCancelCanceledReservationConflicts(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.env.service.Reservation.Cancel(context.Background(), resp.ID))
	err = f.env.service.Reservation.Cancel(context.Background(), resp.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateReschedulesPendingReservation(t *testing.T) {
	f := newReservationFixture(t)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	updated, err := f.env.service.Reservation.Update(context.Background(), resp.ID, &request.UpdateReservationRequest{
		Date:      monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		CourtID:   f.courtID.String(),
		RateID:    f.rateID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00", updated.Slot)
}

func TestUpdateConflictsOnOccupiedSlot(t *testing.T) {
	f := newReservationFixture(t)

	expires := time.Now().Add(30 * time.Minute)
	f.env.seedReservation(mondayDate(t), "09:00", "10:00", f.courtID, f.env.seedUser("marc"),
		entity.ReservationStatusPending, &expires)

	resp, err := f.env.service.Reservation.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.env.service.Reservation.Update(context.Background(), resp.ID, &request.UpdateReservationRequest{
		Date:      monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		CourtID:   f.courtID.String(),
		RateID:    f.rateID.String(),
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestListByUserPaginates(t *testing.T) {
	f := newReservationFixture(t)

	for i, start := range []string{"08:00", "09:00"} {
		end := []string{"09:00", "10:00"}[i]
		f.env.seedReservation(mondayDate(t), start, end, f.courtID, f.userID,
			entity.ReservationStatusApproved, nil)
	}

	page, err := f.env.service.Reservation.ListByUser(context.Background(), f.userID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
}
