package usecase

import (
	"context"
	"testing"

	"court-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUnavailableDayForWholeFacility(t *testing.T) {
	env := newTestEnv()

	resp, err := env.service.Schedule.AddUnavailableDay(context.Background(), &request.CreateUnavailableDayRequest{
		Date:   monday,
		Reason: "maintenance",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.CourtID)

	blackout, err := env.service.Schedule.GetBlackout(context.Background(), monday)
	require.NoError(t, err)
	assert.True(t, blackout.WholeDay)
	assert.Empty(t, blackout.CourtIDs)
}

func TestAddUnavailableDayForOneCourt(t *testing.T) {
	env := newTestEnv()
	courtID := env.seedCourt("Court 1", uuid.New(), true)

	_, err := env.service.Schedule.AddUnavailableDay(context.Background(), &request.CreateUnavailableDayRequest{
		Date:    monday,
		CourtID: courtID.String(),
	})
	require.NoError(t, err)

	blackout, err := env.service.Schedule.GetBlackout(context.Background(), monday)
	require.NoError(t, err)
	assert.False(t, blackout.WholeDay)
	assert.Equal(t, []string{courtID.String()}, blackout.CourtIDs)
}

func TestAddUnavailableDayUnknownCourtIsNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Schedule.AddUnavailableDay(context.Background(), &request.CreateUnavailableDayRequest{
		Date:    monday,
		CourtID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveUnavailableDayRestoresDate(t *testing.T) {
	env := newTestEnv()

	resp, err := env.service.Schedule.AddUnavailableDay(context.Background(), &request.CreateUnavailableDayRequest{
		Date: monday,
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Schedule.RemoveUnavailableDay(context.Background(), resp.ID))

	blackout, err := env.service.Schedule.GetBlackout(context.Background(), monday)
	require.NoError(t, err)
	assert.False(t, blackout.WholeDay)
}

func TestGetOperatingWindowsForWeekday(t *testing.T) {
	env := newTestEnv()
	sportID := uuid.New()
	dayID := env.seedScheduleDay(1, true)
	env.seedWindow(dayID, sportID, "08:00", "12:00")
	env.seedWindow(dayID, uuid.New(), "14:00", "22:00")

	windows, err := env.service.Schedule.GetOperatingWindows(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Len(t, windows, 2)

	windows, err = env.service.Schedule.GetOperatingWindows(context.Background(), 1, sportID.String())
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "08:00", windows[0].Start)
}

func TestGetWeekListsConfiguredDays(t *testing.T) {
	env := newTestEnv()
	env.seedScheduleDay(1, true)
	env.seedScheduleDay(2, false)

	days, err := env.service.Schedule.GetWeek(context.Background())
	require.NoError(t, err)
	assert.Len(t, days, 2)
}
