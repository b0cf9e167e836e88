package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/response"
	"court-booking/pkg/timeslot"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, date string) ([]response.SlotAvailability, error)
	GetOccupiedSlots(ctx context.Context, date string, scheduleDayID string) ([]response.SlotOccupancy, error)
}

type availabilityService struct {
	repo        *repository.Repository
	slotMinutes int
	loc         *time.Location
	log         *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AvailabilityService {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		log.Warn("Unknown facility timezone, falling back to UTC",
			zap.String("timezone", config.Booking.Timezone),
		)
		loc = time.UTC
	}

	return &availabilityService{
		repo:        repo,
		slotMinutes: config.Booking.SlotMinutes,
		loc:         loc,
		log:         log.With(zap.String("service", "availability")),
	}
}

// occupancy is one court-blocking entry, either an ad-hoc reservation
// on the date or an active fixed reservation on the weekday.
type occupancy struct {
	courtID    uuid.UUID
	start, end string
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, date string) ([]response.SlotAvailability, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	weekday := timeslot.Weekday(day)

	scheduleDay, err := s.repo.ScheduleDay.FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("load schedule day: %w", err)
	}
	if scheduleDay == nil || !scheduleDay.IsActive {
		return []response.SlotAvailability{}, nil
	}

	blackouts, err := s.repo.UnavailableDay.FindByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load blackouts: %w", err)
	}

	blockedCourts := make(map[uuid.UUID]bool)
	for _, blackout := range blackouts {
		if blackout.CourtID == nil {
			// Whole facility blocked, nothing to offer on this date.
			return []response.SlotAvailability{}, nil
		}
		blockedCourts[*blackout.CourtID] = true
	}

	slots, err := s.buildSlots(ctx, weekday)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []response.SlotAvailability{}, nil
	}

	courts, err := s.repo.Court.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courts: %w", err)
	}

	occupancies, err := s.loadOccupancies(ctx, day, weekday)
	if err != nil {
		return nil, err
	}

	result := make([]response.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		available := make([]response.CourtRef, 0, len(courts))
		occupied := s.occupiedCourts(occupancies, slot)

		for _, court := range courts {
			if blockedCourts[court.ID] || occupied[court.ID] {
				continue
			}
			available = append(available, response.CourtRef{ID: court.ID.String(), Name: court.Name})
		}

		result = append(result, response.SlotAvailability{
			Slot:   slot.String(),
			Start:  slot.Start,
			End:    slot.End,
			Courts: available,
		})
	}

	return result, nil
}

func (s *availabilityService) GetOccupiedSlots(ctx context.Context, date string, scheduleDayID string) ([]response.SlotOccupancy, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	dayID, err := uuid.Parse(scheduleDayID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule day id %q", ErrValidation, scheduleDayID)
	}

	windows, err := s.repo.ScheduleWindow.FindByScheduleDayID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("load schedule windows: %w", err)
	}

	slots, err := s.slotsFromWindows(windows)
	if err != nil {
		return nil, err
	}

	courtNames, err := s.courtNameIndex(ctx)
	if err != nil {
		return nil, err
	}

	occupancies, err := s.loadOccupancies(ctx, day, timeslot.Weekday(day))
	if err != nil {
		return nil, err
	}

	result := make([]response.SlotOccupancy, 0, len(slots))
	for _, slot := range slots {
		occupied := s.occupiedCourts(occupancies, slot)

		courts := make([]response.CourtRef, 0, len(occupied))
		for courtID := range occupied {
			courts = append(courts, response.CourtRef{ID: courtID.String(), Name: courtNames[courtID]})
		}
		sort.Slice(courts, func(i, j int) bool { return courts[i].Name < courts[j].Name })

		result = append(result, response.SlotOccupancy{
			Slot:   slot.String(),
			Start:  slot.Start,
			End:    slot.End,
			Courts: courts,
		})
	}

	return result, nil
}

func (s *availabilityService) parseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	return timeslot.DayOf(parsed, s.loc), nil
}

// buildSlots generates the deduplicated, start-ordered slot list from
// every operating window of the weekday.
func (s *availabilityService) buildSlots(ctx context.Context, weekday int) ([]timeslot.Slot, error) {
	windows, err := s.repo.ScheduleWindow.FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("load schedule windows: %w", err)
	}

	return s.slotsFromWindows(windows)
}

func (s *availabilityService) slotsFromWindows(windows []*entity.ScheduleWindow) ([]timeslot.Slot, error) {
	seen := make(map[string]bool)
	var slots []timeslot.Slot

	for _, window := range windows {
		windowSlots, err := timeslot.SplitIntoSlots(window.StartTime, window.EndTime, s.slotMinutes)
		if err != nil {
			s.log.Warn("Skipping malformed schedule window",
				zap.Error(err),
				zap.String("window_id", window.ID.String()),
			)
			continue
		}

		for _, slot := range windowSlots {
			if !seen[slot.String()] {
				seen[slot.String()] = true
				slots = append(slots, slot)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		a, _ := timeslot.ParseClock(slots[i].Start)
		b, _ := timeslot.ParseClock(slots[j].Start)
		return a < b
	})

	return slots, nil
}

// loadOccupancies unions the two occupancy sources: non-rejected
// reservations on the date and active fixed reservations on its weekday.
func (s *availabilityService) loadOccupancies(ctx context.Context, day time.Time, weekday int) ([]occupancy, error) {
	reservations, err := s.repo.Reservation.FindActiveByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	fixed, err := s.repo.Fixed.FindActiveByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("load fixed reservations: %w", err)
	}

	occupancies := make([]occupancy, 0, len(reservations)+len(fixed))
	for _, reservation := range reservations {
		occupancies = append(occupancies, occupancy{
			courtID: reservation.CourtID,
			start:   reservation.StartTime,
			end:     reservation.EndTime,
		})
	}
	for _, f := range fixed {
		occupancies = append(occupancies, occupancy{
			courtID: f.CourtID,
			start:   f.StartTime,
			end:     f.EndTime,
		})
	}

	return occupancies, nil
}

func (s *availabilityService) occupiedCourts(occupancies []occupancy, slot timeslot.Slot) map[uuid.UUID]bool {
	occupied := make(map[uuid.UUID]bool)
	for _, occ := range occupancies {
		if timeslot.Overlaps(occ.start, occ.end, slot.Start, slot.End) {
			occupied[occ.courtID] = true
		}
	}
	return occupied
}

func (s *availabilityService) courtNameIndex(ctx context.Context) (map[uuid.UUID]string, error) {
	courts, err := s.repo.Court.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courts: %w", err)
	}

	names := make(map[uuid.UUID]string, len(courts))
	for _, court := range courts {
		names[court.ID] = court.Name
	}
	return names, nil
}
