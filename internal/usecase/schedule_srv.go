package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/timeslot"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService is the read side of the operating calendar plus the
// blackout-day administration.
type ScheduleService interface {
	GetOperatingWindows(ctx context.Context, weekday int, sportTypeID string) ([]response.OperatingWindowResponse, error)
	GetBlackout(ctx context.Context, date string) (*response.BlackoutResponse, error)
	GetWeek(ctx context.Context) ([]response.ScheduleDayResponse, error)
	AddUnavailableDay(ctx context.Context, req *request.CreateUnavailableDayRequest) (*response.UnavailableDayResponse, error)
	RemoveUnavailableDay(ctx context.Context, id string) error
}

type scheduleService struct {
	repo *repository.Repository
	loc  *time.Location
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ScheduleService {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &scheduleService{
		repo: repo,
		loc:  loc,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) GetOperatingWindows(ctx context.Context, weekday int, sportTypeID string) ([]response.OperatingWindowResponse, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday %d out of range", ErrValidation, weekday)
	}

	var windows []*entity.ScheduleWindow
	var err error

	if sportTypeID == "" {
		windows, err = s.repo.ScheduleWindow.FindByWeekday(ctx, weekday)
	} else {
		var sportID uuid.UUID
		sportID, err = uuid.Parse(sportTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid sport type id %q", ErrValidation, sportTypeID)
		}
		windows, err = s.repo.ScheduleWindow.FindByWeekdayAndSport(ctx, weekday, sportID)
	}
	if err != nil {
		return nil, fmt.Errorf("load operating windows: %w", err)
	}

	result := make([]response.OperatingWindowResponse, len(windows))
	for i, window := range windows {
		result[i] = response.OperatingWindowResponse{
			Start:       window.StartTime,
			End:         window.EndTime,
			SportTypeID: window.SportTypeID.String(),
		}
	}

	return result, nil
}

func (s *scheduleService) GetBlackout(ctx context.Context, date string) (*response.BlackoutResponse, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	blackouts, err := s.repo.UnavailableDay.FindByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load blackouts: %w", err)
	}

	resp := &response.BlackoutResponse{
		Date:     day.Format("2006-01-02"),
		CourtIDs: []string{},
	}

	for _, blackout := range blackouts {
		if blackout.CourtID == nil {
			resp.WholeDay = true
			continue
		}
		resp.CourtIDs = append(resp.CourtIDs, blackout.CourtID.String())
	}

	return resp, nil
}

func (s *scheduleService) GetWeek(ctx context.Context) ([]response.ScheduleDayResponse, error) {
	days, err := s.repo.ScheduleDay.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule days: %w", err)
	}

	result := make([]response.ScheduleDayResponse, len(days))
	for i, day := range days {
		result[i] = response.ScheduleDayToResponse(day)
	}

	return result, nil
}

func (s *scheduleService) AddUnavailableDay(ctx context.Context, req *request.CreateUnavailableDayRequest) (*response.UnavailableDayResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	day, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	unavailable := &entity.UnavailableDay{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Date:   day,
		Reason: req.Reason,
	}

	if req.CourtID != "" {
		courtID, err := uuid.Parse(req.CourtID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid court id %q", ErrValidation, req.CourtID)
		}

		court, err := s.repo.Court.FindByID(ctx, courtID)
		if err != nil {
			return nil, fmt.Errorf("check court: %w", err)
		}
		if court == nil {
			return nil, fmt.Errorf("%w: court %s", ErrNotFound, req.CourtID)
		}

		unavailable.CourtID = &courtID
	}

	if err := s.repo.UnavailableDay.Create(ctx, unavailable); err != nil {
		return nil, fmt.Errorf("create unavailable day: %w", err)
	}

	s.log.Info("Unavailable day registered",
		zap.String("date", req.Date),
		zap.String("court_id", req.CourtID),
		zap.String("reason", req.Reason),
	)

	resp := response.UnavailableDayToResponse(unavailable)
	return &resp, nil
}

func (s *scheduleService) RemoveUnavailableDay(ctx context.Context, id string) error {
	dayID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid unavailable day id %q", ErrValidation, id)
	}

	if err := s.repo.UnavailableDay.Delete(ctx, dayID); err != nil {
		return fmt.Errorf("%w: unavailable day %s", ErrNotFound, id)
	}

	return nil
}

func (s *scheduleService) parseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	return timeslot.DayOf(parsed, s.loc), nil
}
