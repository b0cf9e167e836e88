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

// FixedReservationService manages recurring weekly bookings. They block
// their weekday/slot/court while active and never expire on their own.
type FixedReservationService interface {
	GetActiveForWeekday(ctx context.Context, weekday int, sportTypeID string) ([]response.FixedReservationResponse, error)
	Create(ctx context.Context, req *request.CreateFixedReservationRequest) (*response.FixedReservationResponse, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type fixedReservationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFixedReservationService(repo *repository.Repository, log *zap.Logger) FixedReservationService {
	return &fixedReservationService{
		repo: repo,
		log:  log.With(zap.String("service", "fixed_reservation")),
	}
}

func (s *fixedReservationService) GetActiveForWeekday(ctx context.Context, weekday int, sportTypeID string) ([]response.FixedReservationResponse, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday %d out of range", ErrValidation, weekday)
	}

	var fixed []*entity.FixedReservation
	var err error

	if sportTypeID == "" {
		fixed, err = s.repo.Fixed.FindActiveByWeekday(ctx, weekday)
	} else {
		var sportID uuid.UUID
		sportID, err = uuid.Parse(sportTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid sport type id %q", ErrValidation, sportTypeID)
		}
		fixed, err = s.repo.Fixed.FindActiveByWeekdayAndSport(ctx, weekday, sportID)
	}
	if err != nil {
		return nil, fmt.Errorf("load fixed reservations: %w", err)
	}

	result := make([]response.FixedReservationResponse, len(fixed))
	for i, f := range fixed {
		result[i] = response.FixedReservationToResponse(f)
	}

	return result, nil
}

func (s *fixedReservationService) Create(ctx context.Context, req *request.CreateFixedReservationRequest) (*response.FixedReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := validateSlotTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	weekday := *req.Weekday
	courtID, _ := uuid.Parse(req.CourtID)
	userID, _ := uuid.Parse(req.UserID)
	rateID, _ := uuid.Parse(req.RateID)

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, req.UserID)
	}

	court, err := s.repo.Court.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("check court: %w", err)
	}
	if court == nil || !court.IsActive {
		return nil, fmt.Errorf("%w: court %s", ErrNotFound, req.CourtID)
	}

	rate, err := s.repo.Rate.FindByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("check rate: %w", err)
	}
	if rate == nil {
		return nil, fmt.Errorf("%w: rate %s", ErrNotFound, req.RateID)
	}

	// No two active fixed reservations may overlap on the same
	// weekday/court.
	existing, err := s.repo.Fixed.FindActiveByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("check fixed reservations: %w", err)
	}
	for _, f := range existing {
		if f.CourtID == courtID && timeslot.Overlaps(f.StartTime, f.EndTime, req.StartTime, req.EndTime) {
			return nil, fmt.Errorf("%w: weekday %d slot %s-%s on court %s already has a fixed reservation",
				ErrConflict, weekday, req.StartTime, req.EndTime, req.CourtID)
		}
	}

	now := time.Now()
	fixed := &entity.FixedReservation{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Weekday:   weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CourtID:   courtID,
		UserID:    userID,
		RateID:    rateID,
		IsActive:  true,
	}

	if err := s.repo.Fixed.Create(ctx, fixed); err != nil {
		return nil, fmt.Errorf("create fixed reservation: %w", err)
	}

	s.log.Info("Fixed reservation created",
		zap.String("fixed_id", fixed.ID.String()),
		zap.Int("weekday", weekday),
		zap.String("slot", req.StartTime+"-"+req.EndTime),
		zap.String("court_id", req.CourtID),
	)

	resp := response.FixedReservationToResponse(fixed)
	return &resp, nil
}

func (s *fixedReservationService) SetActive(ctx context.Context, id string, active bool) error {
	fixedID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid fixed reservation id %q", ErrValidation, id)
	}

	fixed, err := s.repo.Fixed.FindByID(ctx, fixedID)
	if err != nil {
		return fmt.Errorf("load fixed reservation: %w", err)
	}
	if fixed == nil {
		return fmt.Errorf("%w: fixed reservation %s", ErrNotFound, id)
	}

	if err := s.repo.Fixed.SetActive(ctx, fixedID, active); err != nil {
		return fmt.Errorf("toggle fixed reservation: %w", err)
	}

	s.log.Info("Fixed reservation toggled",
		zap.String("fixed_id", id),
		zap.Bool("active", active),
	)
	return nil
}

func (s *fixedReservationService) Delete(ctx context.Context, id string) error {
	fixedID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid fixed reservation id %q", ErrValidation, id)
	}

	fixed, err := s.repo.Fixed.FindByID(ctx, fixedID)
	if err != nil {
		return fmt.Errorf("load fixed reservation: %w", err)
	}
	if fixed == nil {
		return fmt.Errorf("%w: fixed reservation %s", ErrNotFound, id)
	}

	return s.repo.Fixed.Delete(ctx, fixedID)
}
