package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/internal/gateway"
	"court-booking/pkg/timeslot"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Payment results delivered by the gateway webhook.
const (
	PaymentResultApproved = "approved"
	PaymentResultRejected = "rejected"
	PaymentResultPending  = "pending"
)

type ReservationService interface {
	Create(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	Update(ctx context.Context, id string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	TransitionOnPaymentResult(ctx context.Context, reservationID, result string) error
	GetByID(ctx context.Context, id string) (*response.ReservationResponse, error)
	ListByUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
}

type reservationService struct {
	repo       *repository.Repository
	payments   gateway.PaymentGateway
	expiration *ExpirationRegistry
	ttl        time.Duration
	loc        *time.Location
	log        *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	payments gateway.PaymentGateway,
	expiration *ExpirationRegistry,
	config *utils.Config,
	log *zap.Logger,
) ReservationService {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &reservationService{
		repo:       repo,
		payments:   payments,
		expiration: expiration,
		ttl:        time.Duration(config.Booking.TTLMinutes) * time.Minute,
		loc:        loc,
		log:        log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Create(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := validateSlotTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	userID, _ := uuid.Parse(req.UserID)
	courtID, _ := uuid.Parse(req.CourtID)
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

	// Fast-path conflict checks. These improve the error message but the
	// partial unique indexes behind Create are the actual guard.
	pending, err := s.repo.Reservation.FindPendingByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check pending reservation: %w", err)
	}
	if pending != nil {
		return nil, fmt.Errorf("%w: user %s already has a pending reservation", ErrConflict, req.UserID)
	}

	taken, err := s.repo.Reservation.ExistsActiveSlot(ctx, date, req.StartTime, courtID, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: slot %s-%s on %s is already booked", ErrConflict, req.StartTime, req.EndTime, req.Date)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CourtID:       courtID,
		UserID:        userID,
		RateID:        rateID,
		Price:         rate.Price,
		DepositAmount: rate.DepositAmount,
		Status:        entity.ReservationStatusPending,
		ExpiresAt:     &expiresAt,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: slot %s-%s on %s is already booked", ErrConflict, req.StartTime, req.EndTime, req.Date)
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.requestPaymentPreference(ctx, reservation, court.Name)

	s.expiration.Arm(reservation.ID, s.ttl)

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("court_id", req.CourtID),
		zap.String("date", req.Date),
		zap.String("slot", req.StartTime+"-"+req.EndTime),
		zap.Time("expires_at", expiresAt),
	)

	resp := response.ReservationToResponse(reservation, court.Name)
	return &resp, nil
}

func (s *reservationService) Update(ctx context.Context, id string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation id %q", ErrValidation, id)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("load reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}

	if reservation.Status == entity.ReservationStatusRejected || reservation.Status == entity.ReservationStatusCanceled {
		return nil, fmt.Errorf("%w: reservation %s is %s", ErrConflict, id, reservation.Status)
	}

	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := validateSlotTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	courtID, _ := uuid.Parse(req.CourtID)
	rateID, _ := uuid.Parse(req.RateID)

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

	// Same conflict check as Create, excluding the row being updated.
	taken, err := s.repo.Reservation.ExistsActiveSlot(ctx, date, req.StartTime, courtID, reservationID)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: slot %s-%s on %s is already booked", ErrConflict, req.StartTime, req.EndTime, req.Date)
	}

	reservation.Date = date
	reservation.StartTime = req.StartTime
	reservation.EndTime = req.EndTime
	reservation.CourtID = courtID
	reservation.RateID = rateID
	reservation.Price = rate.Price
	reservation.DepositAmount = rate.DepositAmount
	reservation.UpdatedAt = time.Now()

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: slot %s-%s on %s is already booked", ErrConflict, req.StartTime, req.EndTime, req.Date)
		}
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.log.Info("Reservation updated",
		zap.String("reservation_id", id),
		zap.String("date", req.Date),
		zap.String("slot", req.StartTime+"-"+req.EndTime),
	)

	resp := response.ReservationToResponse(reservation, court.Name)
	return &resp, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation id %q", ErrValidation, id)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("load reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}

	canceled, err := s.repo.Reservation.SetCanceled(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if !canceled {
		return fmt.Errorf("%w: reservation %s is %s and cannot be canceled", ErrConflict, id, reservation.Status)
	}

	// A stale timer must never fire after the reservation left pending.
	s.expiration.Disarm(reservationID)

	s.log.Info("Reservation canceled", zap.String("reservation_id", id))
	return nil
}

func (s *reservationService) Remove(ctx context.Context, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation id %q", ErrValidation, id)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("load reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}

	if err := s.repo.Reservation.Delete(ctx, reservationID); err != nil {
		return fmt.Errorf("remove reservation: %w", err)
	}

	s.expiration.Disarm(reservationID)

	return nil
}

func (s *reservationService) TransitionOnPaymentResult(ctx context.Context, reservationID, result string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation id %q", ErrValidation, reservationID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	switch result {
	case PaymentResultApproved:
		approved, err := s.repo.Reservation.SetApproved(ctx, id)
		if err != nil {
			return fmt.Errorf("approve reservation: %w", err)
		}
		if !approved {
			return fmt.Errorf("%w: reservation %s is %s", ErrStaleCallback, reservationID, reservation.Status)
		}

		s.expiration.Disarm(id)

		s.log.Info("Reservation approved by payment",
			zap.String("reservation_id", reservationID),
			zap.String("user_id", reservation.UserID.String()),
		)
		return nil

	case PaymentResultRejected:
		if reservation.Status != entity.ReservationStatusPending {
			return fmt.Errorf("%w: reservation %s is %s", ErrStaleCallback, reservationID, reservation.Status)
		}

		// Rejected payment keeps the reservation pending so the user
		// can retry another method. The TTL timer stays armed and still
		// bounds how long the slot is held.
		if err := s.repo.Reservation.ClearPaymentInfo(ctx, id); err != nil {
			return fmt.Errorf("clear payment info: %w", err)
		}

		s.log.Info("Payment rejected, reservation stays pending",
			zap.String("reservation_id", reservationID),
		)
		return nil

	case PaymentResultPending:
		// Gateway still processing, nothing to do.
		return nil

	default:
		return fmt.Errorf("%w: unknown payment result %q", ErrValidation, result)
	}
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*response.ReservationResponse, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation id %q", ErrValidation, id)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("load reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}

	resp := response.ReservationToResponse(reservation, s.courtName(ctx, reservation.CourtID))
	return &resp, nil
}

func (s *reservationService) ListByUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", ErrValidation, userID)
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	items := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		items[i] = response.ReservationToResponse(reservation, s.courtName(ctx, reservation.CourtID))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// requestPaymentPreference asks the gateway for a checkout link. A
// gateway failure is not fatal: the reservation stays pending and will
// expire normally if never paid.
func (s *reservationService) requestPaymentPreference(ctx context.Context, reservation *entity.Reservation, courtName string) {
	amount := reservation.DepositAmount
	if amount <= 0 {
		amount = reservation.Price
	}

	result, err := s.payments.CreatePreference(ctx, &gateway.Preference{
		ExternalReference: reservation.ID.String(),
		Title:             fmt.Sprintf("%s %s %s-%s", courtName, reservation.Date.Format("2006-01-02"), reservation.StartTime, reservation.EndTime),
		Amount:            amount,
	})
	if err != nil {
		s.log.Warn("Payment preference creation failed, reservation will expire unpaid",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return
	}

	if err := s.repo.Reservation.SetPaymentInfo(ctx, reservation.ID, result.ID, result.InitPoint); err != nil {
		s.log.Error("Failed to store payment info",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return
	}

	reservation.PaymentToken = &result.ID
	reservation.PaymentURL = &result.InitPoint
}

func (s *reservationService) parseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	return timeslot.DayOf(parsed, s.loc), nil
}

func (s *reservationService) courtName(ctx context.Context, courtID uuid.UUID) string {
	court, _ := s.repo.Court.FindByID(ctx, courtID)
	if court == nil {
		return ""
	}
	return court.Name
}

func validateSlotTimes(start, end string) error {
	startMin, err := timeslot.ParseClock(start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	endMin, err := timeslot.ParseClock(end)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if startMin == endMin {
		return fmt.Errorf("%w: slot %s-%s is empty", ErrValidation, start, end)
	}

	return nil
}
