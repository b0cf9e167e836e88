package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindActiveByDate(ctx context.Context, date time.Time) ([]*entity.Reservation, error)
	FindPendingByUserID(ctx context.Context, userID uuid.UUID) (*entity.Reservation, error)
	ExistsActiveSlot(ctx context.Context, date time.Time, startTime string, courtID, excludeID uuid.UUID) (bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Payment bookkeeping
	SetPaymentInfo(ctx context.Context, id uuid.UUID, token, url string) error
	ClearPaymentInfo(ctx context.Context, id uuid.UUID) error

	// Status transitions. The conditional WHERE clause makes each of
	// these a compare-and-set; the bool reports whether the row moved.
	SetApproved(ctx context.Context, id uuid.UUID) (bool, error)
	SetRejectedIfPending(ctx context.Context, id uuid.UUID) (bool, error)
	SetCanceled(ctx context.Context, id uuid.UUID) (bool, error)

	// Expiration reconciliation
	FindPending(ctx context.Context) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, date, start_time, end_time, court_id, user_id, rate_id,
	price, deposit_amount, status, expires_at, payment_token, payment_url, created_at, updated_at`

func (r *reservationRepository) scanRow(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.CourtID,
		&res.UserID,
		&res.RateID,
		&res.Price,
		&res.DepositAmount,
		&res.Status,
		&res.ExpiresAt,
		&res.PaymentToken,
		&res.PaymentURL,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) scanRows(rows pgx.Rows) ([]*entity.Reservation, error) {
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := r.scanRow(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, date, start_time, end_time, court_id, user_id, rate_id,
			price, deposit_amount, status, expires_at, payment_token, payment_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Date,
		reservation.StartTime,
		reservation.EndTime,
		reservation.CourtID,
		reservation.UserID,
		reservation.RateID,
		reservation.Price,
		reservation.DepositAmount,
		reservation.Status,
		reservation.ExpiresAt,
		reservation.PaymentToken,
		reservation.PaymentURL,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("court_id", reservation.CourtID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindActiveByDate(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE date = $1 AND status <> 'rejected'
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find reservations by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find reservations by date %s: %w", date.Format("2006-01-02"), err)
	}

	return r.scanRows(rows)
}

func (r *reservationRepository) FindPendingByUserID(ctx context.Context, userID uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 AND status = 'pending'`

	res, err := r.scanRow(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending reservation by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find pending reservation for user %s: %w", userID.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) ExistsActiveSlot(ctx context.Context, date time.Time, startTime string, courtID, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE date = $1 AND start_time = $2 AND court_id = $3
			  AND status <> 'rejected' AND id <> $4
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, date, startTime, courtID, excludeID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check slot occupancy",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("start_time", startTime),
			zap.String("court_id", courtID.String()),
		)
		return false, fmt.Errorf("check slot occupancy: %w", err)
	}

	return exists, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}

	return r.scanRows(rows)
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET date = $2, start_time = $3, end_time = $4, court_id = $5, rate_id = $6,
		    price = $7, deposit_amount = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Date,
		reservation.StartTime,
		reservation.EndTime,
		reservation.CourtID,
		reservation.RateID,
		reservation.Price,
		reservation.DepositAmount,
		reservation.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

func (r *reservationRepository) SetPaymentInfo(ctx context.Context, id uuid.UUID, token, url string) error {
	query := `UPDATE reservations SET payment_token = $2, payment_url = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, token, url)
	if err != nil {
		r.log.Error("Failed to set payment info",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("set payment info for reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) ClearPaymentInfo(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reservations SET payment_token = NULL, payment_url = NULL, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to clear payment info",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("clear payment info for reservation %s: %w", id.String(), err)
	}

	return nil
}

func (r *reservationRepository) SetApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'approved', expires_at = NULL, payment_token = NULL, payment_url = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to approve reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return false, fmt.Errorf("approve reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) SetRejectedIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'rejected', expires_at = NULL, payment_token = NULL, payment_url = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to reject reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return false, fmt.Errorf("reject reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) SetCanceled(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'canceled', expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'approved')
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return false, fmt.Errorf("cancel reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) FindPending(ctx context.Context) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = 'pending' ORDER BY expires_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find pending reservations", zap.Error(err))
		return nil, fmt.Errorf("find pending reservations: %w", err)
	}

	return r.scanRows(rows)
}
