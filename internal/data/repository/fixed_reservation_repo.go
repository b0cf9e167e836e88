package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FixedReservationRepository interface {
	Create(ctx context.Context, fixed *entity.FixedReservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FixedReservation, error)
	FindActiveByWeekday(ctx context.Context, weekday int) ([]*entity.FixedReservation, error)
	FindActiveByWeekdayAndSport(ctx context.Context, weekday int, sportTypeID uuid.UUID) ([]*entity.FixedReservation, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type fixedReservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFixedReservationRepository(db database.PgxIface, log *zap.Logger) FixedReservationRepository {
	return &fixedReservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "fixed_reservation")),
	}
}

const fixedColumns = `id, weekday, start_time, end_time, court_id, user_id, rate_id, is_active, created_at, updated_at`

func (r *fixedReservationRepository) scanRows(rows pgx.Rows) ([]*entity.FixedReservation, error) {
	defer rows.Close()

	var fixed []*entity.FixedReservation
	for rows.Next() {
		var f entity.FixedReservation
		err := rows.Scan(
			&f.ID,
			&f.Weekday,
			&f.StartTime,
			&f.EndTime,
			&f.CourtID,
			&f.UserID,
			&f.RateID,
			&f.IsActive,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan fixed reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan fixed reservation row: %w", err)
		}
		fixed = append(fixed, &f)
	}

	return fixed, rows.Err()
}

func (r *fixedReservationRepository) Create(ctx context.Context, fixed *entity.FixedReservation) error {
	query := `
		INSERT INTO fixed_reservations (id, weekday, start_time, end_time, court_id, user_id, rate_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		fixed.ID,
		fixed.Weekday,
		fixed.StartTime,
		fixed.EndTime,
		fixed.CourtID,
		fixed.UserID,
		fixed.RateID,
		fixed.IsActive,
		fixed.CreatedAt,
		fixed.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create fixed reservation",
			zap.Error(err),
			zap.Int("weekday", fixed.Weekday),
			zap.String("court_id", fixed.CourtID.String()),
		)
		return fmt.Errorf("create fixed reservation %s: %w", fixed.ID.String(), err)
	}

	return nil
}

func (r *fixedReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FixedReservation, error) {
	query := `SELECT ` + fixedColumns + ` FROM fixed_reservations WHERE id = $1`

	var f entity.FixedReservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.Weekday,
		&f.StartTime,
		&f.EndTime,
		&f.CourtID,
		&f.UserID,
		&f.RateID,
		&f.IsActive,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find fixed reservation by ID",
			zap.Error(err),
			zap.String("fixed_id", id.String()),
		)
		return nil, fmt.Errorf("find fixed reservation by ID %s: %w", id.String(), err)
	}

	return &f, nil
}

func (r *fixedReservationRepository) FindActiveByWeekday(ctx context.Context, weekday int) ([]*entity.FixedReservation, error) {
	query := `
		SELECT ` + fixedColumns + `
		FROM fixed_reservations
		WHERE weekday = $1 AND is_active
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, weekday)
	if err != nil {
		r.log.Error("Failed to find active fixed reservations by weekday",
			zap.Error(err),
			zap.Int("weekday", weekday),
		)
		return nil, fmt.Errorf("find active fixed reservations for weekday %d: %w", weekday, err)
	}

	return r.scanRows(rows)
}

func (r *fixedReservationRepository) FindActiveByWeekdayAndSport(ctx context.Context, weekday int, sportTypeID uuid.UUID) ([]*entity.FixedReservation, error) {
	query := `
		SELECT f.id, f.weekday, f.start_time, f.end_time, f.court_id, f.user_id, f.rate_id, f.is_active, f.created_at, f.updated_at
		FROM fixed_reservations f
		JOIN courts c ON c.id = f.court_id
		WHERE f.weekday = $1 AND f.is_active AND c.sport_type_id = $2
		ORDER BY f.start_time
	`

	rows, err := r.db.Query(ctx, query, weekday, sportTypeID)
	if err != nil {
		r.log.Error("Failed to find active fixed reservations by weekday and sport",
			zap.Error(err),
			zap.Int("weekday", weekday),
			zap.String("sport_type_id", sportTypeID.String()),
		)
		return nil, fmt.Errorf("find active fixed reservations for weekday %d: %w", weekday, err)
	}

	return r.scanRows(rows)
}

func (r *fixedReservationRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE fixed_reservations SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to toggle fixed reservation",
			zap.Error(err),
			zap.String("fixed_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("toggle fixed reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("fixed reservation %s not found", id.String())
	}

	return nil
}

func (r *fixedReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM fixed_reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete fixed reservation",
			zap.Error(err),
			zap.String("fixed_id", id.String()),
		)
		return fmt.Errorf("delete fixed reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("fixed reservation %s not found", id.String())
	}

	r.log.Info("Fixed reservation deleted", zap.String("fixed_id", id.String()))
	return nil
}
