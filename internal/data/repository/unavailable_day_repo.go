package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UnavailableDayRepository interface {
	Create(ctx context.Context, day *entity.UnavailableDay) error
	FindByDate(ctx context.Context, date time.Time) ([]*entity.UnavailableDay, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type unavailableDayRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUnavailableDayRepository(db database.PgxIface, log *zap.Logger) UnavailableDayRepository {
	return &unavailableDayRepository{
		db:  db,
		log: log.With(zap.String("repository", "unavailable_day")),
	}
}

func (r *unavailableDayRepository) Create(ctx context.Context, day *entity.UnavailableDay) error {
	query := `
		INSERT INTO unavailable_days (id, date, court_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		day.ID,
		day.Date,
		day.CourtID,
		day.Reason,
		day.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create unavailable day",
			zap.Error(err),
			zap.Time("date", day.Date),
		)
		return fmt.Errorf("create unavailable day %s: %w", day.ID.String(), err)
	}

	return nil
}

func (r *unavailableDayRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.UnavailableDay, error) {
	query := `SELECT id, date, court_id, reason, created_at FROM unavailable_days WHERE date = $1`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find unavailable days by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find unavailable days for %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var days []*entity.UnavailableDay
	for rows.Next() {
		var day entity.UnavailableDay
		err := rows.Scan(
			&day.ID,
			&day.Date,
			&day.CourtID,
			&day.Reason,
			&day.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan unavailable day row", zap.Error(err))
			return nil, fmt.Errorf("scan unavailable day row: %w", err)
		}
		days = append(days, &day)
	}

	return days, rows.Err()
}

func (r *unavailableDayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM unavailable_days WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete unavailable day",
			zap.Error(err),
			zap.String("unavailable_day_id", id.String()),
		)
		return fmt.Errorf("delete unavailable day %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("unavailable day %s not found", id.String())
	}

	return nil
}
