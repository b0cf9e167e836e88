package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleDayRepository interface {
	FindByWeekday(ctx context.Context, weekday int) (*entity.ScheduleDay, error)
	FindAll(ctx context.Context) ([]*entity.ScheduleDay, error)
}

type scheduleDayRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleDayRepository(db database.PgxIface, log *zap.Logger) ScheduleDayRepository {
	return &scheduleDayRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule_day")),
	}
}

func (r *scheduleDayRepository) FindByWeekday(ctx context.Context, weekday int) (*entity.ScheduleDay, error) {
	query := `SELECT id, weekday, is_active, created_at, updated_at FROM schedule_days WHERE weekday = $1`

	var day entity.ScheduleDay
	err := r.db.QueryRow(ctx, query, weekday).Scan(
		&day.ID,
		&day.Weekday,
		&day.IsActive,
		&day.CreatedAt,
		&day.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule day",
			zap.Error(err),
			zap.Int("weekday", weekday),
		)
		return nil, fmt.Errorf("find schedule day for weekday %d: %w", weekday, err)
	}

	return &day, nil
}

func (r *scheduleDayRepository) FindAll(ctx context.Context) ([]*entity.ScheduleDay, error) {
	query := `SELECT id, weekday, is_active, created_at, updated_at FROM schedule_days ORDER BY weekday`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list schedule days", zap.Error(err))
		return nil, fmt.Errorf("list schedule days: %w", err)
	}
	defer rows.Close()

	var days []*entity.ScheduleDay
	for rows.Next() {
		var day entity.ScheduleDay
		err := rows.Scan(
			&day.ID,
			&day.Weekday,
			&day.IsActive,
			&day.CreatedAt,
			&day.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule day row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule day row: %w", err)
		}
		days = append(days, &day)
	}

	return days, rows.Err()
}
