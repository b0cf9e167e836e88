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

type ScheduleWindowRepository interface {
	FindByWeekday(ctx context.Context, weekday int) ([]*entity.ScheduleWindow, error)
	FindByWeekdayAndSport(ctx context.Context, weekday int, sportTypeID uuid.UUID) ([]*entity.ScheduleWindow, error)
	FindByScheduleDayID(ctx context.Context, scheduleDayID uuid.UUID) ([]*entity.ScheduleWindow, error)
}

type scheduleWindowRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleWindowRepository(db database.PgxIface, log *zap.Logger) ScheduleWindowRepository {
	return &scheduleWindowRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule_window")),
	}
}

const windowColumns = `w.id, w.schedule_day_id, w.sport_type_id, w.start_time, w.end_time, w.created_at, w.updated_at`

func (r *scheduleWindowRepository) scanRows(rows pgx.Rows) ([]*entity.ScheduleWindow, error) {
	defer rows.Close()

	var windows []*entity.ScheduleWindow
	for rows.Next() {
		var w entity.ScheduleWindow
		err := rows.Scan(
			&w.ID,
			&w.ScheduleDayID,
			&w.SportTypeID,
			&w.StartTime,
			&w.EndTime,
			&w.CreatedAt,
			&w.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule window row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule window row: %w", err)
		}
		windows = append(windows, &w)
	}

	return windows, rows.Err()
}

func (r *scheduleWindowRepository) FindByWeekday(ctx context.Context, weekday int) ([]*entity.ScheduleWindow, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM schedule_windows w
		JOIN schedule_days d ON d.id = w.schedule_day_id
		WHERE d.weekday = $1
		ORDER BY w.start_time
	`

	rows, err := r.db.Query(ctx, query, weekday)
	if err != nil {
		r.log.Error("Failed to find schedule windows by weekday",
			zap.Error(err),
			zap.Int("weekday", weekday),
		)
		return nil, fmt.Errorf("find schedule windows for weekday %d: %w", weekday, err)
	}

	return r.scanRows(rows)
}

func (r *scheduleWindowRepository) FindByWeekdayAndSport(ctx context.Context, weekday int, sportTypeID uuid.UUID) ([]*entity.ScheduleWindow, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM schedule_windows w
		JOIN schedule_days d ON d.id = w.schedule_day_id
		WHERE d.weekday = $1 AND w.sport_type_id = $2
		ORDER BY w.start_time
	`

	rows, err := r.db.Query(ctx, query, weekday, sportTypeID)
	if err != nil {
		r.log.Error("Failed to find schedule windows by weekday and sport",
			zap.Error(err),
			zap.Int("weekday", weekday),
			zap.String("sport_type_id", sportTypeID.String()),
		)
		return nil, fmt.Errorf("find schedule windows for weekday %d: %w", weekday, err)
	}

	return r.scanRows(rows)
}

func (r *scheduleWindowRepository) FindByScheduleDayID(ctx context.Context, scheduleDayID uuid.UUID) ([]*entity.ScheduleWindow, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM schedule_windows w
		WHERE w.schedule_day_id = $1
		ORDER BY w.start_time
	`

	rows, err := r.db.Query(ctx, query, scheduleDayID)
	if err != nil {
		r.log.Error("Failed to find schedule windows by schedule day",
			zap.Error(err),
			zap.String("schedule_day_id", scheduleDayID.String()),
		)
		return nil, fmt.Errorf("find schedule windows for day %s: %w", scheduleDayID.String(), err)
	}

	return r.scanRows(rows)
}
