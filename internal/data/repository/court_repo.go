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

type CourtRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	FindAllActive(ctx context.Context) ([]*entity.Court, error)
}

type courtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourtRepository(db database.PgxIface, log *zap.Logger) CourtRepository {
	return &courtRepository{
		db:  db,
		log: log.With(zap.String("repository", "court")),
	}
}

func (r *courtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `SELECT id, name, sport_type_id, is_active, created_at, updated_at FROM courts WHERE id = $1`

	var court entity.Court
	err := r.db.QueryRow(ctx, query, id).Scan(
		&court.ID,
		&court.Name,
		&court.SportTypeID,
		&court.IsActive,
		&court.CreatedAt,
		&court.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find court by ID",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return nil, fmt.Errorf("find court by ID %s: %w", id.String(), err)
	}

	return &court, nil
}

func (r *courtRepository) FindAllActive(ctx context.Context) ([]*entity.Court, error) {
	query := `SELECT id, name, sport_type_id, is_active, created_at, updated_at FROM courts WHERE is_active ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list active courts", zap.Error(err))
		return nil, fmt.Errorf("list active courts: %w", err)
	}
	defer rows.Close()

	var courts []*entity.Court
	for rows.Next() {
		var court entity.Court
		err := rows.Scan(
			&court.ID,
			&court.Name,
			&court.SportTypeID,
			&court.IsActive,
			&court.CreatedAt,
			&court.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan court row", zap.Error(err))
			return nil, fmt.Errorf("scan court row: %w", err)
		}
		courts = append(courts, &court)
	}

	return courts, rows.Err()
}
