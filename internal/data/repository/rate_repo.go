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

type RateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rate, error)
}

type rateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRateRepository(db database.PgxIface, log *zap.Logger) RateRepository {
	return &rateRepository{
		db:  db,
		log: log.With(zap.String("repository", "rate")),
	}
}

func (r *rateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rate, error) {
	query := `SELECT id, name, price, deposit_amount, created_at, updated_at FROM rates WHERE id = $1`

	var rate entity.Rate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rate.ID,
		&rate.Name,
		&rate.Price,
		&rate.DepositAmount,
		&rate.CreatedAt,
		&rate.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rate by ID",
			zap.Error(err),
			zap.String("rate_id", id.String()),
		)
		return nil, fmt.Errorf("find rate by ID %s: %w", id.String(), err)
	}

	return &rate, nil
}
