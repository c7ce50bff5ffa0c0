package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"karavan/internal/app/karavan/entity"

	"github.com/jackc/pgx/v5"
)

var (
	ErrSnapshotNotFound = errors.New("exchange rate snapshot not found")
)

// rateSnapshotRepository keeps the single persisted exchange-rate snapshot.
// The table holds at most one row; every successful provider fetch
// overwrites it, no history is retained.
type rateSnapshotRepository struct {
	db PgxPool
}

func NewRateSnapshotRepository(db PgxPool) RateSnapshotRepository {
	return &rateSnapshotRepository{db: db}
}

func (r *rateSnapshotRepository) GetLatest(ctx context.Context) (*entity.ExchangeRateSnapshot, error) {
	query := `SELECT rates, updated_at FROM exchange_rate_snapshots WHERE id = 1`

	var (
		data     []byte
		snapshot entity.ExchangeRateSnapshot
	)
	err := r.db.QueryRow(ctx, query).Scan(&data, &snapshot.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get rate snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &snapshot.Rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rate snapshot: %w", err)
	}

	return &snapshot, nil
}

func (r *rateSnapshotRepository) Upsert(ctx context.Context, snapshot *entity.ExchangeRateSnapshot) error {
	data, err := json.Marshal(snapshot.Rates)
	if err != nil {
		return fmt.Errorf("failed to marshal rate snapshot: %w", err)
	}

	query := `
		INSERT INTO exchange_rate_snapshots (id, rates, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET rates = EXCLUDED.rates, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, data, snapshot.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert rate snapshot: %w", err)
	}

	return nil
}
