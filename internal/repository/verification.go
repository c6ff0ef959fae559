package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyc-labs/facematch/internal/domain"
)

type VerificationRepository struct {
	pool PgxPool
}

func NewVerificationRepository(pool PgxPool) *VerificationRepository {
	return &VerificationRepository{pool: pool}
}

func (r *VerificationRepository) Create(ctx context.Context, record *domain.VerificationRecord) error {
	query := `
		INSERT INTO verifications (id, verified, distance, match_percentage, threshold, failure_code, failure_side, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.Verified,
		record.Distance,
		record.MatchPercentage,
		record.Threshold,
		record.FailureCode,
		record.FailureSide,
		record.LatencyMs,
	).Scan(&record.CreatedAt)

	if err != nil {
		return fmt.Errorf("create verification record: %w", err)
	}

	return nil
}
