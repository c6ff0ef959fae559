package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyc-labs/facematch/internal/domain"
)

const insertVerificationPattern = `INSERT INTO verifications \(id, verified, distance, match_percentage, threshold, failure_code, failure_side, latency_ms, created_at\)`

func TestVerificationRepository_Create(t *testing.T) {
	recordID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		record    *domain.VerificationRecord
		mockSetup func(mock pgxmock.PgxPoolIface, record *domain.VerificationRecord)
		wantErr   bool
	}{
		{
			name: "successful decision row",
			record: &domain.VerificationRecord{
				ID:              recordID,
				Verified:        true,
				Distance:        0.3012,
				MatchPercentage: 69.88,
				Threshold:       0.48,
				LatencyMs:       120,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface, record *domain.VerificationRecord) {
				mock.ExpectQuery(insertVerificationPattern).
					WithArgs(record.ID, true, 0.3012, 69.88, 0.48, (*string)(nil), (*string)(nil), int64(120)).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
			},
			wantErr: false,
		},
		{
			name: "rejection row with failure code and side",
			record: &domain.VerificationRecord{
				ID:          recordID,
				Verified:    false,
				Threshold:   0.48,
				FailureCode: ptr("NO_FACE_DETECTED"),
				FailureSide: ptr("selfie"),
				LatencyMs:   45,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface, record *domain.VerificationRecord) {
				mock.ExpectQuery(insertVerificationPattern).
					WithArgs(record.ID, false, 0.0, 0.0, 0.48, record.FailureCode, record.FailureSide, int64(45)).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
			},
			wantErr: false,
		},
		{
			name: "database error",
			record: &domain.VerificationRecord{
				ID:       recordID,
				Verified: true,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface, record *domain.VerificationRecord) {
				mock.ExpectQuery(insertVerificationPattern).
					WithArgs(record.ID, true, 0.0, 0.0, 0.0, (*string)(nil), (*string)(nil), int64(0)).
					WillReturnError(errors.New("database connection error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mockPool.Close()

			tt.mockSetup(mockPool, tt.record)

			repo := NewVerificationRepository(mockPool)
			err = repo.Create(context.Background(), tt.record)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "create verification record")
			} else {
				require.NoError(t, err)
				assert.Equal(t, now, tt.record.CreatedAt)
			}

			assert.NoError(t, mockPool.ExpectationsWereMet())
		})
	}
}

func TestVerificationRepository_Create_AssignsID(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	// The repository assigns the ID, so it is unknown when the expectation
	// is registered
	mockPool.ExpectQuery(insertVerificationPattern).
		WithArgs(pgxmock.AnyArg(), true, 0.0, 0.0, 0.0, (*string)(nil), (*string)(nil), int64(0)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	repo := NewVerificationRepository(mockPool)
	record := &domain.VerificationRecord{Verified: true}

	require.NoError(t, repo.Create(context.Background(), record))
	assert.NotEqual(t, uuid.Nil, record.ID)
}

func ptr(s string) *string {
	return &s
}
