package domain

import (
	"time"

	"github.com/google/uuid"
)

// Verification is the outcome of one verification request. Distance and
// MatchPercentage are rounded (4 and 2 decimal places) for output stability;
// Verified is always computed from the unrounded distance, so rounding can
// never flip the decision.
type Verification struct {
	ID              uuid.UUID `json:"id"`
	Verified        bool      `json:"verified"`
	Distance        float64   `json:"distance"`
	MatchPercentage float64   `json:"matchPercentage"`
	Threshold       float64   `json:"threshold"`
	LatencyMs       int64     `json:"latency_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// VerificationRecord is the audit row persisted for a request outcome. It
// carries no biometric data: no embeddings, no image bytes, no URLs. For
// rejected requests FailureCode and FailureSide are set and the numeric
// fields stay zero.
type VerificationRecord struct {
	ID              uuid.UUID
	Verified        bool
	Distance        float64
	MatchPercentage float64
	Threshold       float64
	FailureCode     *string
	FailureSide     *string
	LatencyMs       int64
	CreatedAt       time.Time
}
