package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kyc-labs/facematch/internal/domain"
)

// euclideanDistance is the L2 norm of the element-wise difference of two
// embeddings. The shared model fixes the embedding dimension, so a length
// mismatch is a programming-error-class fault, not a user-facing rejection.
func euclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding length mismatch: %d != %d", len(a), len(b))
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return math.Sqrt(sum), nil
}

// score turns a pair of embeddings into the verification decision.
//
// The match percentage is (1-distance)*100 clamped to [0,100]. It is a linear
// display heuristic, not a calibrated probability; near the threshold it can
// read high while the decision is borderline. The verified decision uses the
// unrounded distance with a strict inequality: a distance exactly at the
// threshold is not verified.
func (s *VerificationService) score(embeddingA, embeddingB []float64) (*domain.Verification, error) {
	distance, err := euclideanDistance(embeddingA, embeddingB)
	if err != nil {
		return nil, err
	}

	matchPercentage := (1 - distance) * 100
	if matchPercentage < 0 {
		matchPercentage = 0
	}
	if matchPercentage > 100 {
		matchPercentage = 100
	}

	verified := distance < s.threshold

	return &domain.Verification{
		ID:              uuid.New(),
		Verified:        verified,
		Distance:        round(distance, 4),
		MatchPercentage: round(matchPercentage, 2),
		Threshold:       s.threshold,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
