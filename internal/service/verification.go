package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kyc-labs/facematch/internal/config"
	"github.com/kyc-labs/facematch/internal/domain"
	"github.com/kyc-labs/facematch/internal/imaging"
	"github.com/kyc-labs/facematch/internal/provider"
)

// ImageFetcher downloads the reference image bytes.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AuditRecorder persists non-biometric decision rows.
type AuditRecorder interface {
	Create(ctx context.Context, record *domain.VerificationRecord) error
}

type VerificationService struct {
	detector     provider.FaceDetector
	fetcher      ImageFetcher
	audit        AuditRecorder
	logger       *slog.Logger
	threshold    float64
	minFaceWidth int
	minImageSize int
}

func NewVerificationService(
	detector provider.FaceDetector,
	fetcher ImageFetcher,
	audit AuditRecorder,
	cfg *config.Config,
	logger *slog.Logger,
) *VerificationService {
	return &VerificationService{
		detector:     detector,
		fetcher:      fetcher,
		audit:        audit,
		logger:       logger,
		threshold:    cfg.MatchThreshold,
		minFaceWidth: cfg.MinFaceWidth,
		minImageSize: cfg.MinImageSize,
	}
}

// Verify decides whether the selfie and the image behind referenceURL depict
// the same person. The reference is processed first and a failure on either
// side short-circuits with that side named in the error; the selfie is never
// sent to the detector when the reference is already invalid.
func (s *VerificationService) Verify(ctx context.Context, referenceURL string, selfie []byte) (*domain.Verification, error) {
	start := time.Now()

	referenceBytes, err := s.fetcher.Fetch(ctx, referenceURL)
	if err != nil {
		return nil, fmt.Errorf("fetch reference image: %w", err)
	}

	referenceEmbedding, err := s.extractSide(ctx, domain.SideReference, referenceBytes)
	if err != nil {
		s.recordRejection(ctx, domain.SideReference, err, start)
		return nil, err
	}

	selfieEmbedding, err := s.extractSide(ctx, domain.SideSelfie, selfie)
	if err != nil {
		s.recordRejection(ctx, domain.SideSelfie, err, start)
		return nil, err
	}

	verification, err := s.score(referenceEmbedding, selfieEmbedding)
	if err != nil {
		return nil, fmt.Errorf("score embeddings: %w", err)
	}
	verification.LatencyMs = time.Since(start).Milliseconds()

	s.recordResult(ctx, verification)

	return verification, nil
}

// extractSide decodes one image and runs the extraction pipeline, labeling
// any rejection with the side it applies to. Infrastructure faults pass
// through unlabeled so the error handler treats them as faults, not as
// user-facing rejections.
func (s *VerificationService) extractSide(ctx context.Context, side domain.ImageSide, data []byte) ([]float64, error) {
	img, err := imaging.Decode(data)
	if err == nil {
		var embedding []float64
		embedding, err = s.extractEmbedding(ctx, img)
		if err == nil {
			return embedding, nil
		}
	}

	var appErr *domain.AppError
	if errors.As(err, &appErr) && domain.IsRejection(appErr) {
		return nil, appErr.ForSide(side)
	}
	return nil, fmt.Errorf("%s: %w", side, err)
}

// recordResult writes the audit row for a completed decision. The decision
// was already made: a failed audit write is logged, never surfaced.
func (s *VerificationService) recordResult(ctx context.Context, v *domain.Verification) {
	if s.audit == nil {
		return
	}

	record := &domain.VerificationRecord{
		ID:              v.ID,
		Verified:        v.Verified,
		Distance:        v.Distance,
		MatchPercentage: v.MatchPercentage,
		Threshold:       v.Threshold,
		LatencyMs:       v.LatencyMs,
	}

	if err := s.audit.Create(ctx, record); err != nil {
		s.logger.Warn("failed to record verification",
			"error", err,
			"verification_id", v.ID,
		)
	}
}

// recordRejection writes the audit row for a user-facing rejection.
// Infrastructure faults are not audited here; they are logged with full
// context at the error-handling boundary.
func (s *VerificationService) recordRejection(ctx context.Context, side domain.ImageSide, err error, start time.Time) {
	if s.audit == nil {
		return
	}

	var appErr *domain.AppError
	if !errors.As(err, &appErr) || !domain.IsRejection(appErr) {
		return
	}

	code := appErr.Code
	sideName := string(side)
	record := &domain.VerificationRecord{
		ID:          uuid.New(),
		Verified:    false,
		Threshold:   s.threshold,
		FailureCode: &code,
		FailureSide: &sideName,
		LatencyMs:   time.Since(start).Milliseconds(),
	}

	if auditErr := s.audit.Create(ctx, record); auditErr != nil {
		s.logger.Warn("failed to record rejection",
			"error", auditErr,
			"failure_code", code,
		)
	}
}
