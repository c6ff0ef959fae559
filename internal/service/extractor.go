package service

import (
	"context"
	"fmt"

	"github.com/kyc-labs/facematch/internal/domain"
	"github.com/kyc-labs/facematch/internal/imaging"
	"github.com/kyc-labs/facematch/internal/provider"
)

// checkQuality applies the minimum-resolution gate. It runs before any
// detector work, so undersized images never reach the model.
func (s *VerificationService) checkQuality(img *imaging.Image) error {
	if img.Width < s.minImageSize || img.Height < s.minImageSize {
		return domain.ErrLowQualityImage
	}
	return nil
}

// enforceSingleFace classifies the detector output. The order is strict:
// an image with several faces is rejected as ambiguous even when one of them
// would pass the size check, and a lone undersized face reports
// face-too-small rather than no-face. There is no pick-the-largest fallback.
func (s *VerificationService) enforceSingleFace(detections []provider.Detection) (*provider.Detection, error) {
	switch {
	case len(detections) == 0:
		return nil, domain.ErrNoFaceDetected
	case len(detections) > 1:
		return nil, domain.ErrMultipleFaces
	}

	detection := detections[0]
	if detection.Box.Width < float64(s.minFaceWidth) {
		return nil, domain.ErrFaceTooSmall
	}

	return &detection, nil
}

// extractEmbedding runs the per-image pipeline: quality gate, detection,
// single-face enforcement. The returned error is either one of the typed
// rejection reasons or a wrapped infrastructure fault from the detector.
func (s *VerificationService) extractEmbedding(ctx context.Context, img *imaging.Image) ([]float64, error) {
	if err := s.checkQuality(img); err != nil {
		return nil, err
	}

	detections, err := s.detector.Detect(ctx, img.Data)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	detection, err := s.enforceSingleFace(detections)
	if err != nil {
		return nil, err
	}

	return detection.Embedding, nil
}
