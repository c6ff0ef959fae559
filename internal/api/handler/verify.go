package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kyc-labs/facematch/internal/domain"
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// VerificationService interface for the service
type VerificationService interface {
	Verify(ctx context.Context, referenceURL string, selfie []byte) (*domain.Verification, error)
}

// VerifyHandler handles verification requests
type VerifyHandler struct {
	service  VerificationService
	maxBytes int64
	logger   *slog.Logger
}

// NewVerifyHandler creates a new VerifyHandler instance
func NewVerifyHandler(service VerificationService, maxBytes int64, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// VerifyResponse response for verify endpoint
type VerifyResponse struct {
	Verified        bool    `json:"verified"`
	Distance        float64 `json:"distance"`
	MatchPercentage float64 `json:"matchPercentage"`
	Threshold       float64 `json:"threshold"`
}

// Verify POST /v1/verify - compare a selfie against a reference image
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	// 1. Extract reference_url from form
	referenceURL := strings.TrimSpace(c.FormValue("reference_url"))
	if referenceURL == "" {
		return domain.ErrValidationFailed.WithError(errors.New("reference_url is required"))
	}
	if _, err := url.ParseRequestURI(referenceURL); err != nil {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("reference_url: %w", err))
	}

	// 2. Extract and validate selfie
	selfie, err := h.extractSelfie(c)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	// 3. Call service to verify
	verification, err := h.service.Verify(c.Context(), referenceURL, selfie)
	if err != nil {
		return err
	}

	// 4. Return response
	return c.JSON(VerifyResponse{
		Verified:        verification.Verified,
		Distance:        verification.Distance,
		MatchPercentage: verification.MatchPercentage,
		Threshold:       verification.Threshold,
	})
}

// extractSelfie extracts and validates the selfie from the form
func (h *VerifyHandler) extractSelfie(c *fiber.Ctx) ([]byte, error) {
	// 1. Extract file
	file, err := c.FormFile("selfie")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	// 2. Validate size
	if file.Size > h.maxBytes {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	if file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	// 3. Validate Content-Type
	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	// 4. Read selfie bytes
	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	selfie, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return selfie, nil
}
