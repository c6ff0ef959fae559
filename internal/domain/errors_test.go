package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		assert.Equal(t, "No face detected in the image", ErrNoFaceDetected.Error())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		err := ErrInvalidImage.WithError(errors.New("image: unknown format"))
		assert.Equal(t, "Invalid image format or corrupted file: image: unknown format", err.Error())
	})
}

func TestAppError_WithError(t *testing.T) {
	cause := errors.New("boom")
	err := ErrReferenceFetch.WithError(cause)

	assert.Equal(t, ErrReferenceFetch.Code, err.Code)
	assert.Equal(t, ErrReferenceFetch.StatusCode, err.StatusCode)
	assert.ErrorIs(t, err, cause)

	// Attaching a cause must not break identity against the base error
	assert.ErrorIs(t, err, ErrReferenceFetch)

	// The original stays untouched
	assert.Nil(t, ErrReferenceFetch.Err)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"with cause", ErrLowQualityImage.WithError(errors.New("200x200")), ErrLowQualityImage, true},
		{"side-labeled", ErrFaceTooSmall.ForSide(SideSelfie), ErrFaceTooSmall, true},
		{"labeled and wrapped", fmt.Errorf("verify: %w", ErrMultipleFaces.ForSide(SideReference)), ErrMultipleFaces, true},
		{"different codes", ErrNoFaceDetected, ErrMultipleFaces, false},
		{"plain target", ErrNoFaceDetected.WithError(errors.New("x")), errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestAppError_ForSide(t *testing.T) {
	tests := []struct {
		name    string
		base    *AppError
		side    ImageSide
		wantMsg string
	}{
		{
			name:    "selfie low quality",
			base:    ErrLowQualityImage,
			side:    SideSelfie,
			wantMsg: "selfie error: Image too low quality, please use a higher resolution image",
		},
		{
			name:    "reference multiple faces",
			base:    ErrMultipleFaces,
			side:    SideReference,
			wantMsg: "reference image error: Multiple faces detected, please provide an image with a single face",
		},
		{
			name:    "selfie face too small",
			base:    ErrFaceTooSmall,
			side:    SideSelfie,
			wantMsg: "selfie error: Face too small, please position the camera closer to the face",
		},
		{
			name:    "reference no face",
			base:    ErrNoFaceDetected,
			side:    SideReference,
			wantMsg: "reference image error: No face detected in the image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labeled := tt.base.ForSide(tt.side)

			assert.Equal(t, tt.wantMsg, labeled.Message)
			assert.Equal(t, tt.base.Code, labeled.Code)
			assert.Equal(t, tt.base.StatusCode, labeled.StatusCode)

			// Labeling must not break identity checks against the base error
			assert.ErrorIs(t, labeled, tt.base)
		})
	}
}

func TestIsRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"low quality", ErrLowQualityImage, true},
		{"no face", ErrNoFaceDetected, true},
		{"multiple faces", ErrMultipleFaces, true},
		{"face too small", ErrFaceTooSmall, true},
		{"labeled rejection", ErrNoFaceDetected.ForSide(SideSelfie), true},
		{"wrapped rejection", fmt.Errorf("selfie: %w", ErrFaceTooSmall), true},
		{"rejection with cause", ErrLowQualityImage.WithError(errors.New("200x200")), true},
		{"invalid image", ErrInvalidImage, false},
		{"internal", ErrInternal, false},
		{"reference fetch", ErrReferenceFetch, false},
		{"unauthorized", ErrUnauthorized, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRejection(tt.err))
		})
	}
}
