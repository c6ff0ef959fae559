package domain

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code, so errors.Is sees the predefined error
// through WithError and ForSide copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// ImageSide names which of the two request images an error refers to. The
// values double as the human-readable prefix in response messages.
type ImageSide string

const (
	SideReference ImageSide = "reference image"
	SideSelfie    ImageSide = "selfie"
)

// ForSide derives a copy of the error with its message attributed to one of
// the two images. The derived error wraps the base one, so errors.Is against
// the unlabeled rejection keeps working.
func (e *AppError) ForSide(side ImageSide) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    fmt.Sprintf("%s error: %s", side, e.Message),
		StatusCode: e.StatusCode,
		Err:        e,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing API key",
		StatusCode: 401,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrLowQualityImage = &AppError{
		Code:       "LOW_QUALITY_IMAGE",
		Message:    "Image too low quality, please use a higher resolution image",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrMultipleFaces = &AppError{
		Code:       "MULTIPLE_FACES",
		Message:    "Multiple faces detected, please provide an image with a single face",
		StatusCode: 422,
	}

	ErrFaceTooSmall = &AppError{
		Code:       "FACE_TOO_SMALL",
		Message:    "Face too small, please position the camera closer to the face",
		StatusCode: 422,
	}

	ErrReferenceFetch = &AppError{
		Code:       "REFERENCE_FETCH_FAILED",
		Message:    "Unable to fetch the reference image",
		StatusCode: 502,
	}
)

// rejections are the user-facing reasons an image can be refused, fixable by
// retaking the photo. The set is closed: everything else that goes wrong in
// the pipeline, an undecodable image included, is an infrastructure fault.
var rejections = []*AppError{
	ErrLowQualityImage,
	ErrNoFaceDetected,
	ErrMultipleFaces,
	ErrFaceTooSmall,
}

// IsRejection reports whether err is one of the rejection reasons a user can
// fix by retaking the photo, as opposed to a system fault.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
