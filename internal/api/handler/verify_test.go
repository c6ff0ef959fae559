package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kyc-labs/facematch/internal/api/middleware"
	"github.com/kyc-labs/facematch/internal/domain"
)

// MockVerificationService is a mock implementation of VerificationService
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Verify(ctx context.Context, referenceURL string, selfie []byte) (*domain.Verification, error) {
	args := m.Called(ctx, referenceURL, selfie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Verification), args.Error(1)
}

// testLogger returns a logger that discards all output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Helper to create multipart request
func createMultipartRequest(referenceURL string, selfieContent []byte, contentType string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if referenceURL != "" {
		_ = writer.WriteField("reference_url", referenceURL)
	}

	if selfieContent != nil {
		// Create part with custom Content-Type header
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="selfie"; filename="selfie.jpg"`)
		h.Set("Content-Type", contentType)

		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		_, _ = part.Write(selfieContent)
	}

	_ = writer.Close()
	return body, writer.FormDataContentType(), nil
}

func createTestApp(h *VerifyHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(testLogger()),
	})
	app.Post("/v1/verify", h.Verify)
	return app
}

func TestVerifyHandler_Verify_Success(t *testing.T) {
	service := &MockVerificationService{}
	service.On("Verify", mock.Anything, "http://example.com/ref.jpg", mock.Anything).Return(&domain.Verification{
		ID:              uuid.New(),
		Verified:        true,
		Distance:        0.3012,
		MatchPercentage: 69.88,
		Threshold:       0.48,
	}, nil)

	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("http://example.com/ref.jpg", []byte("selfie-bytes"), "image/jpeg")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, true, got["verified"])
	assert.Equal(t, 0.3012, got["distance"])
	assert.Equal(t, 69.88, got["matchPercentage"])
	assert.Equal(t, 0.48, got["threshold"])
}

func TestVerifyHandler_Verify_MissingReferenceURL(t *testing.T) {
	service := &MockVerificationService{}
	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("", []byte("selfie-bytes"), "image/jpeg")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	service.AssertNumberOfCalls(t, "Verify", 0)
}

func TestVerifyHandler_Verify_InvalidReferenceURL(t *testing.T) {
	service := &MockVerificationService{}
	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("not a url", []byte("selfie-bytes"), "image/jpeg")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
	service.AssertNumberOfCalls(t, "Verify", 0)
}

func TestVerifyHandler_Verify_MissingSelfie(t *testing.T) {
	service := &MockVerificationService{}
	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("http://example.com/ref.jpg", nil, "")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
	service.AssertNumberOfCalls(t, "Verify", 0)
}

func TestVerifyHandler_Verify_UnsupportedContentType(t *testing.T) {
	service := &MockVerificationService{}
	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("http://example.com/ref.jpg", []byte("<svg/>"), "image/svg+xml")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, domain.ErrInvalidImage.Message, got["msg"])
}

func TestVerifyHandler_Verify_SelfieTooLarge(t *testing.T) {
	service := &MockVerificationService{}
	h := NewVerifyHandler(service, 64, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("http://example.com/ref.jpg", bytes.Repeat([]byte{0xAB}, 128), "image/jpeg")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
	service.AssertNumberOfCalls(t, "Verify", 0)
}

func TestVerifyHandler_Verify_RejectionPassesThrough(t *testing.T) {
	service := &MockVerificationService{}
	service.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNoFaceDetected.ForSide(domain.SideSelfie))

	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("http://example.com/ref.jpg", []byte("selfie-bytes"), "image/jpeg")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "selfie error: No face detected in the image", got["msg"])
}

func TestVerifyHandler_Verify_InfrastructureFaultIsGeneric(t *testing.T) {
	service := &MockVerificationService{}
	service.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrReferenceFetch)

	h := NewVerifyHandler(service, 5242880, testLogger())
	app := createTestApp(h)

	body, contentType, err := createMultipartRequest("http://example.com/ref.jpg", []byte("selfie-bytes"), "image/jpeg")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/verify", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "An unexpected error occurred", got["msg"])
}
