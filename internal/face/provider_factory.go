package face

import (
	"fmt"

	"github.com/kyc-labs/facematch/internal/config"
	"github.com/kyc-labs/facematch/internal/provider"
	"github.com/kyc-labs/facematch/internal/provider/faceserver"
	"github.com/kyc-labs/facematch/internal/provider/mock"
)

// ProviderType defines supported face detector provider types
type ProviderType string

const (
	// ProviderTypeFaceServer is the HTTP model server provider
	ProviderTypeFaceServer ProviderType = "faceserver"
	// ProviderTypeMock is the deterministic in-process provider (dev/test)
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceDetector creates a FaceDetector instance based on configuration.
//
// Environment variables:
//   - PROVIDER_TYPE: "faceserver" or "mock" (default: "faceserver")
//   - FACE_SERVER_URL: model server URL (default: "http://localhost:5000")
func NewFaceDetector(cfg *config.Config) (provider.FaceDetector, error) {
	opts := provider.Options{
		InputSize:     cfg.DetectorInputSize,
		MinConfidence: cfg.DetectorMinConfidence,
		MaxDetections: cfg.MaxDetections,
	}

	switch ProviderType(cfg.ProviderType) {
	case ProviderTypeMock:
		return mock.New(opts), nil

	case ProviderTypeFaceServer, "":
		serverConfig := faceserver.DefaultConfig()
		if cfg.FaceServerURL != "" {
			serverConfig.BaseURL = cfg.FaceServerURL
		}
		return faceserver.NewProvider(serverConfig, opts), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, ProviderTypeFaceServer, ProviderTypeMock)
	}
}
