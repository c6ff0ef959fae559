package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database. Optional: the verification audit log is disabled when empty.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Provider
	ProviderType  string `envconfig:"PROVIDER_TYPE" default:"faceserver"`
	FaceServerURL string `envconfig:"FACE_SERVER_URL" default:"http://localhost:5000"`

	// Security. Optional: requests are unauthenticated when empty.
	APIKey string `envconfig:"API_KEY"`

	// Matching
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.48"`
	MinFaceWidth   int     `envconfig:"MIN_FACE_WIDTH" default:"100"`
	MinImageSize   int     `envconfig:"MIN_IMAGE_SIZE" default:"300"`

	// Detector
	DetectorInputSize     int     `envconfig:"DETECTOR_INPUT_SIZE" default:"320"`
	DetectorMinConfidence float64 `envconfig:"DETECTOR_MIN_CONFIDENCE" default:"0.5"`
	MaxDetections         int     `envconfig:"MAX_DETECTIONS" default:"10"`

	// Image intake
	FetchTimeout  time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	MaxImageBytes int64         `envconfig:"MAX_IMAGE_BYTES" default:"5242880"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the numeric tunables. They are fixed for the lifetime of
// the process, so a bad value should fail startup rather than every request.
func (c *Config) Validate() error {
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be in (0, 1], got %v", c.MatchThreshold)
	}
	if c.MinFaceWidth <= 0 {
		return fmt.Errorf("MIN_FACE_WIDTH must be positive, got %d", c.MinFaceWidth)
	}
	if c.MinImageSize <= 0 {
		return fmt.Errorf("MIN_IMAGE_SIZE must be positive, got %d", c.MinImageSize)
	}
	if c.DetectorInputSize <= 0 {
		return fmt.Errorf("DETECTOR_INPUT_SIZE must be positive, got %d", c.DetectorInputSize)
	}
	if c.DetectorMinConfidence < 0 || c.DetectorMinConfidence > 1 {
		return fmt.Errorf("DETECTOR_MIN_CONFIDENCE must be in [0, 1], got %v", c.DetectorMinConfidence)
	}
	if c.MaxDetections <= 0 {
		return fmt.Errorf("MAX_DETECTIONS must be positive, got %d", c.MaxDetections)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
