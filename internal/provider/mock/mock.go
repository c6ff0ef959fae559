package mock

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"

	"github.com/kyc-labs/facematch/internal/provider"
)

const embeddingDimension = 128

// minImageBytes filters out payloads too small to be a real photo
const minImageBytes = 1000

// Provider implements provider.FaceDetector for development and tests. It
// derives a deterministic unit-length embedding from the image hash, so the
// same bytes always verify against themselves with distance zero.
type Provider struct {
	opts provider.Options
}

// New creates a new mock provider
func New(opts provider.Options) *Provider {
	return &Provider{opts: opts}
}

// Detect returns a single synthetic face for any plausible image payload.
func (p *Provider) Detect(ctx context.Context, image []byte) ([]provider.Detection, error) {
	if len(image) < minImageBytes {
		return nil, fmt.Errorf("image payload too small: %d bytes", len(image))
	}

	if p.opts.MaxDetections < 1 {
		return []provider.Detection{}, nil
	}

	return []provider.Detection{
		{
			Box: provider.BoundingBox{
				X:      60,
				Y:      60,
				Width:  240,
				Height: 240,
			},
			Embedding:  generateEmbedding(image),
			Confidence: 0.99,
		},
	}, nil
}

// generateEmbedding derives a normalized embedding from the image hash
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		embedding[i] = (float64(hash[i%hashLen])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.FaceDetector = (*Provider)(nil)
