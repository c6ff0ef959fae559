package faceserver

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/kyc-labs/facematch/internal/provider"
)

// Provider implements provider.FaceDetector against a face model server
// speaking the /represent protocol. The server loads its detector, landmark
// and embedding models lazily; the provider warms it up before the first
// detection, guarded by a single-flight group so concurrent first callers
// share one in-flight load. A failed warm-up is retried by the next caller.
type Provider struct {
	client *Client
	opts   provider.Options

	warm   singleflight.Group
	warmed atomic.Bool
}

// NewProvider creates a new face server provider
func NewProvider(config Config, opts provider.Options) *Provider {
	return &Provider{
		client: NewClient(config),
		opts:   opts,
	}
}

func (p *Provider) ensureWarm(ctx context.Context) error {
	if p.warmed.Load() {
		return nil
	}

	_, err, _ := p.warm.Do("warmup", func() (any, error) {
		if p.warmed.Load() {
			return nil, nil
		}
		if err := p.client.Ready(ctx); err != nil {
			return nil, fmt.Errorf("warm up face server: %w", err)
		}
		p.warmed.Store(true)
		return nil, nil
	})
	return err
}

// Detect sends the image to the model server and maps the results. The
// configured tunables travel with every request; the confidence filter and
// result cap are applied locally as well because older model servers ignore
// them.
func (p *Provider) Detect(ctx context.Context, image []byte) ([]provider.Detection, error) {
	if err := p.ensureWarm(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.Represent(ctx, RepresentRequest{
		Img:           base64.StdEncoding.EncodeToString(image),
		InputSize:     p.opts.InputSize,
		MinConfidence: p.opts.MinConfidence,
		MaxFaces:      p.opts.MaxDetections,
	})
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	detections := make([]provider.Detection, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result.Confidence < p.opts.MinConfidence {
			continue
		}
		detections = append(detections, provider.Detection{
			Box: provider.BoundingBox{
				X:      float64(result.FacialArea.X),
				Y:      float64(result.FacialArea.Y),
				Width:  float64(result.FacialArea.W),
				Height: float64(result.FacialArea.H),
			},
			Embedding:  result.Embedding,
			Confidence: result.Confidence,
		})
		if len(detections) == p.opts.MaxDetections {
			break
		}
	}

	return detections, nil
}

// Ensure Provider implements provider.FaceDetector
var _ provider.FaceDetector = (*Provider)(nil)
