package mock

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyc-labs/facematch/internal/provider"
)

func testOptions() provider.Options {
	return provider.Options{
		InputSize:     320,
		MinConfidence: 0.5,
		MaxDetections: 10,
	}
}

func TestProvider_Detect(t *testing.T) {
	p := New(testOptions())
	image := bytes.Repeat([]byte{0xAB}, 5000)

	detections, err := p.Detect(context.Background(), image)

	require.NoError(t, err)
	require.Len(t, detections, 1)

	d := detections[0]
	assert.Equal(t, 240.0, d.Box.Width)
	assert.Equal(t, 240.0, d.Box.Height)
	assert.Equal(t, 0.99, d.Confidence)
	assert.Len(t, d.Embedding, embeddingDimension)
}

func TestProvider_Detect_Deterministic(t *testing.T) {
	p := New(testOptions())
	image := bytes.Repeat([]byte{0x42}, 5000)

	first, err := p.Detect(context.Background(), image)
	require.NoError(t, err)
	second, err := p.Detect(context.Background(), image)
	require.NoError(t, err)

	assert.Equal(t, first[0].Embedding, second[0].Embedding)
}

func TestProvider_Detect_DistinctImages(t *testing.T) {
	p := New(testOptions())

	a, err := p.Detect(context.Background(), bytes.Repeat([]byte{0x01}, 5000))
	require.NoError(t, err)
	b, err := p.Detect(context.Background(), bytes.Repeat([]byte{0x02}, 5000))
	require.NoError(t, err)

	assert.NotEqual(t, a[0].Embedding, b[0].Embedding)
}

func TestProvider_Detect_TooSmall(t *testing.T) {
	p := New(testOptions())

	detections, err := p.Detect(context.Background(), []byte("tiny"))

	assert.Nil(t, detections)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
}

func TestProvider_Detect_ZeroMaxDetections(t *testing.T) {
	opts := testOptions()
	opts.MaxDetections = 0
	p := New(opts)

	detections, err := p.Detect(context.Background(), bytes.Repeat([]byte{0xAB}, 5000))

	require.NoError(t, err)
	assert.Empty(t, detections)
}

func TestGenerateEmbedding_Normalized(t *testing.T) {
	embedding := generateEmbedding(bytes.Repeat([]byte{0x7F}, 5000))

	var norm float64
	for _, v := range embedding {
		norm += v * v
	}

	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}
