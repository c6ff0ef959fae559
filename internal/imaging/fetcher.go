package imaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kyc-labs/facematch/internal/domain"
)

// Fetcher downloads reference images over HTTP. Everything that can go wrong
// here, including an oversized or empty body, is an infrastructure error,
// never a user-facing rejection.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// NewFetcher creates a fetcher with a hard timeout and response size cap.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the image bytes at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrBadRequest.WithError(fmt.Errorf("build fetch request: %w", err))
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrReferenceFetch.WithError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrReferenceFetch.WithError(fmt.Errorf("fetch returned status %d", resp.StatusCode))
	}

	// Read one byte past the cap to detect oversized bodies without
	// buffering them whole.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, domain.ErrReferenceFetch.WithError(fmt.Errorf("read fetch response: %w", err))
	}

	if int64(len(data)) > f.maxBytes {
		return nil, domain.ErrReferenceFetch.WithError(fmt.Errorf("reference image exceeds %d bytes", f.maxBytes))
	}
	if len(data) == 0 {
		return nil, domain.ErrReferenceFetch.WithError(fmt.Errorf("reference image is empty"))
	}

	return data, nil
}
