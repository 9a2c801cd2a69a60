package subtitle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"video-quiz/internal/domain"
)

// DefaultMaxBytes caps a subtitle download when no limit is configured.
const DefaultMaxBytes int64 = 8 << 20

// HTTPFetcher downloads subtitle payloads with a single GET and no retries.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher builds a fetcher whose client gives up after timeout.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		maxBytes: maxBytes,
	}
}

// NewHTTPFetcherWithClient uses client as is.
func NewHTTPFetcherWithClient(client *http.Client, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// Fetch returns the payload for any HTTP status. Bodies of non-2xx answers are
// not read.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*domain.SubtitlePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build subtitle request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subtitle request failed: %w", err)
	}
	defer resp.Body.Close()

	payload := &domain.SubtitlePayload{StatusCode: resp.StatusCode}
	if !payload.OK() {
		return payload, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read subtitle body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("subtitle body exceeds %d bytes", f.maxBytes)
	}
	payload.Body = body
	return payload, nil
}

var _ domain.SubtitleFetcher = (*HTTPFetcher)(nil)
