package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the raw bytes of an attachment from its file URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// maxAttachmentSize caps a single download at 50 MiB.
const maxAttachmentSize = 50 << 20

// HTTPFetcher fetches attachments over HTTP(S).
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
// A zero or negative timeout selects 60 seconds.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPFetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Fetch downloads the URL. Any transport failure or non-2xx status wraps
// ErrDownloadFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrDownloadFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if len(data) > maxAttachmentSize {
		return nil, fmt.Errorf("%w: attachment exceeds %d bytes", ErrDownloadFailed, maxAttachmentSize)
	}
	return data, nil
}
