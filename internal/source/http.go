package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHTTPTimeout applies when no timeout is configured.
const DefaultHTTPTimeout = 10 * time.Second

// HTTP fetches table text with a GET request, the way the browser page
// fetched lotto_data.txt next to itself.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP source.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTP{url: url, client: &http.Client{Timeout: timeout}}
}

// Name implements core.TextSource.
func (h *HTTP) Name() string { return h.url }

// ReadText implements core.TextSource.
func (h *HTTP) ReadText(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", unavailable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, h.url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", unavailable(fmt.Errorf("GET %s: status %d", h.url, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxTableBytes+1))
	if err != nil {
		return "", unavailable(err)
	}
	if len(data) > MaxTableBytes {
		return "", unavailable(fmt.Errorf("%s exceeds %d bytes", h.url, MaxTableBytes))
	}
	return string(data), nil
}
