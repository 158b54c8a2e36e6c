package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	wm "writeoff_monitor"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)

// HTTPSink posts the payload as a JSON array to a fixed URL.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink builds a sink with its own client. timeout <= 0 uses the default.
func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPSink{url: url, client: &http.Client{Timeout: timeout}}
}

// Send posts payload; any non-2xx answer is an error.
func (s *HTTPSink) Send(ctx context.Context, payload []wm.UnitEventSet) error {
	body, err := encodePayload(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch to %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("dispatch to %s: status %d: %s", s.url, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
