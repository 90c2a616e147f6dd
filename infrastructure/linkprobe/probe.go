// Package linkprobe checks that external URLs respond.
package linkprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent identifies probe requests.
const DefaultUserAgent = "docnav-linkcheck/1.0"

// ErrUnreachable indicates a URL did not answer with a success or redirect status.
var ErrUnreachable = errors.New("unreachable")

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	URL    string
	Status int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Unwrap allows errors.Is(err, ErrUnreachable).
func (e *StatusError) Unwrap() error { return ErrUnreachable }

// Prober issues HEAD requests, retrying with GET when HEAD is not allowed.
type Prober struct {
	client    *http.Client
	userAgent string
}

// Option configures a Prober.
type Option func(*Prober)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(p *Prober) { p.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Prober) { p.userAgent = ua }
}

// New creates a Prober with the given per-request timeout.
func New(timeout time.Duration, opts ...Option) *Prober {
	p := &Prober{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe returns nil when url answers 2xx or 3xx.
func (p *Prober) Probe(ctx context.Context, url string) error {
	status, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		if status, err = p.do(ctx, http.MethodGet, url); err != nil {
			return err
		}
	}
	if status >= 400 {
		return &StatusError{URL: url, Status: status}
	}
	return nil
}

func (p *Prober) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.CopyN(io.Discard, resp.Body, 64*1024)
	return resp.StatusCode, nil
}
