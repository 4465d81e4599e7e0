package apiclient

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/viralit/client/internal/metrics"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request. The default is no deadline, so a request
// that never resolves blocks until its context is cancelled.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// CallOption adjusts a single request.
type CallOption func(*callConfig)

type callConfig struct {
	header http.Header
}

// WithHeader sets a request header, overriding the client defaults
// (including Content-Type).
func WithHeader(key, value string) CallOption {
	return func(cc *callConfig) {
		cc.header.Set(key, value)
	}
}
