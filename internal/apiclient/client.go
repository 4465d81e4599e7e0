package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/viralit/client/internal/metrics"
	"github.com/viralit/client/internal/model"
)

// Client talks to the Viralit scheduling backend. It holds no per-request
// state and is safe for concurrent use; the base address is fixed at
// construction.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.ClientMetrics
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "api-client").Logger()
	return c
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one backend call. pattern is the route template used for
// metrics labels; path is the concrete, escaped path.
type request struct {
	method  string
	pattern string
	path    string
	query   url.Values
	body    any
}

var jsonNull = []byte("null")

// do performs exactly one HTTP request and decodes a 2xx body into result.
// It never retries.
func (c *Client) do(ctx context.Context, r request, result any, opts []CallOption) error {
	var reqBody io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	cc := callConfig{header: http.Header{}}
	for _, opt := range opts {
		opt(&cc)
	}
	for k, v := range cc.header {
		req.Header[k] = v
	}

	logger := c.logger.With().
		Str("method", r.method).
		Str("path", r.path).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(logger, r, start, metrics.OutcomeTransport,
			&TransportError{Method: r.method, Path: r.path, Err: err})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(logger, r, start, metrics.OutcomeTransport,
			&TransportError{Method: r.method, Path: r.path, Err: fmt.Errorf("read response body: %w", err)})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(logger, r, start, metrics.OutcomeBackend, &BackendError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		})
	}

	if err := decode(data, result); err != nil {
		return c.fail(logger, r, start, metrics.OutcomeMalformed, &BackendError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
			Malformed:  true,
			Err:        err,
		})
	}

	elapsed := time.Since(start)
	c.metrics.ObserveRequest(r.method, r.pattern, metrics.OutcomeOK, elapsed)
	logger.Debug().Int("status", resp.StatusCode).Dur("duration", elapsed).Msg("backend request")
	return nil
}

func (c *Client) fail(logger zerolog.Logger, r request, start time.Time, outcome string, err error) error {
	elapsed := time.Since(start)
	c.metrics.ObserveRequest(r.method, r.pattern, outcome, elapsed)

	ev := logger.Warn().Err(err).Str("outcome", outcome).Dur("duration", elapsed)
	var be *BackendError
	if errors.As(err, &be) {
		ev = ev.Int("status", be.StatusCode)
	}
	ev.Msg("backend request failed")
	return err
}

// decode parses data into result and checks it against the entity model's
// closed domains.
func decode(data []byte, result any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return errors.New("empty response body")
	}
	if err := json.Unmarshal(trimmed, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := model.Validate(result); err != nil {
		return fmt.Errorf("validate response: %w", err)
	}
	return nil
}
