package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/logger"
	"github.com/campuseats/ordering-gateway/pkg/metrics"
)

const pingTimeout = 5 * time.Second

// Client talks to the campus dining REST API. The upstream owns accounts,
// the catalog, inventory and orders; the gateway never caches its answers
// beyond what callers explicitly keep.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
	metrics    *metrics.GatewayMetrics
}

// StatusError is a non-2xx upstream answer. Message carries the upstream's
// own user-facing text, relayed verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

// AsStatusError extracts a StatusError from err. A false return means the
// request never produced an HTTP answer (timeout, refused connection).
func AsStatusError(err error) (*StatusError, bool) {
	var typed *StatusError
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// NewClient builds the upstream client from configuration.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger, gm *metrics.GatewayMetrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("upstream base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logg:       logg,
		metrics:    gm,
	}, nil
}

// DoJSON performs one JSON request against the upstream. token, when set, is
// forwarded as a bearer credential. body is encoded as the request payload
// and the 2xx answer is decoded into out; both may be nil. Non-2xx answers
// come back as a *StatusError carrying the upstream's error text.
func (c *Client) DoJSON(ctx context.Context, operation, method, path, token string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", operation, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveUpstream(operation, time.Since(start))
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "upstream request failed: "+operation, err)
		}
		return fmt.Errorf("calling upstream %s: %w", operation, err)
	}
	defer c.closeBody(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", operation, err)
	}
	return nil
}

// Ping verifies the upstream answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	c.closeBody(ctx, resp.Body)
	return nil
}

// decodeErrorMessage pulls the user-facing text out of an upstream error
// body. The upstream answers with {"error": "..."} on most routes and
// {"message": "..."} on a few older ones.
func decodeErrorMessage(body io.Reader) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}

func (c *Client) closeBody(ctx context.Context, body io.Closer) {
	if body == nil {
		return
	}
	if err := body.Close(); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "failed to close upstream response body")
	}
}
