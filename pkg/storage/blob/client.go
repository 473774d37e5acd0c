package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

const pingTimeout = 5 * time.Second

// Client uploads media objects to the external blob store and returns the
// retrievable URL. The store itself (retention, serving, deletion) is owned
// by the external service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	logg       *logger.Logger
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient builds a blob client from configuration. A missing base URL
// disables uploads without failing startup; POS image upload then reports a
// dependency error.
func NewClient(cfg config.BlobConfig, logg *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("blob base url is required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("blob base url %q must be absolute", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		bucket:     cfg.Bucket,
		logg:       logg,
	}, nil
}

// Upload streams one object to the store and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", errors.New("blob client not configured")
	}
	if objectName == "" {
		return "", errors.New("object name is required")
	}

	target := c.objectURL(objectName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading object: %w", err)
	}
	defer c.closeBody(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("blob store rejected upload: status %d", resp.StatusCode)
	}
	return target, nil
}

// Ping verifies the store endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.httpClient == nil {
		return errors.New("blob client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
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

func (c *Client) objectURL(objectName string) string {
	return c.baseURL + "/" + path.Join(c.bucket, objectName)
}

func (c *Client) closeBody(ctx context.Context, body io.Closer) {
	if body == nil {
		return
	}
	if err := body.Close(); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "failed to close blob response body")
	}
}
