// Package fetcher retrieves report pages from the transparency portal.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dquispe/comparador-presupuestal/internal/budget"
)

// Config controls client behavior.
type Config struct {
	UserAgent string
	// Timeout caps a whole fetch when > 0. The zero default leaves the
	// client without a timeout: the contract is a single attempt,
	// however slow the portal is that day.
	Timeout time.Duration
	// InsecureTLS disables certificate validation on this client's
	// transport only. The portal has served a broken certificate chain
	// for years; do not enable this for any other target.
	InsecureTLS bool
}

// Client performs single-attempt GETs against the portal.
type Client struct {
	cfg    Config
	client *http.Client
}

// New builds a Client with its own transport.
func New(cfg Config) *Client {
	transport := newHTTPTransport()
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit opt-in for the portal's broken chain
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// Fetch executes one HTTP GET and returns the body decoded as UTF-8
// text. No retries. Failures are classified: transport errors become
// budget.ConnectionError, non-2xx responses become budget.StatusError,
// anything else propagates wrapped.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &budget.ConnectionError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &budget.StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
