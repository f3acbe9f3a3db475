// Package network fetches remote sources for rewriting over HTTP, with
// retries and an optional rate limit.
package network

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxBodySize bounds the size of a fetched source.
const MaxBodySize = 16 << 20

// ErrTooLarge is returned for a response body over MaxBodySize.
var ErrTooLarge = errors.New("network: response body too large")

// StatusError reports a response that is not a success.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("network: %s returned status %d", e.URL, e.StatusCode)
}

// Client wraps http.Client with retry logic and rate limiting.
type Client struct {
	HTTPClient  *http.Client
	RateLimiter *RateLimiter
	MaxRetries  int
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	Timeout     time.Duration
	Proxy       string
	Concurrency int
	RateLimit   float64 // fetches per second, 0 = unlimited
	Insecure    bool    // skip TLS certificate verification
}

// NewClient creates a Client whose connection pool scales with the number
// of workers that share it.
func NewClient(opts ClientOptions) (*Client, error) {
	concurrency := max(opts.Concurrency, 1)

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.Insecure},
		DialContext: (&net.Dialer{
			Timeout:   opts.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		MaxIdleConns:        concurrency * 2,
		MaxIdleConnsPerHost: max(concurrency/2, 10),
		MaxConnsPerHost:     concurrency,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if opts.Proxy != "" {
		pURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("network: invalid proxy: %w", err)
		}
		transport.Proxy = http.ProxyURL(pURL)
	}

	return &Client{
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		RateLimiter: NewRateLimiter(opts.RateLimit),
		MaxRetries:  3,
	}, nil
}

// Do sends an HTTP request with automatic retries and rate limiting.
// Network errors and 5xx responses are retried with exponential backoff.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.RateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	var resp *http.Response
	var err error
	for i := 0; i <= c.MaxRetries; i++ {
		if i > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(math.Pow(2, float64(i-1))*100) * time.Millisecond
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(backoff):
			}
		}

		resp, err = c.HTTPClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if err != nil && req.Context().Err() != nil {
			return nil, req.Context().Err()
		}

		// Close body if we are going to retry
		if resp != nil && i < c.MaxRetries {
			resp.Body.Close()
		}
	}

	if err != nil {
		return nil, fmt.Errorf("network: request failed after %d retries: %w", c.MaxRetries, err)
	}
	return resp, nil
}

// Fetch downloads the source at rawURL and returns its body and media type.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/javascript, application/javascript, text/html;q=0.9, */*;q=0.5")

	resp, err := c.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, "", err
	}
	if len(body) > MaxBodySize {
		return nil, "", ErrTooLarge
	}

	mediaType, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	return body, strings.ToLower(strings.TrimSpace(mediaType)), nil
}

// IsRemote reports whether path is an http or https URL.
func IsRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
