// Package deepsearch is a client for the DeepSearch compute API. Every
// operation is one expression passed in the input query parameter of a GET
// request; responses arrive as an envelope of pods whose content carries
// either a paged document list or a columnar data frame.
package deepsearch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRetries    = 5
	defaultRetryDelay = 5 * time.Second
	defaultTimeout    = 30 * time.Second
)

// Config carries the connection settings for a Client.
type Config struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	MaxRetries         int
	RetryDelay         time.Duration
	RequestsPerSecond  float64
	InsecureSkipVerify bool
}

// Client talks to the compute endpoint. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
	retries    int
	retryDelay time.Duration
}

// New builds a Client from cfg. Zero retry and timeout settings fall back
// to the defaults the upstream service is known to tolerate.
func New(cfg Config, log *slog.Logger) *Client {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultRetries
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		http:       &http.Client{Timeout: timeout, Transport: transport},
		limiter:    limiter,
		log:        log,
		retries:    retries,
		retryDelay: delay,
	}
}

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Pods []pod `json:"pods"`
	} `json:"data"`
}

type pod struct {
	Class   string `json:"class"`
	Content struct {
		Data json.RawMessage `json:"data"`
	} `json:"content"`
}

// compute evaluates one expression, retrying transport and server errors
// with a fixed delay between attempts.
func (c *Client) compute(ctx context.Context, expr string) ([]pod, error) {
	reqURL := c.baseURL + "?input=" + url.QueryEscape(expr)

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		pods, err := c.once(ctx, reqURL)
		if err == nil {
			return pods, nil
		}
		lastErr = err
		c.log.Warn("compute request failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.retries),
			slog.Any("err", err),
		)

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("compute failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) once(ctx context.Context, reqURL string) ([]pod, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env.Data.Pods, nil
}

var (
	errNoDocsPod  = errors.New("no document pod in response")
	errNoFramePod = errors.New("no data frame pod in response")
)
