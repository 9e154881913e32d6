// Package api talks to the interview backend: the two request/response
// endpoints and the server-push transcript stream.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skepticlabs/skeptic-tui/internal/insights"
)

const defaultBaseURL = "http://localhost:8000"

// defaultStallTimeout fails a stream that delivers no events at all for
// this long. The server has no heartbeat, so a stalled run is otherwise
// indistinguishable from a healthy slow one.
const defaultStallTimeout = 2 * time.Minute

// Client issues requests against the interview backend. All methods are
// single-shot; retry policy belongs to the caller.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *slog.Logger
	stallTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the backend host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithStallTimeout overrides how long a stream may stay silent before it
// is failed. Zero disables the stall check.
func WithStallTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.stallTimeout = d
	}
}

// NewClient creates a client against the given options, defaulting to
// the local development host.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		logger:       slog.Default(),
		stallTimeout: defaultStallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newDefaultHTTPClient()
	}
	return c
}

// newDefaultHTTPClient configures transport-level timeouts while leaving
// the overall request lifetime to context deadlines. No client-level
// timeout is set because the stream endpoint is long-lived.
func newDefaultHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}
	return &http.Client{Transport: transport}
}

// StartInterviewResponse is the body returned by the start endpoint.
type StartInterviewResponse struct {
	InterviewID string `json:"interviewId"`
	Status      string `json:"status"`
}

// StatusResponse is the polling fallback for a run's progress.
type StatusResponse struct {
	InterviewID  string `json:"interviewId"`
	Status       string `json:"status"`
	MessageCount int    `json:"messageCount"`
	IsComplete   bool   `json:"isComplete"`
}

// StartInterview creates a new backend run for the given persona and
// problem/solution pair. Never retried automatically.
func (c *Client) StartInterview(ctx context.Context, personaID, problem, solution string) (*StartInterviewResponse, error) {
	body, err := json.Marshal(map[string]string{
		"persona_id": personaID,
		"problem":    problem,
		"solution":   solution,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal start request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/interviews/start", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build start request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out StartInterviewResponse
	if err := c.doJSON(req, "start interview", &out); err != nil {
		return nil, err
	}

	c.logger.Info("interview started", "interviewId", out.InterviewID)
	return &out, nil
}

// GetStatus fetches the run's progress. Not used on the primary path;
// the room view consults it before retrying a failed stream.
func (c *Client) GetStatus(ctx context.Context, interviewID string) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.interviewURL(interviewID, "status"), nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	var out StatusResponse
	if err := c.doJSON(req, "get status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInsights fetches the final analysis for a completed run.
func (c *Client) GetInsights(ctx context.Context, interviewID string) (*insights.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.interviewURL(interviewID, "insights"), nil)
	if err != nil {
		return nil, fmt.Errorf("build insights request: %w", err)
	}

	var out insights.Report
	if err := c.doJSON(req, "get insights", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) interviewURL(interviewID, suffix string) string {
	return fmt.Sprintf("%s/api/interviews/%s/%s", c.baseURL, url.PathEscape(interviewID), suffix)
}

// doJSON runs a request and decodes a 2xx JSON body into out. Non-2xx
// responses become a *RequestFailedError carrying the status.
func (c *Client) doJSON(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("request failed", "op", op, "status", resp.StatusCode)
		return &RequestFailedError{Op: op, Status: resp.StatusCode, Body: string(snippet)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
