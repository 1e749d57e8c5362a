// Package client talks to the matchday REST API. It implements match.Store so
// the clock engine and the views can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/engine"
	"github.com/mauv0809/matchday/internal/http/handlers"
	"github.com/mauv0809/matchday/internal/match"
)

// DefaultBaseURL is used when no API address is configured.
const DefaultBaseURL = "http://localhost:8080"

// Client is a matchday API client.
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

// Ensure Client implements the match store contract.
var _ match.Store = (*Client)(nil)

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Stats returns the server's persistent counters.
func (c *Client) Stats(ctx context.Context) (map[string]int, error) {
	var stats map[string]int
	err := c.do(ctx, http.MethodGet, "/stats", nil, &stats)
	return stats, err
}

func (c *Client) ListMatches(ctx context.Context) ([]match.Match, error) {
	return c.ListMatchesByStatus(ctx, match.StatusAll)
}

// ListMatchesByStatus lists the matches in one display bucket.
func (c *Client) ListMatchesByStatus(ctx context.Context, status match.Status) ([]match.Match, error) {
	path := "/matches"
	if status != "" && status != match.StatusAll {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var matches []match.Match
	err := c.do(ctx, http.MethodGet, path, nil, &matches)
	return matches, err
}

func (c *Client) GetMatch(ctx context.Context, id string) (match.Match, error) {
	var m match.Match
	err := c.do(ctx, http.MethodGet, matchPath(id, ""), nil, &m)
	return m, err
}

func (c *Client) CreateMatch(ctx context.Context, n match.NewMatch) (match.Match, error) {
	var m match.Match
	err := c.do(ctx, http.MethodPost, "/matches", n, &m)
	return m, err
}

func (c *Client) PatchMatch(ctx context.Context, id string, p match.Patch) (match.Match, error) {
	var m match.Match
	err := c.do(ctx, http.MethodPatch, matchPath(id, ""), p, &m)
	return m, err
}

func (c *Client) DeleteMatch(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, matchPath(id, ""), nil, nil)
}

func (c *Client) GoLive(ctx context.Context, id string) (match.Match, error) {
	return c.action(ctx, id, engine.ActionGoLive, nil)
}

func (c *Client) EndLive(ctx context.Context, id string) (match.Match, error) {
	return c.action(ctx, id, engine.ActionEndLive, nil)
}

func (c *Client) TogglePause(ctx context.Context, id string) (match.Match, error) {
	return c.action(ctx, id, engine.ActionTogglePause, nil)
}

// FinishMatch ends a match. Without confirmed the server answers with
// engine.ErrConfirmationRequired.
func (c *Client) FinishMatch(ctx context.Context, id string, confirmed bool) (match.Match, error) {
	return c.action(ctx, id, engine.ActionFinish, handlers.FinishRequest{Confirm: confirmed})
}

func (c *Client) AdjustScore(ctx context.Context, id string, team match.Team, delta int) (match.Match, error) {
	return c.action(ctx, id, engine.ActionScore, handlers.ScoreRequest{Team: team.String(), Delta: delta})
}

func (c *Client) SetMinute(ctx context.Context, id string, minute int) (match.Match, error) {
	return c.action(ctx, id, engine.ActionSetMinute, handlers.MinuteRequest{Minute: &minute})
}

func (c *Client) SetExtraTime(ctx context.Context, id string, extra int) (match.Match, error) {
	return c.action(ctx, id, engine.ActionSetExtraTime, handlers.ExtraTimeRequest{ExtraTime: &extra})
}

func (c *Client) action(ctx context.Context, id, action string, body any) (match.Match, error) {
	var m match.Match
	err := c.do(ctx, http.MethodPost, matchPath(id, action), body, &m)
	return m, err
}

func matchPath(id, action string) string {
	path := "/matches/" + url.PathEscape(id)
	if action != "" {
		path += "/" + action
	}
	return path
}

// do sends a JSON request and decodes the JSON response into out. Transport
// failures wrap match.ErrStoreUnavailable; error responses are mapped back to
// the sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Calling matchday API", "op", op)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return match.Unavailable(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return match.Unavailable(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body handlers.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = match.ErrNotFound
	case http.StatusConflict:
		sentinel = match.ErrInvalidTransition
	case http.StatusUnprocessableEntity:
		sentinel = match.ErrInvalidValue
	case http.StatusPreconditionFailed:
		sentinel = match.ErrStale
	case http.StatusPreconditionRequired:
		sentinel = engine.ErrConfirmationRequired
	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			return match.Unavailable(op, &StatusError{Code: resp.StatusCode, Message: msg})
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}
	return &apiError{sentinel: sentinel, msg: msg}
}

// StatusError is an API failure that maps to no domain error.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("matchday api returned %d: %s", e.Code, e.Message)
}

// apiError keeps the server message while matching the sentinel with errors.Is.
type apiError struct {
	sentinel error
	msg      string
}

func (e *apiError) Error() string {
	if e.msg == "" {
		return e.sentinel.Error()
	}
	return e.msg
}

func (e *apiError) Unwrap() error { return e.sentinel }
