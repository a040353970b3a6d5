package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

const (
	dataPath     = "/data"
	siteInfoPath = "/site-info"
)

// Client fetches site metadata and readings from the backend.
// Each call is attempted exactly once; there are no retries.
type Client struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// NewClient creates a backend client. A nil logger uses slog.Default.
func NewClient(client *http.Client, baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: cb,
		log:     log.With("component", "backend"),
	}
}

type response struct {
	status int
	body   []byte
}

// get performs one GET through the circuit breaker.
// HTTP status codes are returned to the caller; only transport failures trip the breaker.
func (c *Client) get(ctx context.Context, path string) (response, error) {
	u := c.baseURL + path

	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return response{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return response{}, &FetchError{URL: u, Err: err}
	}

	resp, ok := result.(response)
	if !ok {
		return response{}, &FetchError{URL: u, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	c.log.Debug("backend response", "url", u, "status", resp.status, "bytes", len(resp.body))
	return resp, nil
}

// Raw returns the /data payload bytes for the table view.
// An error object in the payload yields a *ServerError.
func (c *Client) Raw(ctx context.Context) ([]byte, error) {
	resp, err := c.get(ctx, dataPath)
	if err != nil {
		return nil, err
	}
	if serr := serverError(c.baseURL+dataPath, resp); serr != nil {
		return nil, serr
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &FetchError{URL: c.baseURL + dataPath, Err: fmt.Errorf("%w: %d", errUnexpected, resp.status)}
	}
	return resp.body, nil
}

// Sites fetches /site-info. A missing "sites" field is an empty list.
func (c *Client) Sites(ctx context.Context) ([]timeline.Site, error) {
	u := c.baseURL + siteInfoPath
	resp, err := c.get(ctx, siteInfoPath)
	if err != nil {
		return nil, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("%w: %d", errUnexpected, resp.status)}
	}

	var payload struct {
		Sites []timeline.Site `json:"sites"`
	}
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("decode site info: %w", err)}
	}
	if payload.Sites == nil {
		payload.Sites = []timeline.Site{}
	}
	return payload.Sites, nil
}

// Readings fetches /data. A payload carrying an error flag yields a *ServerError,
// whatever the HTTP status.
func (c *Client) Readings(ctx context.Context) ([]timeline.Reading, error) {
	u := c.baseURL + dataPath
	resp, err := c.get(ctx, dataPath)
	if err != nil {
		return nil, err
	}
	if serr := serverError(u, resp); serr != nil {
		return nil, serr
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("%w: %d", errUnexpected, resp.status)}
	}

	readings, err := DecodeReadings(resp.body)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	return readings, nil
}

// serverError returns a *ServerError when body is an object whose "error" field is truthy.
func serverError(u string, resp response) *ServerError {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(resp.body, &obj); err != nil {
		return nil
	}
	raw, ok := obj["error"]
	if !ok || !truthy(raw) {
		return nil
	}

	var msg string
	if m, ok := obj["message"]; ok {
		_ = json.Unmarshal(m, &msg)
	}
	if msg == "" {
		// {"error": "Data file not found"} without a message.
		_ = json.Unmarshal(raw, &msg)
	}
	return &ServerError{URL: u, Status: resp.status, Message: msg}
}

func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
