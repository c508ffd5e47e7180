package swiggy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultMenuAPIURL = "https://www.swiggy.com/mapi/menu/pl"

	defaultLatitude  = 19.0748
	defaultLongitude = 72.8856

	defaultUserAgentHeader = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/91.0.4472.124 Safari/537.36"
	defaultAcceptHeader         = "application/json, text/plain, */*"
	defaultAcceptLanguageHeader = "en-US,en;q=0.9"
)

// ErrUpstream indicates Swiggy API failure.
var ErrUpstream = errors.New("[Swiggy] error when trying to get response from swiggy api")

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoints stores upstream endpoint urls.
type Endpoints struct {
	Menu string
}

// Location anchors menu requests to one delivery point. Swiggy serves menus
// and availability relative to it.
type Location struct {
	Lat float64
	Lng float64
}

// Client queries Swiggy public endpoints.
type Client struct {
	httpClient     HTTPClient
	endpoints      Endpoints
	location       Location
	minRequestGap  time.Duration
	requestWindowM sync.Mutex
	nextRequestAt  time.Time
	verboseOutput  io.Writer
	verboseOutputM sync.RWMutex
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoints replaces default endpoint set.
func WithEndpoints(endpoints Endpoints) Option {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

// WithLocation replaces the default delivery point.
func WithLocation(location Location) Option {
	return func(c *Client) {
		c.location = location
	}
}

// WithRequestMinInterval limits request burst by enforcing minimum delay between upstream calls.
func WithRequestMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval < 0 {
			interval = 0
		}
		c.minRequestGap = interval
	}
}

// WithVerboseOutput enables per-request trace output for upstream HTTP calls.
func WithVerboseOutput(out io.Writer) Option {
	return func(c *Client) {
		c.SetVerboseOutput(out)
	}
}

// NewClient creates a production Swiggy gateway client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoints: Endpoints{
			Menu: defaultMenuAPIURL,
		},
		location: Location{Lat: defaultLatitude, Lng: defaultLongitude},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetVerboseOutput sets destination for verbose HTTP request trace lines.
func (c *Client) SetVerboseOutput(out io.Writer) {
	c.verboseOutputM.Lock()
	c.verboseOutput = out
	c.verboseOutputM.Unlock()
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"User-Agent":      defaultUserAgentHeader,
		"Accept":          defaultAcceptHeader,
		"Accept-Language": defaultAcceptLanguageHeader,
		"Connection":      "keep-alive",
	}
}

// MenuPage returns the raw restaurant menu page payload.
func (c *Client) MenuPage(ctx context.Context, restaurantID string) (map[string]any, error) {
	trimmedID := strings.TrimSpace(restaurantID)
	if trimmedID == "" {
		return nil, fmt.Errorf("restaurant id is required")
	}
	params := url.Values{}
	params.Set("page-type", "REGULAR_MENU")
	params.Set("complete-menu", "true")
	params.Set("lat", strconv.FormatFloat(c.location.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(c.location.Lng, 'f', -1, 64))
	params.Set("restaurantId", trimmedID)
	return c.doJSONRequest(ctx, http.MethodGet, c.endpoints.Menu, params, c.headers())
}

func (c *Client) doJSONRequest(ctx context.Context, method, rawURL string, params url.Values, headers map[string]string) (map[string]any, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if err := c.waitForRequestSlot(ctx); err != nil {
		return nil, err
	}

	startedAt := time.Now()
	c.tracef("[http] -> %s %s", method, rawURL)

	res, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErr := &UpstreamRequestError{
			Method: method,
			URL:    rawURL,
			Cause:  err,
		}
		c.traceRequestDone(method, rawURL, 0, 0, startedAt, upstreamErr)
		return nil, upstreamErr
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawResponse, err := io.ReadAll(res.Body)
	if err != nil {
		upstreamErr := &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Cause:      fmt.Errorf("read response body: %w", err),
		}
		c.traceRequestDone(method, rawURL, res.StatusCode, 0, startedAt, upstreamErr)
		return nil, upstreamErr
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		upstreamErr := &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawResponse),
		}
		c.traceRequestDone(method, rawURL, res.StatusCode, len(rawResponse), startedAt, upstreamErr)
		return nil, upstreamErr
	}
	if len(rawResponse) == 0 {
		c.traceRequestDone(method, rawURL, res.StatusCode, 0, startedAt, nil)
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(rawResponse, &payload); err != nil {
		upstreamErr := &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawResponse),
			Cause:      fmt.Errorf("decode response body: %w", err),
		}
		c.traceRequestDone(method, rawURL, res.StatusCode, len(rawResponse), startedAt, upstreamErr)
		return nil, upstreamErr
	}

	c.traceRequestDone(method, rawURL, res.StatusCode, len(rawResponse), startedAt, nil)
	return payload, nil
}

func (c *Client) traceRequestDone(method, rawURL string, statusCode int, responseBytes int, startedAt time.Time, reqErr error) {
	duration := time.Since(startedAt).Round(time.Millisecond)
	if reqErr != nil {
		c.tracef("[http] <- %s %s error=%v duration=%s", method, rawURL, reqErr, duration)
		return
	}
	c.tracef(
		"[http] <- %s %s status=%d duration=%s bytes=%d",
		method,
		rawURL,
		statusCode,
		duration,
		responseBytes,
	)
}

func (c *Client) waitForRequestSlot(ctx context.Context) error {
	interval := c.minRequestGap
	if interval <= 0 {
		return nil
	}
	for {
		c.requestWindowM.Lock()
		wait := time.Until(c.nextRequestAt)
		if wait <= 0 {
			c.nextRequestAt = time.Now().Add(interval)
			c.requestWindowM.Unlock()
			return nil
		}
		c.requestWindowM.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) tracef(format string, args ...any) {
	c.verboseOutputM.RLock()
	out := c.verboseOutput
	c.verboseOutputM.RUnlock()
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, format+"\n", args...)
}
