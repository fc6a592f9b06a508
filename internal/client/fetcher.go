// Package client retrieves body observations, either from a running
// celestiald or by running the pipeline in process.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-celestial/internal/celestial"
	"github.com/litescript/ls-celestial/internal/server"
)

const (
	// DefaultBaseURL is where celestiald listens by default.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 10 * time.Second
)

// Source produces observations for a body.
type Source interface {
	Fetch(ctx context.Context, kind celestial.BodyKind) FetchResult
}

// FetchResult contains the result of a fetch operation.
type FetchResult struct {
	Body        celestial.BodyKind
	Observation *Observation
	RawBytes    []byte
	FetchedAt   time.Time
	Duration    time.Duration
	Error       error
}

// Fetcher queries the HTTP service.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	timeout  time.Duration
	location *celestial.Location
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithBaseURL sets the service address.
func WithBaseURL(u string) FetcherOption {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLocation sends the observer coordinates with each request.
func WithLocation(loc *celestial.Location) FetcherOption {
	return func(f *Fetcher) {
		if loc != nil {
			l := *loc
			f.location = &l
		}
	}
}

// NewFetcher creates a new service fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves and parses one body.
func (f *Fetcher) Fetch(ctx context.Context, kind celestial.BodyKind) FetchResult {
	start := time.Now()
	result := FetchResult{
		Body:      kind,
		FetchedAt: start,
	}

	raw, err := f.fetchRaw(ctx, kind)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.RawBytes = raw

	obs, err := Parse(raw)
	if err != nil {
		result.Error = fmt.Errorf("parse %s record: %w", kind, err)
		return result
	}
	result.Observation = obs
	return result
}

func (f *Fetcher) requestURL(kind celestial.BodyKind) string {
	u := f.baseURL + "/" + kind.String()
	if f.location == nil {
		return u
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(f.location.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(f.location.Longitude, 'f', -1, 64))
	return u + "?" + q.Encode()
}

func (f *Fetcher) fetchRaw(ctx context.Context, kind celestial.BodyKind) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.requestURL(kind), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ls-celestial/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("service returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return body, nil
}

// URL returns the configured service address.
func (f *Fetcher) URL() string {
	return f.baseURL
}

// Local runs the pipeline in process and yields the same records the
// service would return.
type Local struct {
	runner   server.Runner
	location *celestial.Location
	now      func() time.Time
}

// NewLocal wraps a pipeline. loc may be nil.
func NewLocal(runner server.Runner, loc *celestial.Location) *Local {
	l := &Local{runner: runner, now: time.Now}
	if loc != nil {
		c := *loc
		l.location = &c
	}
	return l
}

// Fetch computes one body.
func (l *Local) Fetch(ctx context.Context, kind celestial.BodyKind) FetchResult {
	start := l.now()
	result := FetchResult{Body: kind, FetchedAt: start}

	raw, err := l.compute(ctx, kind, start)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.RawBytes = raw

	obs, err := Parse(raw)
	if err != nil {
		result.Error = fmt.Errorf("parse %s record: %w", kind, err)
		return result
	}
	result.Observation = obs
	return result
}

func (l *Local) compute(ctx context.Context, kind celestial.BodyKind, at time.Time) ([]byte, error) {
	oc, err := celestial.NewObserverContext(at, l.location)
	if err != nil {
		return nil, err
	}
	rec, _, err := l.runner.Run(ctx, kind, oc)
	if err != nil {
		return nil, err
	}
	if err := server.Assemble(rec, oc); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s record: %w", kind, err)
	}
	return raw, nil
}
