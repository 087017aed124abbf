package models

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"golang.org/x/time/rate"
)

// ============================================================================
// Directory Client
//
// Talks to the public university directory: one GET per search with the
// country as a query parameter. A process-wide limiter keeps all browser
// sessions together under the configured request rate, and HTTP 429 answers
// are retried with exponential backoff.
// ============================================================================

// FailureKind classifies why a search failed. Both kinds are shown to the
// user the same way; the distinction is kept for logs and the JSON API.
type FailureKind string

const (
	FailureNetwork   FailureKind = "network"
	FailureMalformed FailureKind = "malformed"
)

// DirectoryError is returned by Directory implementations on failure.
type DirectoryError struct {
	Kind FailureKind
	Err  error
}

func (e *DirectoryError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Directory is the upstream lookup the search controller depends on.
type Directory interface {
	Search(ctx context.Context, country string) ([]University, error)
}

// RetryBaseDelay is the first backoff after a 429. Tests shrink it.
var RetryBaseDelay = 2 * time.Second

// maxBodyBytes bounds how much of an upstream answer is read.
const maxBodyBytes = 16 << 20

// DirectoryClientOptions configures a DirectoryClient.
type DirectoryClientOptions struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	MaxRetries    int
	UserAgent     string
}

// DirectoryClient is the HTTP implementation of Directory.
type DirectoryClient struct {
	baseURL    string
	userAgent  string
	maxRetries int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewDirectoryClient builds a client from opts.
func NewDirectoryClient(opts DirectoryClientOptions) *DirectoryClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "unisearch/1.0"
	}

	return &DirectoryClient{
		baseURL:    opts.BaseURL,
		userAgent:  ua,
		maxRetries: opts.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Search fetches every university of country. The body must be a JSON array
// of records that each carry a name and at least one web page; anything else
// is reported as FailureMalformed.
func (dc *DirectoryClient) Search(ctx context.Context, country string) ([]University, error) {
	params := url.Values{"country": {country}}
	reqURL := dc.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &DirectoryError{Kind: FailureNetwork, Err: serr.Wrap(err, "failed to build directory request")}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", dc.userAgent)

	resp, err := dc.doWithRetry(ctx, req)
	if err != nil {
		return nil, &DirectoryError{Kind: FailureNetwork, Err: serr.Wrap(err, "directory request failed")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &DirectoryError{
			Kind: FailureNetwork,
			Err:  serr.New(fmt.Sprintf("directory returned HTTP %d", resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &DirectoryError{Kind: FailureNetwork, Err: serr.Wrap(err, "failed to read directory response")}
	}

	return DecodeUniversities(body)
}

// DecodeUniversities parses and validates a directory response body.
// A JSON null is treated as an empty list.
func DecodeUniversities(body []byte) ([]University, error) {
	var records []University
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &DirectoryError{Kind: FailureMalformed, Err: serr.Wrap(err, "directory response is not a JSON array of universities")}
	}
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, &DirectoryError{
				Kind: FailureMalformed,
				Err:  serr.Wrap(err, fmt.Sprintf("invalid record at position %d", i)),
			}
		}
	}
	if records == nil {
		records = []University{}
	}
	return records, nil
}

// doWithRetry waits for the limiter, sends the request and retries on 429
// with delays of RetryBaseDelay, 2x, 4x... After maxRetries the last 429
// response is returned for the caller to reject.
func (dc *DirectoryClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := dc.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := dc.httpClient.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= dc.maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		logger.Debug("Directory rate limited, backing off", "backoff", backoff, "attempt", attempt+1)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
