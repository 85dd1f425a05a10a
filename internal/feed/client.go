package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"remoteboard/internal/domain"
)

const maxFeedBytes = 32 << 20

// Fetch stages reported by FetchError.
const (
	StageRequest = "request"
	StageStatus  = "status"
	StageDecode  = "decode"
)

// FetchError is the one failure kind of the loader: the feed could not be
// retrieved or parsed.
type FetchError struct {
	Stage      string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Stage == StageStatus {
		return fmt.Sprintf("feed %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("feed %s: %s: %v", e.URL, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

var errNoJobs = errors.New("payload has no jobs array")

type payload struct {
	Jobs *[]domain.Listing `json:"jobs"`
}

// Client performs the read-only request against the upstream feed.
type Client struct {
	URL       string
	UserAgent string
	hc        *http.Client
}

func NewClient(url string, timeout time.Duration, userAgent string) *Client {
	return NewClientWithHTTP(url, &http.Client{Timeout: timeout}, userAgent)
}

func NewClientWithHTTP(url string, hc *http.Client, userAgent string) *Client {
	return &Client{URL: url, UserAgent: userAgent, hc: hc}
}

// Fetch issues one GET and returns the listings in feed order. Any failure is
// a *FetchError.
func (c *Client) Fetch(ctx context.Context) ([]domain.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &FetchError{Stage: StageRequest, URL: c.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &FetchError{Stage: StageRequest, URL: c.URL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, &FetchError{
			Stage:      StageStatus,
			URL:        c.URL,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", res.Status),
		}
	}

	var p payload
	if err := json.NewDecoder(io.LimitReader(res.Body, maxFeedBytes)).Decode(&p); err != nil {
		return nil, &FetchError{Stage: StageDecode, URL: c.URL, StatusCode: res.StatusCode, Err: err}
	}
	if p.Jobs == nil {
		return nil, &FetchError{Stage: StageDecode, URL: c.URL, StatusCode: res.StatusCode, Err: errNoJobs}
	}
	return *p.Jobs, nil
}
