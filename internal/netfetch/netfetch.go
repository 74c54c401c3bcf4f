// Package netfetch implements the network capabilities the backends consume:
// an HTTP fetch with bounded retry and a release-listing lookup.
package netfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrFetchFailed marks network or asset-resolution failures. Wrapped causes
// stay inspectable through errors.Is/As.
var ErrFetchFailed = errors.New("fetch failed")

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ReleaseAsset is one downloadable artifact published by a release.
type ReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// ReleaseLister resolves the latest published release for a repository.
type ReleaseLister interface {
	LatestRelease(ctx context.Context, owner, repo string) ([]ReleaseAsset, error)
}

const (
	defaultUserAgent = "toolkeep/1.0"
	defaultRetries   = 2
	defaultBackoff   = 500 * time.Millisecond
	defaultTimeout   = 30 * time.Second
)

// Client is the production Fetcher and ReleaseLister. Retry is bounded and
// entirely this client's concern; callers never retry on top of it.
type Client struct {
	HTTPClient *http.Client
	APIBase    string
	UserAgent  string
	Retries    int
	Backoff    time.Duration
}

// NewClient returns a client with GitHub's release API as the listing source.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		APIBase:    "https://api.github.com",
		UserAgent:  defaultUserAgent,
		Retries:    defaultRetries,
		Backoff:    defaultBackoff,
	}
}

// Fetch downloads url, retrying transient failures (transport errors and 5xx
// responses) up to the configured retry budget. Client errors are surfaced
// immediately.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	attempts := c.Retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, url, ctx.Err())
			case <-time.After(c.Backoff):
			}
		}

		body, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, url, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("unexpected status %s", resp.Status)
	default:
		return nil, false, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}

type releasePayload struct {
	TagName string         `json:"tag_name"`
	Assets  []ReleaseAsset `json:"assets"`
}

// LatestRelease queries the release API for the newest published release and
// returns its assets.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) ([]ReleaseAsset, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.APIBase, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s/%s releases: %v", ErrFetchFailed, owner, repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: release query for %s/%s: %s", ErrFetchFailed, owner, repo, resp.Status)
	}

	var release releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("%w: decode release for %s/%s: %v", ErrFetchFailed, owner, repo, err)
	}
	return release.Assets, nil
}
