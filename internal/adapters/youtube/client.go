// Package youtube provides the video-catalog adapter backed by the
// YouTube Data API v3 search endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	watchURLFormat = "https://www.youtube.com/watch?v=%s"
)

// Client is an HTTP client for the YouTube search API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.VideoCatalog = (*Client)(nil)

// NewClient constructs a YouTube client. An empty baseURL selects the
// public endpoint; tests pass an httptest server URL.
func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FindVideoLink searches for "{title} official music video" and formats
// the first result's video id as a watch URL. No results map to
// ports.ErrNoResult.
func (c *Client) FindVideoLink(ctx context.Context, songTitle string) (string, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return "", fmt.Errorf("youtube adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("part", "snippet")
	query.Set("q", fmt.Sprintf("%s official music video", songTitle))
	query.Set("key", c.apiKey)
	query.Set("maxResults", "1")
	query.Set("type", "video")
	query.Set("videoEmbeddable", "true")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("youtube adapter: failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("youtube adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube adapter: search status %d", resp.StatusCode)
	}

	var searchBody struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchBody); err != nil {
		return "", fmt.Errorf("youtube adapter: search decode error: %w", err)
	}

	if len(searchBody.Items) == 0 || searchBody.Items[0].ID.VideoID == "" {
		return "", ports.ErrNoResult
	}

	return fmt.Sprintf(watchURLFormat, searchBody.Items[0].ID.VideoID), nil
}
