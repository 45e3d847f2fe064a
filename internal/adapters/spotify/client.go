// Package spotify provides the music-catalog adapter backed by the
// Spotify Web API. Authentication uses the client-credentials flow; the
// token source refreshes itself and is safe for concurrent use.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.MusicCatalog = (*Client)(nil)

// NewClient constructs a Spotify client with the client-credentials flow.
func NewClient(clientID, clientSecret string) *Client {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     defaultTokenURL,
	}
	httpClient := cfg.Client(context.Background())
	httpClient.Timeout = 10 * time.Second

	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithHTTP constructs a client against a custom transport and
// base URL, bypassing authentication. Used by tests.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FindTrack searches with a structured title+artist filter and returns the
// first match's external and preview links. An empty result set maps to
// ports.ErrNoResult.
func (c *Client) FindTrack(ctx context.Context, title, artist string) (ports.TrackMatch, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return ports.TrackMatch{}, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", title, artist))
	query.Set("type", "track")
	query.Set("limit", "1")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return ports.TrackMatch{}, fmt.Errorf("spotify adapter: failed to create search request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return ports.TrackMatch{}, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.TrackMatch{}, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	var searchBody struct {
		Tracks struct {
			Items []spotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchBody); err != nil {
		return ports.TrackMatch{}, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	if len(searchBody.Tracks.Items) == 0 {
		return ports.TrackMatch{}, ports.ErrNoResult
	}

	track := searchBody.Tracks.Items[0]
	return ports.TrackMatch{
		ExternalURL: track.ExternalURLs.Spotify,
		PreviewURL:  track.PreviewURL,
	}, nil
}
