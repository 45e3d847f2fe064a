package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

const searchResponse = `{
	"tracks": {
		"items": [
			{
				"name": "Song One",
				"preview_url": "https://p.scdn.co/mp3-preview/one",
				"external_urls": {"spotify": "https://open.spotify.com/track/one"},
				"artists": [{"name": "Artist One"}]
			}
		]
	}
}`

func TestClient_FindTrack(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(nil, srv.URL)
	match, err := client.FindTrack(context.Background(), "Song One", "Artist One")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if match.ExternalURL != "https://open.spotify.com/track/one" {
		t.Fatalf("external url: got %q", match.ExternalURL)
	}
	if match.PreviewURL != "https://p.scdn.co/mp3-preview/one" {
		t.Fatalf("preview url: got %q", match.PreviewURL)
	}

	if gotQuery.Get("q") != "track:Song One artist:Artist One" {
		t.Fatalf("query: got %q", gotQuery.Get("q"))
	}
	if gotQuery.Get("type") != "track" || gotQuery.Get("limit") != "1" {
		t.Fatalf("unexpected search params: %v", gotQuery)
	}
}

func TestClient_FindTrack_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(nil, srv.URL)
	_, err := client.FindTrack(context.Background(), "Unknown Song", "Nobody")
	if !errors.Is(err, ports.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestDoRequestWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		responses  []int
		wantCalls  int32
		wantStatus int
		wantErr    bool
	}{
		{
			name:       "succeeds first attempt",
			maxRetries: 3,
			responses:  []int{http.StatusOK},
			wantCalls:  1,
			wantStatus: http.StatusOK,
		},
		{
			name:       "retries 503 then succeeds",
			maxRetries: 3,
			responses:  []int{http.StatusServiceUnavailable, http.StatusOK},
			wantCalls:  2,
			wantStatus: http.StatusOK,
		},
		{
			name:       "retries rate limit then succeeds",
			maxRetries: 3,
			responses:  []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK},
			wantCalls:  3,
			wantStatus: http.StatusOK,
		},
		{
			name:       "exhausts retries",
			maxRetries: 2,
			responses:  []int{http.StatusInternalServerError, http.StatusInternalServerError},
			wantCalls:  2,
			wantErr:    true,
		},
		{
			name:       "does not retry client errors",
			maxRetries: 3,
			responses:  []int{http.StatusBadRequest},
			wantCalls:  1,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				idx := int(n) - 1
				if idx >= len(tt.responses) {
					idx = len(tt.responses) - 1
				}
				w.WriteHeader(tt.responses[idx])
			}))
			defer srv.Close()

			client := &Client{
				httpClient:  http.DefaultClient,
				baseURL:     srv.URL,
				maxRetries:  tt.maxRetries,
				baseBackoff: time.Millisecond,
			}

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
			if err != nil {
				t.Fatalf("build request: %v", err)
			}

			resp, err := client.doRequestWithRetry(req)
			if resp != nil {
				resp.Body.Close()
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if resp.StatusCode != tt.wantStatus {
					t.Fatalf("status: got %d, want %d", resp.StatusCode, tt.wantStatus)
				}
			}

			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Fatalf("calls: got %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestDoRequestWithRetry_HonorsRetryAfter(t *testing.T) {
	var calls int32
	var secondAttempt time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		secondAttempt = time.Now()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &Client{
		httpClient:  http.DefaultClient,
		baseURL:     srv.URL,
		maxRetries:  3,
		baseBackoff: time.Millisecond,
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	start := time.Now()
	resp, err := client.doRequestWithRetry(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if waited := secondAttempt.Sub(start); waited < 900*time.Millisecond {
		t.Fatalf("retry fired after %v, expected Retry-After of ~1s to be honored", waited)
	}
}

func TestDoRequestWithRetry_CancelDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &Client{
		httpClient:  http.DefaultClient,
		baseURL:     srv.URL,
		maxRetries:  3,
		baseBackoff: 5 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	start := time.Now()
	_, err = client.doRequestWithRetry(req)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation took %v, backoff was not interrupted", elapsed)
	}
}
