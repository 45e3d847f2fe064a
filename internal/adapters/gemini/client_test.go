package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

func TestClient_Generate(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		wantErr      bool
		wantText     string
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: `{"candidates":[{"content":{"parts":[{"text":"{\"cuisine\":\"Ramen\"}"}]}}]}`,
			wantErr:      false,
			wantText:     `{"cuisine":"Ramen"}`,
		},
		{
			name:         "Server error",
			status:       http.StatusInternalServerError,
			responseBody: `{"error":{"message":"boom"}}`,
			wantErr:      true,
		},
		{
			name:         "No candidates",
			status:       http.StatusOK,
			responseBody: `{"candidates":[]}`,
			wantErr:      true,
		},
		{
			name:         "Blank candidate text",
			status:       http.StatusOK,
			responseBody: `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest generateRequest
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if r.URL.Query().Get("key") == "" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-key")
			text, err := client.Generate(context.Background(), "test prompt")

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				if !errors.Is(err, ports.ErrModelUnavailable) {
					t.Fatalf("expected ErrModelUnavailable in chain, got %v", err)
				}
				return
			}
			if !strings.HasSuffix(gotPath, "gemini-1.5-pro:generateContent") {
				t.Fatalf("unexpected request path %q", gotPath)
			}
			if len(gotRequest.Contents) != 1 || len(gotRequest.Contents[0].Parts) != 1 {
				t.Fatalf("unexpected request shape: %+v", gotRequest)
			}
			if gotRequest.Contents[0].Parts[0].Text != "test prompt" {
				t.Fatalf("prompt mismatch: %q", gotRequest.Contents[0].Parts[0].Text)
			}
			if text != tt.wantText {
				t.Fatalf("text: got %q, want %q", text, tt.wantText)
			}
		})
	}
}
