package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
)

// ParseError reports model output that did not match the mandated JSON
// shape. RawText keeps the full model text for diagnosis.
type ParseError struct {
	RawText string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ModelRecommendation is the validated parser output, before enrichment.
type ModelRecommendation struct {
	Cuisine     string
	Songs       []domain.SongSuggestion
	Explanation string
}

// modelResponse mirrors the JSON object the prompt mandates. Pointer
// fields distinguish a missing key from a present-but-empty value.
type modelResponse struct {
	Cuisine *string `json:"cuisine"`
	Songs   []struct {
		Title string `json:"title"`
	} `json:"songs"`
	Explanation *string `json:"explanation"`
}

// ExtractJSONPayload strips a Markdown code fence wrapped around a JSON
// payload. Zero fences returns the trimmed input, a matched pair returns
// the inner text, and an opening fence without a closing one returns
// everything after the opening fence line.
func ExtractJSONPayload(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx != -1 {
		// drop the rest of the fence line, e.g. a "json" language tag
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	if idx := strings.LastIndex(text, "```"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// ParseRecommendation parses possibly-fenced model text into a
// ModelRecommendation. Each song title is split on the first " - "; a
// title without a separator keeps an empty artist and enrichment proceeds
// title-only. Malformed JSON or missing required keys yield a *ParseError
// value so the caller can still render a response.
func ParseRecommendation(raw string) (ModelRecommendation, error) {
	payload := ExtractJSONPayload(raw)

	var resp modelResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return ModelRecommendation{}, &ParseError{RawText: raw, Cause: err}
	}
	if resp.Cuisine == nil || resp.Songs == nil || resp.Explanation == nil {
		return ModelRecommendation{}, &ParseError{RawText: raw, Cause: missingKeysError(resp)}
	}

	out := ModelRecommendation{
		Cuisine:     *resp.Cuisine,
		Explanation: *resp.Explanation,
		Songs:       make([]domain.SongSuggestion, 0, len(resp.Songs)),
	}
	for _, s := range resp.Songs {
		out.Songs = append(out.Songs, domain.SplitSongTitle(s.Title))
	}
	return out, nil
}

func missingKeysError(resp modelResponse) error {
	missing := make([]string, 0, 3)
	if resp.Cuisine == nil {
		missing = append(missing, "cuisine")
	}
	if resp.Songs == nil {
		missing = append(missing, "songs")
	}
	if resp.Explanation == nil {
		missing = append(missing, "explanation")
	}
	return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
}
