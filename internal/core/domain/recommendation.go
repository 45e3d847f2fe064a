package domain

import "strings"

// RecommendationRequest is the transient input to the recommendation
// pipeline. It is never persisted.
type RecommendationRequest struct {
	Mood string
	Hour int
}

// SongSuggestion is a single song the model suggested, before enrichment.
// Artist is empty when the model's title carried no " - " separator.
type SongSuggestion struct {
	Title  string
	Artist string
}

// SplitSongTitle splits a model-suggested "Title - Artist" string on the
// first " - " separator. Without a separator the whole string becomes the
// title and the artist stays empty.
func SplitSongTitle(full string) SongSuggestion {
	title, artist, found := strings.Cut(full, " - ")
	if !found {
		return SongSuggestion{Title: full}
	}
	return SongSuggestion{Title: title, Artist: artist}
}

// FullTitle reassembles the original "Title - Artist" string the model
// returned.
func (s SongSuggestion) FullTitle() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Title + " - " + s.Artist
}

// EnrichedSong is a suggestion with catalog links merged in. An empty link
// field means "not found", never an error.
type EnrichedSong struct {
	Title       string `json:"title"`
	YouTubeLink string `json:"youtubeLink"`
	SpotifyLink string `json:"spotifyLink"`
	PreviewURL  string `json:"previewUrl"`
}

// RecommendationResult is the assembled output of one request. Songs keep
// the order the model returned them in; partial catalog failures fill
// fields with empty values instead of dropping or reordering entries.
type RecommendationResult struct {
	Cuisine     string         `json:"cuisine"`
	Songs       []EnrichedSong `json:"songs"`
	Explanation string         `json:"explanation"`
}
