package ports

import (
	"context"
	"errors"
)

// ErrNoResult indicates a catalog search matched nothing. Callers treat it
// as "no link found", not as a failure.
var ErrNoResult = errors.New("no result")

// VideoCatalog resolves a song title to a streaming video link.
type VideoCatalog interface {
	FindVideoLink(ctx context.Context, songTitle string) (string, error)
}

// TrackMatch is a music-catalog hit for a title+artist query. Either field
// may be empty when the catalog entry lacks it.
type TrackMatch struct {
	ExternalURL string
	PreviewURL  string
}

// MusicCatalog looks up a track by a structured title+artist filter.
type MusicCatalog interface {
	FindTrack(ctx context.Context, title, artist string) (TrackMatch, error)
}
