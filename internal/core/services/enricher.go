package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

const lookupTimeout = 10 * time.Second

// Enricher fills in catalog links for one suggested song. The two lookups
// are independent: a failure or timeout in one catalog degrades that link
// to empty and leaves the other untouched.
type Enricher struct {
	video ports.VideoCatalog
	music ports.MusicCatalog
}

// NewEnricher constructs an Enricher over the two catalog clients.
func NewEnricher(video ports.VideoCatalog, music ports.MusicCatalog) *Enricher {
	return &Enricher{video: video, music: music}
}

// Enrich merges catalog links into the suggestion. It never returns an
// error: absence of a link is represented by an empty field.
func (e *Enricher) Enrich(ctx context.Context, s domain.SongSuggestion) domain.EnrichedSong {
	song := domain.EnrichedSong{Title: s.FullTitle()}

	videoCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	link, err := e.video.FindVideoLink(videoCtx, s.Title)
	cancel()
	switch {
	case err == nil:
		song.YouTubeLink = link
	case !errors.Is(err, ports.ErrNoResult):
		log.Printf("WARN enricher: video lookup failed for %q: %v", s.Title, err)
	}

	musicCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	match, err := e.music.FindTrack(musicCtx, s.Title, s.Artist)
	cancel()
	switch {
	case err == nil:
		song.SpotifyLink = match.ExternalURL
		song.PreviewURL = match.PreviewURL
	case !errors.Is(err, ports.ErrNoResult):
		log.Printf("WARN enricher: music lookup failed for %q: %v", s.Title, err)
	}

	return song
}
