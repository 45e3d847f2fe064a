package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("domain: not found")
	ErrDuplicateEmail = errors.New("domain: email already exists")
)

// User is a registered account. Only the bcrypt hash of the password is
// ever stored.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// MoodRecord is one saved recommendation. Records are append-only: a
// record and its songs are created together and never updated afterwards.
type MoodRecord struct {
	ID          string
	UserID      string
	Mood        string
	Cuisine     string
	Explanation string
	CreatedAt   time.Time
	Songs       []Song
}

// Song is a persisted child of a MoodRecord. PreviewSeconds is filled in
// later by the background preview analyzer and starts at zero.
type Song struct {
	ID             string
	MoodRecordID   string
	Title          string
	YouTubeLink    string
	SpotifyLink    string
	PreviewURL     string
	PreviewSeconds float64
}

// NewMoodRecord builds a history record from one computed recommendation.
// IDs are assigned here; CreatedAt is left to the store.
func NewMoodRecord(userID, mood string, result RecommendationResult) MoodRecord {
	record := MoodRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Mood:        mood,
		Cuisine:     result.Cuisine,
		Explanation: result.Explanation,
	}
	for _, s := range result.Songs {
		record.Songs = append(record.Songs, Song{
			ID:           uuid.NewString(),
			MoodRecordID: record.ID,
			Title:        s.Title,
			YouTubeLink:  s.YouTubeLink,
			SpotifyLink:  s.SpotifyLink,
			PreviewURL:   s.PreviewURL,
		})
	}
	return record
}
