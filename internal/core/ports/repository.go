package ports

import (
	"context"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
)

// Repository persists users and their recommendation history.
type Repository interface {
	CreateUser(ctx context.Context, u domain.User) error
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UserByID(ctx context.Context, id string) (domain.User, error)

	// SaveMoodRecord writes the record and its songs atomically.
	SaveMoodRecord(ctx context.Context, rec domain.MoodRecord) error
	MoodRecordsByUser(ctx context.Context, userID string) ([]domain.MoodRecord, error)
	UpdateSongPreviewSeconds(ctx context.Context, songID string, seconds float64) error
}
