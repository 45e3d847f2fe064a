// Package postgres provides a PostgreSQL-backed implementation of the
// repository port, selected with STORAGE_DRIVER=postgres.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// Adapter implements the repository port for PostgreSQL
type Adapter struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.Repository = (*Adapter)(nil)

// NewAdapter opens a pooled connection and creates the schema if missing.
func NewAdapter(dsn string) (*Adapter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) CreateUser(ctx context.Context, u domain.User) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)",
		u.ID, u.Email, u.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (a *Adapter) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (a *Adapter) UserByID(ctx context.Context, id string) (domain.User, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash FROM users WHERE id = $1", id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// SaveMoodRecord writes the record and all its songs in one transaction.
func (a *Adapter) SaveMoodRecord(ctx context.Context, rec domain.MoodRecord) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO mood_records (id, user_id, mood, cuisine, explanation) VALUES ($1, $2, $3, $4, $5)",
		rec.ID, rec.UserID, rec.Mood, rec.Cuisine, rec.Explanation,
	); err != nil {
		return fmt.Errorf("failed to save mood record: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (id, mood_record_id, title, youtube_link, spotify_link, preview_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range rec.Songs {
		if _, err := stmt.ExecContext(ctx,
			s.ID, rec.ID, s.Title, s.YouTubeLink, s.SpotifyLink, s.PreviewURL,
		); err != nil {
			return fmt.Errorf("failed to save song %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}

func (a *Adapter) MoodRecordsByUser(ctx context.Context, userID string) ([]domain.MoodRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, user_id, mood, cuisine, explanation, created_at
		FROM mood_records
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}
	defer rows.Close()

	var records []domain.MoodRecord
	for rows.Next() {
		var rec domain.MoodRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Mood, &rec.Cuisine, &rec.Explanation, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mood records: %w", err)
	}

	for i := range records {
		songs, err := a.songsByRecord(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Songs = songs
	}

	return records, nil
}

func (a *Adapter) songsByRecord(ctx context.Context, recordID string) ([]domain.Song, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, mood_record_id, title, youtube_link, spotify_link, preview_url,
			COALESCE(preview_seconds, 0)
		FROM songs
		WHERE mood_record_id = $1
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}
	defer rows.Close()

	var songs []domain.Song
	for rows.Next() {
		var s domain.Song
		if err := rows.Scan(&s.ID, &s.MoodRecordID, &s.Title, &s.YouTubeLink, &s.SpotifyLink, &s.PreviewURL, &s.PreviewSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate songs: %w", err)
	}

	return songs, nil
}

func (a *Adapter) UpdateSongPreviewSeconds(ctx context.Context, songID string, seconds float64) error {
	if _, err := a.db.ExecContext(ctx,
		"UPDATE songs SET preview_seconds = $1 WHERE id = $2", seconds, songID,
	); err != nil {
		return fmt.Errorf("failed to update song preview: %w", err)
	}
	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS mood_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		mood TEXT NOT NULL,
		cuisine TEXT,
		explanation TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS songs (
		id TEXT PRIMARY KEY,
		mood_record_id TEXT NOT NULL REFERENCES mood_records(id) ON DELETE CASCADE,
		title TEXT,
		youtube_link TEXT,
		spotify_link TEXT,
		preview_url TEXT,
		preview_seconds DOUBLE PRECISION
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
