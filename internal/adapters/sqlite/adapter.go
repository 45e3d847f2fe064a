// Package sqlite provides a SQLite-backed implementation of the
// repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the repository port for SQLite
type Adapter struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.Repository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
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
		"INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)",
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
		"SELECT id, email, password_hash FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (a *Adapter) UserByID(ctx context.Context, id string) (domain.User, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash FROM users WHERE id = ?", id)
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
	defer tx.Rollback() // Safety net: auto-rollback if we error before commit

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO mood_records (id, user_id, mood, cuisine, explanation) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.UserID, rec.Mood, rec.Cuisine, rec.Explanation,
	); err != nil {
		return fmt.Errorf("failed to save mood record: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (id, mood_record_id, title, youtube_link, spotify_link, preview_url)
		VALUES (?, ?, ?, ?, ?, ?)
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
		WHERE user_id = ?
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
			IFNULL(preview_seconds, 0)
		FROM songs
		WHERE mood_record_id = ?
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
		"UPDATE songs SET preview_seconds = ? WHERE id = ?", seconds, songID,
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
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS mood_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood TEXT NOT NULL,
		cuisine TEXT,
		explanation TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS songs (
		id TEXT PRIMARY KEY,
		mood_record_id TEXT NOT NULL,
		title TEXT,
		youtube_link TEXT,
		spotify_link TEXT,
		preview_url TEXT,
		preview_seconds REAL,
		FOREIGN KEY(mood_record_id) REFERENCES mood_records(id) ON DELETE CASCADE
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
