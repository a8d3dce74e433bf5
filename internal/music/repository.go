package music

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"log/slog"

	"lyricbot/core/logger"
)

var (
	// ErrNotFound is returned when no track matches the lookup.
	ErrNotFound = errors.New("music: track not found")
	// ErrShortCodeExhausted is returned when short code generation keeps
	// colliding with stored codes.
	ErrShortCodeExhausted = errors.New("music: short code attempts exhausted")
)

const shortCodeMaxAttempts = 5

// pqUniqueViolation is the Postgres error code for unique constraint breaches.
const pqUniqueViolation = "23505"

// Repository provides sqlx-backed access to tracks and channel posts.
type Repository struct {
	db    *sqlx.DB
	codes *ShortCodeGenerator
}

// NewRepository constructs a Repository over db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, codes: NewShortCodeGenerator()}
}

// Create inserts a new track, generating its short code. Collisions with the
// unique constraint regenerate the code, up to a bounded attempt count.
func (r *Repository) Create(ctx context.Context, t *Track) error {
	const q = `
		INSERT INTO musics (file_id, file_unique_id, title, artist, lyrics, short_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	for attempt := 1; attempt <= shortCodeMaxAttempts; attempt++ {
		code := r.codes.Generate()
		err := r.db.QueryRowxContext(ctx, q,
			t.FileID, t.FileUniqueID, t.Title, t.Artist, t.Lyrics, code,
		).Scan(&t.ID, &t.CreatedAt)
		if err == nil {
			t.ShortCode = code
			return nil
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			logger.SVCTracks.Warn("short code collision",
				slog.String("event", "shortcode.collision"),
				slog.String("short_code", code),
				slog.Int("attempts", attempt),
			)
			continue
		}
		return fmt.Errorf("music: insert track: %w", err)
	}
	return ErrShortCodeExhausted
}

// GetByID fetches a track by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Track, error) {
	var t Track
	const q = `SELECT * FROM musics WHERE id = $1`
	if err := r.db.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("music: get track %d: %w", id, err)
	}
	return &t, nil
}

// GetByShortCode fetches a track by its deep-link short code.
func (r *Repository) GetByShortCode(ctx context.Context, code string) (*Track, error) {
	var t Track
	const q = `SELECT * FROM musics WHERE short_code = $1`
	if err := r.db.GetContext(ctx, &t, q, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("music: get track by code %q: %w", code, err)
	}
	return &t, nil
}

// UpdateLyrics replaces the track's lyrics.
func (r *Repository) UpdateLyrics(ctx context.Context, id int64, lyrics string) error {
	return r.exec(ctx, `UPDATE musics SET lyrics = $2 WHERE id = $1`, id, lyrics)
}

// UpdateTitle replaces the track's title.
func (r *Repository) UpdateTitle(ctx context.Context, id int64, title string) error {
	return r.exec(ctx, `UPDATE musics SET title = $2 WHERE id = $1`, id, title)
}

// UpdateArtist replaces the track's artist.
func (r *Repository) UpdateArtist(ctx context.Context, id int64, artist string) error {
	return r.exec(ctx, `UPDATE musics SET artist = $2 WHERE id = $1`, id, artist)
}

// UpdateFile replaces the stored audio identifiers and, when the new file
// carries metadata, its title and artist.
func (r *Repository) UpdateFile(ctx context.Context, id int64, fileID, fileUniqueID, title, artist string) error {
	const q = `
		UPDATE musics
		SET file_id = $2,
		    file_unique_id = $3,
		    title = COALESCE(NULLIF($4, ''), title),
		    artist = COALESCE(NULLIF($5, ''), artist)
		WHERE id = $1`
	return r.exec(ctx, q, id, fileID, fileUniqueID, title, artist)
}

// Delete removes a track.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM musics WHERE id = $1`, id)
}

func (r *Repository) exec(ctx context.Context, q string, id int64, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("music: update track %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("music: update track %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of stored tracks.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM musics`); err != nil {
		return 0, fmt.Errorf("music: count tracks: %w", err)
	}
	return n, nil
}

// List returns one page of tracks, newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Track, error) {
	var tracks []Track
	const q = `SELECT * FROM musics ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &tracks, q, limit, offset); err != nil {
		return nil, fmt.Errorf("music: list tracks: %w", err)
	}
	return tracks, nil
}

// AddPost records a successful channel publication of a track.
func (r *Repository) AddPost(ctx context.Context, p *ChannelPost) error {
	const q = `
		INSERT INTO channel_posts (music_id, channel_id, message_id)
		VALUES ($1, $2, $3)
		RETURNING id, posted_at`
	if err := r.db.QueryRowxContext(ctx, q, p.MusicID, p.ChannelID, p.MessageID).Scan(&p.ID, &p.PostedAt); err != nil {
		return fmt.Errorf("music: add channel post: %w", err)
	}
	return nil
}

// LatestPost returns the most recent channel post for a track, or ErrNotFound.
func (r *Repository) LatestPost(ctx context.Context, musicID int64) (*ChannelPost, error) {
	var p ChannelPost
	const q = `
		SELECT * FROM channel_posts
		WHERE music_id = $1
		ORDER BY posted_at DESC, id DESC
		LIMIT 1`
	if err := r.db.GetContext(ctx, &p, q, musicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("music: latest post for %d: %w", musicID, err)
	}
	return &p, nil
}
