// Package assets manages the site-wide asset configuration: which storage
// object each slot (logo, background, audio) points at, the per-slot version
// counters clients poll to detect changes, and the showcase gallery.
package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BackgroundType enumerates what the background slot renders.
type BackgroundType string

// Background slot types.
const (
	BackgroundColor BackgroundType = "color"
	BackgroundImage BackgroundType = "image"
	BackgroundVideo BackgroundType = "video"
)

// DefaultBackgroundColor is what clients render before anything is configured.
const DefaultBackgroundColor = "#000000"

// ConfigRecord is the singleton configuration row. Every *Version counter is
// non-decreasing and moves by exactly 1 per successful commit to its slot.
// BackgroundType == color implies BackgroundPath is nil; image and video
// imply it is set.
type ConfigRecord struct {
	BackgroundVersion int
	BackgroundType    BackgroundType
	BackgroundPath    *string
	BackgroundColor   string
	LogoVersion       int
	LogoPath          *string
	AudioVersion      int
	AudioPath         *string
	ReviewsVersion    int
	UpdatedAt         time.Time
}

// ConfigStore owns all mutation of the configuration record. Each Set method
// swaps the slot value and bumps its version in one atomic statement, so
// concurrent commits to the same slot serialize without lost updates.
type ConfigStore interface {
	GetOrCreate(ctx context.Context) (*ConfigRecord, error)
	SetLogo(ctx context.Context, path string) (*ConfigRecord, error)
	SetAudio(ctx context.Context, path string) (*ConfigRecord, error)
	SetBackgroundMedia(ctx context.Context, kind BackgroundType, path string) (*ConfigRecord, error)
	SetBackgroundColor(ctx context.Context, color string) (*ConfigRecord, error)
	BumpReviews(ctx context.Context) (int, error)
}

const configID = 1

const configColumns = `background_version, background_type, background_path, background_color,
	 logo_version, logo_path, audio_version, audio_path, reviews_version, updated_at`

// Repository is the Postgres-backed ConfigStore.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the configuration record, inserting the defaults row
// on first read. Concurrent first reads race on the insert; ON CONFLICT DO
// NOTHING plus the re-read resolves that to exactly one surviving row.
func (r *Repository) GetOrCreate(ctx context.Context) (*ConfigRecord, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO app_config (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
		configID,
	)
	if err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}

	rec, err := r.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return rec, nil
}

// SetLogo swaps the logo path and bumps its version atomically.
func (r *Repository) SetLogo(ctx context.Context, path string) (*ConfigRecord, error) {
	return r.patch(ctx,
		`UPDATE app_config
		 SET logo_version = logo_version + 1, logo_path = $2, updated_at = now()
		 WHERE id = $1`,
		path)
}

// SetAudio swaps the audio path and bumps its version atomically.
func (r *Repository) SetAudio(ctx context.Context, path string) (*ConfigRecord, error) {
	return r.patch(ctx,
		`UPDATE app_config
		 SET audio_version = audio_version + 1, audio_path = $2, updated_at = now()
		 WHERE id = $1`,
		path)
}

// SetBackgroundMedia switches the background to an image or video path,
// bumping the version in the same statement.
func (r *Repository) SetBackgroundMedia(ctx context.Context, kind BackgroundType, path string) (*ConfigRecord, error) {
	return r.patch(ctx,
		`UPDATE app_config
		 SET background_version = background_version + 1,
		     background_type = $2, background_path = $3, updated_at = now()
		 WHERE id = $1`,
		string(kind), path)
}

// SetBackgroundColor switches the background to a literal color. The stored
// path is cleared in the same statement so the type/path invariant holds.
func (r *Repository) SetBackgroundColor(ctx context.Context, color string) (*ConfigRecord, error) {
	return r.patch(ctx,
		`UPDATE app_config
		 SET background_version = background_version + 1,
		     background_type = 'color', background_color = $2,
		     background_path = NULL, updated_at = now()
		 WHERE id = $1`,
		color)
}

// BumpReviews increments the reviews cache-bust counter and returns the new
// version. A bare UPDATE matches nothing before the singleton row exists, so
// this upserts: the first bump on a fresh database creates the row at
// version 1.
func (r *Repository) BumpReviews(ctx context.Context) (int, error) {
	var version int
	err := r.db.QueryRow(ctx,
		`INSERT INTO app_config (id, reviews_version) VALUES ($1, 1)
		 ON CONFLICT (id) DO UPDATE
		 SET reviews_version = app_config.reviews_version + 1, updated_at = now()
		 RETURNING reviews_version`,
		configID,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("bump reviews version: %w", err)
	}
	return version, nil
}

// ReviewsVersion returns the current reviews version, creating the record
// on first read like every other read path.
func (r *Repository) ReviewsVersion(ctx context.Context) (int, error) {
	rec, err := r.GetOrCreate(ctx)
	if err != nil {
		return 0, err
	}
	return rec.ReviewsVersion, nil
}

func (r *Repository) get(ctx context.Context) (*ConfigRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+configColumns+` FROM app_config WHERE id = $1`, configID)
	return scanRecord(row)
}

// patch runs a single-statement atomic update and returns the full record.
// RETURNING keeps the read in the same statement as the bump, so the caller
// never observes a version without its matching value.
func (r *Repository) patch(ctx context.Context, sql string, args ...any) (*ConfigRecord, error) {
	allArgs := append([]any{configID}, args...)
	row := r.db.QueryRow(ctx, sql+` RETURNING `+configColumns, allArgs...)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("patch config: %w", err)
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (*ConfigRecord, error) {
	rec := &ConfigRecord{}
	err := row.Scan(
		&rec.BackgroundVersion, &rec.BackgroundType, &rec.BackgroundPath, &rec.BackgroundColor,
		&rec.LogoVersion, &rec.LogoPath, &rec.AudioVersion, &rec.AudioPath,
		&rec.ReviewsVersion, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
