// Package reviews manages user reviews and their persistence.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Review represents one stored user review.
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Label     *string   `json:"label,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a review does not exist.
var ErrNotFound = errors.New("review not found")

// Store is the persistence interface for reviews.
type Store interface {
	Insert(ctx context.Context, name string, label *string, rating int, comment string) (string, error)
	Delete(ctx context.Context, id string) error
	ListNewestFirst(ctx context.Context) ([]Review, error)
}

// Repository handles all review database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores a new review and returns its generated id.
func (r *Repository) Insert(ctx context.Context, name string, label *string, rating int, comment string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO reviews (name, label, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, label, rating, comment,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert review: %w", err)
	}
	return id, nil
}

// Delete removes a review by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListNewestFirst returns all reviews ordered by creation time, newest first.
func (r *Repository) ListNewestFirst(ctx context.Context) ([]Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, label, rating, comment, created_at
		 FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var list []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.Label, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return list, nil
}
