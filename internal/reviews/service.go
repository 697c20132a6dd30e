package reviews

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput marks review writes rejected by validation.
var ErrInvalidInput = errors.New("invalid input")

// VersionBumper increments the reviews cache-bust counter after every
// successful insert or delete, so clients can detect changes without
// comparing the full list.
type VersionBumper interface {
	BumpReviews(ctx context.Context) (int, error)
}

// VersionReader exposes the current reviews version for the read path.
type VersionReader interface {
	ReviewsVersion(ctx context.Context) (int, error)
}

// Service contains business logic for review management.
type Service struct {
	repo    Store
	bumper  VersionBumper
	version VersionReader
}

// NewService creates a new reviews Service.
func NewService(repo Store, bumper VersionBumper, version VersionReader) *Service {
	return &Service{repo: repo, bumper: bumper, version: version}
}

// AddResult is returned by a successful Add.
type AddResult struct {
	Version  int
	ReviewID string
}

// Add validates and stores a review, then bumps the reviews version.
// Name and comment must be non-empty after trimming; rating is rounded and
// clamped into [1, 5].
func (s *Service) Add(ctx context.Context, name, label string, rating float64, comment string) (*AddResult, error) {
	name = strings.TrimSpace(name)
	comment = strings.TrimSpace(comment)
	if name == "" || comment == "" {
		return nil, fmt.Errorf("%w: name and comment are required", ErrInvalidInput)
	}

	var labelPtr *string
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		labelPtr = &trimmed
	}

	id, err := s.repo.Insert(ctx, name, labelPtr, clampRating(rating), comment)
	if err != nil {
		return nil, err
	}

	version, err := s.bumper.BumpReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("review %s stored, version bump failed: %w", id, err)
	}
	return &AddResult{Version: version, ReviewID: id}, nil
}

// Remove deletes a review and bumps the reviews version. Deleting an absent
// review is not an error; the version still bumps so cached lists refresh.
func (s *Service) Remove(ctx context.Context, id string) (int, error) {
	if strings.TrimSpace(id) == "" {
		return 0, fmt.Errorf("%w: reviewId is required", ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	version, err := s.bumper.BumpReviews(ctx)
	if err != nil {
		return 0, fmt.Errorf("bump reviews version: %w", err)
	}
	return version, nil
}

// ListResult pairs the stored reviews with the current version counter.
type ListResult struct {
	Version int
	Reviews []Review
}

// List returns all reviews newest-first together with the version counter.
func (s *Service) List(ctx context.Context) (*ListResult, error) {
	version, err := s.version.ReviewsVersion(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Review{}
	}
	return &ListResult{Version: version, Reviews: list}, nil
}

// clampRating rounds the rating and clamps it into [1, 5]. Non-finite input
// defaults to 5, matching the permissive write path for ratings.
func clampRating(rating float64) int {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 5
	}
	r := int(math.Round(rating))
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}
