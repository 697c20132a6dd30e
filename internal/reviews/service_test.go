package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps reviews in memory in insertion order.
type memStore struct {
	reviews   []Review
	insertErr error
}

func (m *memStore) Insert(ctx context.Context, name string, label *string, rating int, comment string) (string, error) {
	if m.insertErr != nil {
		return "", m.insertErr
	}
	rv := Review{
		ID:        uuid.NewString(),
		Name:      name,
		Label:     label,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	m.reviews = append(m.reviews, rv)
	return rv.ID, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	for i, rv := range m.reviews {
		if rv.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) ListNewestFirst(ctx context.Context) ([]Review, error) {
	out := make([]Review, 0, len(m.reviews))
	for i := len(m.reviews) - 1; i >= 0; i-- {
		out = append(out, m.reviews[i])
	}
	return out, nil
}

// memVersions counts bumps the way the singleton config row does. The row
// starts absent, and only a bump (an upsert in the real store) materializes
// it — a fake that pre-creates the row would hide bump-before-create bugs.
type memVersions struct {
	exists  bool
	version int
	bumpErr error
}

func (m *memVersions) BumpReviews(ctx context.Context) (int, error) {
	if m.bumpErr != nil {
		return 0, m.bumpErr
	}
	if !m.exists {
		m.exists = true
		m.version = 1
		return m.version, nil
	}
	m.version++
	return m.version, nil
}

func (m *memVersions) ReviewsVersion(ctx context.Context) (int, error) {
	if !m.exists {
		return 0, nil
	}
	return m.version, nil
}

func newTestReviews() (*Service, *memStore, *memVersions) {
	store := &memStore{}
	versions := &memVersions{}
	return NewService(store, versions, versions), store, versions
}

func TestAddReview(t *testing.T) {
	svc, store, _ := newTestReviews()

	res, err := svc.Add(context.Background(), "Ada", "Verified buyer", 5, "Great!")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Version)
	assert.NotEmpty(t, res.ReviewID)

	require.Len(t, store.reviews, 1)
	assert.Equal(t, "Ada", store.reviews[0].Name)
	require.NotNil(t, store.reviews[0].Label)
	assert.Equal(t, "Verified buyer", *store.reviews[0].Label)
}

func TestFirstReviewOnFreshDeployment(t *testing.T) {
	// Nothing has touched the config row yet: the bump itself must create
	// it, not assume a prior read did.
	svc, store, versions := newTestReviews()

	res, err := svc.Add(context.Background(), "Ada", "", 5, "first ever")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Version)
	assert.True(t, versions.exists)
	require.Len(t, store.reviews, 1)

	res, err = svc.Add(context.Background(), "Grace", "", 4, "second")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)
}

func TestAddReviewTrimsAndValidates(t *testing.T) {
	svc, store, _ := newTestReviews()
	ctx := context.Background()

	_, err := svc.Add(ctx, "  ", "", 3, "any comment")
	assert.ErrorIs(t, err, ErrInvalidInput, "whitespace-only name is rejected")

	_, err = svc.Add(ctx, "Ada", "", 3, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput, "whitespace-only comment is rejected")

	assert.Empty(t, store.reviews)

	res, err := svc.Add(ctx, "  Ada  ", "   ", 3, "  fine  ")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Version)
	assert.Equal(t, "Ada", store.reviews[0].Name)
	assert.Equal(t, "fine", store.reviews[0].Comment)
	assert.Nil(t, store.reviews[0].Label, "blank label stores as null")
}

func TestAddReviewClampsRating(t *testing.T) {
	svc, store, _ := newTestReviews()
	ctx := context.Background()

	tests := []struct {
		rating float64
		want   int
	}{
		{7, 5},
		{0, 1},
		{-3, 1},
		{3.6, 4},
		{2.4, 2},
		{5, 5},
	}
	for _, tt := range tests {
		_, err := svc.Add(ctx, "Ada", "", tt.rating, "Great!")
		require.NoError(t, err)
		assert.Equal(t, tt.want, store.reviews[len(store.reviews)-1].Rating, "rating %v", tt.rating)
	}
}

func TestRemoveReviewBumpsVersion(t *testing.T) {
	svc, store, versions := newTestReviews()
	ctx := context.Background()

	res, err := svc.Add(ctx, "Ada", "", 4, "Great!")
	require.NoError(t, err)

	version, err := svc.Remove(ctx, res.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.Empty(t, store.reviews)
	assert.Equal(t, 2, versions.version)
}

func TestRemoveAbsentReviewStillBumps(t *testing.T) {
	svc, _, versions := newTestReviews()

	version, err := svc.Remove(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, 1, versions.version)
}

func TestRemoveRequiresID(t *testing.T) {
	svc, _, _ := newTestReviews()

	_, err := svc.Remove(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListPairsVersionWithReviews(t *testing.T) {
	svc, _, _ := newTestReviews()
	ctx := context.Background()

	res, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Version)
	assert.NotNil(t, res.Reviews)
	assert.Empty(t, res.Reviews)

	_, err = svc.Add(ctx, "Ada", "", 5, "first")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Grace", "", 4, "second")
	require.NoError(t, err)

	res, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)
	require.Len(t, res.Reviews, 2)
	assert.Equal(t, "Grace", res.Reviews[0].Name, "newest first")
}

func TestAddReviewPropagatesInsertFailure(t *testing.T) {
	svc, store, versions := newTestReviews()
	store.insertErr = errors.New("connection reset")

	_, err := svc.Add(context.Background(), "Ada", "", 5, "Great!")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, versions.version, "failed insert must not bump the version")
}
