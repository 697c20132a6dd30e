package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/service/internal/storage"
)

// memConfigStore mimics the database's semantics in memory: only GetOrCreate
// and BumpReviews materialize the record, every Set mutates under a lock the
// way a single UPDATE statement serializes concurrent commits, and a Set
// against an absent record fails the way a bare UPDATE matches zero rows.
type memConfigStore struct {
	mu       sync.Mutex
	rec      *ConfigRecord
	failure  error
	creates  int
	patchErr error
}

// errNoConfigRow mirrors pgx.ErrNoRows on an UPDATE ... RETURNING that
// matched nothing.
var errNoConfigRow = errors.New("no config row")

func (m *memConfigStore) ensureLocked() {
	if m.rec == nil {
		m.creates++
		m.rec = &ConfigRecord{
			BackgroundType:  BackgroundColor,
			BackgroundColor: DefaultBackgroundColor,
			UpdatedAt:       time.Now(),
		}
	}
}

func (m *memConfigStore) snapshotLocked() *ConfigRecord {
	cp := *m.rec
	if m.rec.BackgroundPath != nil {
		p := *m.rec.BackgroundPath
		cp.BackgroundPath = &p
	}
	if m.rec.LogoPath != nil {
		p := *m.rec.LogoPath
		cp.LogoPath = &p
	}
	if m.rec.AudioPath != nil {
		p := *m.rec.AudioPath
		cp.AudioPath = &p
	}
	return &cp
}

func (m *memConfigStore) GetOrCreate(ctx context.Context) (*ConfigRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	m.ensureLocked()
	return m.snapshotLocked(), nil
}

func (m *memConfigStore) patch(mutate func(*ConfigRecord)) (*ConfigRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	if m.rec == nil {
		return nil, errNoConfigRow
	}
	mutate(m.rec)
	m.rec.UpdatedAt = time.Now()
	return m.snapshotLocked(), nil
}

func (m *memConfigStore) SetLogo(ctx context.Context, path string) (*ConfigRecord, error) {
	return m.patch(func(rec *ConfigRecord) {
		rec.LogoVersion++
		rec.LogoPath = &path
	})
}

func (m *memConfigStore) SetAudio(ctx context.Context, path string) (*ConfigRecord, error) {
	return m.patch(func(rec *ConfigRecord) {
		rec.AudioVersion++
		rec.AudioPath = &path
	})
}

func (m *memConfigStore) SetBackgroundMedia(ctx context.Context, kind BackgroundType, path string) (*ConfigRecord, error) {
	return m.patch(func(rec *ConfigRecord) {
		rec.BackgroundVersion++
		rec.BackgroundType = kind
		rec.BackgroundPath = &path
	})
}

func (m *memConfigStore) SetBackgroundColor(ctx context.Context, color string) (*ConfigRecord, error) {
	return m.patch(func(rec *ConfigRecord) {
		rec.BackgroundVersion++
		rec.BackgroundType = BackgroundColor
		rec.BackgroundColor = color
		rec.BackgroundPath = nil
	})
}

// BumpReviews upserts like the repository's INSERT ... ON CONFLICT DO UPDATE:
// it creates the record on a pristine store instead of requiring a prior
// GetOrCreate.
func (m *memConfigStore) BumpReviews(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.patchErr != nil {
		return 0, m.patchErr
	}
	m.ensureLocked()
	m.rec.ReviewsVersion++
	m.rec.UpdatedAt = time.Now()
	return m.rec.ReviewsVersion, nil
}

const testPublicBase = "http://localhost:8080/media"

func newTestService(t *testing.T) (*Service, *memConfigStore, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), testPublicBase, "test-secret", time.Minute)
	require.NoError(t, err)
	cfg := &memConfigStore{}
	codec := storage.NewPathCodec("assets", testPublicBase)
	return NewService(cfg, store, codec), cfg, store
}

func seedObject(t *testing.T, store *storage.LocalStorage, key string) {
	t.Helper()
	require.NoError(t, store.Upload(context.Background(), key, strings.NewReader("bytes"), 5, "application/octet-stream"))
}

func objectExists(t *testing.T, store *storage.LocalStorage, prefix, key string) bool {
	t.Helper()
	infos, err := store.List(context.Background(), prefix, 0)
	require.NoError(t, err)
	for _, info := range infos {
		if info.Path == key {
			return true
		}
	}
	return false
}

func TestCommitLogoSequentialVersions(t *testing.T) {
	svc, cfg, _ := newTestService(t)
	ctx := context.Background()

	var last *CommitResult
	for i := 1; i <= 5; i++ {
		res, err := svc.CommitLogo(ctx, fmt.Sprintf("logo/logo-%d.png", i))
		require.NoError(t, err)
		assert.Equal(t, i, res.Version)
		last = res
	}

	assert.Equal(t, testPublicBase+"/logo/logo-5.png", last.URL)
	assert.Equal(t, 5, cfg.rec.LogoVersion)
	assert.Equal(t, "logo/logo-5.png", *cfg.rec.LogoPath)
}

func TestCommitLogoConcurrentNoLostUpdates(t *testing.T) {
	svc, cfg, _ := newTestService(t)

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CommitLogo(context.Background(), fmt.Sprintf("logo/logo-%d.png", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, cfg.rec.LogoVersion)
}

func TestCommitLogoAcceptsPublicURL(t *testing.T) {
	svc, cfg, _ := newTestService(t)

	res, err := svc.CommitLogo(context.Background(), testPublicBase+"/logo/logo.webp")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Version)
	assert.Equal(t, "logo/logo.webp", *cfg.rec.LogoPath)
}

func TestCommitLogoRejectsEmptyPath(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, raw := range []string{"", "   "} {
		_, err := svc.CommitLogo(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCommitCleansUpSupersededObject(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	seedObject(t, store, "logo/logo.png")
	_, err := svc.CommitLogo(ctx, "logo/logo.png")
	require.NoError(t, err)

	seedObject(t, store, "logo/logo.webp")
	_, err = svc.CommitLogo(ctx, "logo/logo.webp")
	require.NoError(t, err)

	assert.False(t, objectExists(t, store, "logo/", "logo/logo.png"), "superseded object should be removed")
	assert.True(t, objectExists(t, store, "logo/", "logo/logo.webp"))
}

func TestCommitSamePathKeepsObject(t *testing.T) {
	svc, cfg, store := newTestService(t)
	ctx := context.Background()

	seedObject(t, store, "audio/audio.m4a")
	_, err := svc.CommitAudio(ctx, "audio/audio.m4a")
	require.NoError(t, err)
	res, err := svc.CommitAudio(ctx, "audio/audio.m4a")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Version, "self-commit still bumps the version")
	assert.Equal(t, 2, cfg.rec.AudioVersion)
	assert.True(t, objectExists(t, store, "audio/", "audio/audio.m4a"))
}

func TestBackgroundVideoToColorTransition(t *testing.T) {
	svc, cfg, store := newTestService(t)
	ctx := context.Background()

	seedObject(t, store, "background/background.mp4")
	version, bg, err := svc.CommitBackground(ctx, BackgroundVideo, "background/background.mp4")
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, BackgroundVideo, bg.Type)

	version, bg, err = svc.CommitBackground(ctx, BackgroundColor, "#112233")
	require.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.Equal(t, Background{Type: BackgroundColor, Value: "#112233"}, bg)

	assert.Equal(t, BackgroundColor, cfg.rec.BackgroundType)
	assert.Nil(t, cfg.rec.BackgroundPath, "color background must clear the stored path")
	assert.Equal(t, "#112233", cfg.rec.BackgroundColor)
	assert.False(t, objectExists(t, store, "background/", "background/background.mp4"),
		"switching away from video should clean up the object")
}

func TestBackgroundImageToVideoSwitchCleansUp(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	seedObject(t, store, "background/background.png")
	_, _, err := svc.CommitBackground(ctx, BackgroundImage, "background/background.png")
	require.NoError(t, err)

	seedObject(t, store, "background/background.mp4")
	version, bg, err := svc.CommitBackground(ctx, BackgroundVideo, "background/background.mp4")
	require.NoError(t, err)

	assert.Equal(t, 2, version)
	assert.Equal(t, BackgroundVideo, bg.Type)
	assert.False(t, objectExists(t, store, "background/", "background/background.png"))
}

func TestBackgroundRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.CommitBackground(ctx, BackgroundColor, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.CommitBackground(ctx, BackgroundImage, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.CommitBackground(ctx, BackgroundType("gradient"), "#fff")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBackgroundCleanupFailureDoesNotBlockCommit(t *testing.T) {
	svc, cfg, _ := newTestService(t)
	ctx := context.Background()

	// Previous object does not exist on disk; Remove succeeds anyway and the
	// commit must go through regardless.
	_, _, err := svc.CommitBackground(ctx, BackgroundImage, "background/background.png")
	require.NoError(t, err)
	version, _, err := svc.CommitBackground(ctx, BackgroundImage, "background/background.webp")
	require.NoError(t, err)

	assert.Equal(t, 2, version)
	assert.Equal(t, "background/background.webp", *cfg.rec.BackgroundPath)
}

func TestStateReadsCreateRecordWithDefaults(t *testing.T) {
	svc, cfg, _ := newTestService(t)
	ctx := context.Background()

	logo, err := svc.LogoState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, logo.Version)
	assert.Nil(t, logo.URL)

	audio, err := svc.AudioState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, audio.Version)

	version, bg, err := svc.BackgroundState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	assert.Equal(t, Background{Type: BackgroundColor, Value: DefaultBackgroundColor}, bg)

	assert.Equal(t, 1, cfg.creates, "exactly one record is created")
}

func TestSlotStateResolvesURL(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CommitLogo(ctx, "logo/logo.png")
	require.NoError(t, err)

	st, err := svc.LogoState(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.URL)
	assert.Equal(t, testPublicBase+"/logo/logo.png", *st.URL)
}

func TestSignUploadValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	grant, err := svc.SignLogoUpload(ctx, "PNG")
	require.NoError(t, err)
	assert.Equal(t, "logo/logo.png", grant.Path)

	grant, err = svc.SignLogoUpload(ctx, "jpeg")
	require.NoError(t, err)
	assert.Equal(t, "logo/logo.jpg", grant.Path, "jpeg normalizes to jpg")

	_, err = svc.SignLogoUpload(ctx, "exe")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SignLogoUpload(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	grant, err = svc.SignAudioUpload(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "audio/audio.m4a", grant.Path, "audio extension defaults to m4a")

	_, err = svc.SignAudioUpload(ctx, "flac")
	assert.ErrorIs(t, err, ErrInvalidInput)

	grant, err = svc.SignBackgroundUpload(ctx, BackgroundVideo, "mov")
	require.NoError(t, err)
	assert.Equal(t, "background/background.mov", grant.Path)

	_, err = svc.SignBackgroundUpload(ctx, BackgroundVideo, "gif")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SignBackgroundUpload(ctx, BackgroundColor, "png")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBackgroundStateMediaWithoutPathFallsBack(t *testing.T) {
	svc, cfg, _ := newTestService(t)
	ctx := context.Background()

	// Force an inconsistent record the way a half-migrated database might
	// look; the read path must still produce a renderable default.
	_, err := cfg.GetOrCreate(ctx)
	require.NoError(t, err)
	cfg.rec.BackgroundType = BackgroundImage
	cfg.rec.BackgroundPath = nil

	_, bg, err := svc.BackgroundState(ctx)
	require.NoError(t, err)
	assert.Equal(t, Background{Type: BackgroundColor, Value: DefaultBackgroundColor}, bg)
}
