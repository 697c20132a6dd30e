package assets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sitekit/service/internal/storage"
)

// ErrInvalidInput marks client errors: empty or malformed paths, disallowed
// extensions or content types, oversize files. Surfaced as 400.
var ErrInvalidInput = errors.New("invalid input")

// Extension allow-lists per media kind. jpeg normalizes to jpg.
var (
	imageExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "webp": true, "gif": true}
	videoExts = map[string]bool{"mp4": true, "mov": true}
	audioExts = map[string]bool{"m4a": true, "mp3": true, "ogg": true, "wav": true}
)

// Fixed basenames for the single-value slots. Only the extension varies, so
// every upload for a slot overwrites in place.
const (
	logoPathPrefix       = "logo/logo."
	backgroundPathPrefix = "background/background."
	audioPathPrefix      = "audio/audio."
)

// Background is the rendered state of the background slot.
type Background struct {
	Type  BackgroundType `json:"type"`
	Value string         `json:"value"`
}

// Service orchestrates the path codec, object storage, and config store to
// implement the per-slot policies.
type Service struct {
	config ConfigStore
	store  storage.Storage
	codec  *storage.PathCodec
}

// NewService creates a new assets Service.
func NewService(config ConfigStore, store storage.Storage, codec *storage.PathCodec) *Service {
	return &Service{config: config, store: store, codec: codec}
}

// SlotState is the read-side view of a single-value slot.
type SlotState struct {
	Version int     `json:"version"`
	URL     *string `json:"url"`
}

// LogoState returns the current logo version and URL.
func (s *Service) LogoState(ctx context.Context) (*SlotState, error) {
	rec, err := s.config.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return s.slotState(rec.LogoVersion, rec.LogoPath), nil
}

// AudioState returns the current ambient audio version and URL.
func (s *Service) AudioState(ctx context.Context) (*SlotState, error) {
	rec, err := s.config.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return s.slotState(rec.AudioVersion, rec.AudioPath), nil
}

// BackgroundState returns the current background version and rendered value.
// A media type with no stored path falls back to the default color.
func (s *Service) BackgroundState(ctx context.Context) (int, Background, error) {
	rec, err := s.config.GetOrCreate(ctx)
	if err != nil {
		return 0, Background{}, err
	}

	bg := Background{Type: BackgroundColor, Value: DefaultBackgroundColor}
	switch {
	case rec.BackgroundType == BackgroundColor:
		if rec.BackgroundColor != "" {
			bg.Value = rec.BackgroundColor
		}
	case rec.BackgroundPath != nil:
		bg = Background{Type: rec.BackgroundType, Value: s.store.PublicURL(*rec.BackgroundPath)}
	}
	return rec.BackgroundVersion, bg, nil
}

// SignLogoUpload authorizes a direct upload of a new logo image.
func (s *Service) SignLogoUpload(ctx context.Context, ext string) (*storage.UploadGrant, error) {
	ext, err := normalizeExt(ext, imageExts, "unsupported image type")
	if err != nil {
		return nil, err
	}
	return s.store.SignUpload(ctx, logoPathPrefix+ext, true)
}

// SignAudioUpload authorizes a direct upload of the ambient audio track.
// An absent extension defaults to m4a.
func (s *Service) SignAudioUpload(ctx context.Context, ext string) (*storage.UploadGrant, error) {
	if ext == "" {
		ext = "m4a"
	}
	ext, err := normalizeExt(ext, audioExts, "unsupported audio type")
	if err != nil {
		return nil, err
	}
	return s.store.SignUpload(ctx, audioPathPrefix+ext, true)
}

// SignBackgroundUpload authorizes a direct upload of a background image or
// video.
func (s *Service) SignBackgroundUpload(ctx context.Context, kind BackgroundType, ext string) (*storage.UploadGrant, error) {
	var err error
	switch kind {
	case BackgroundImage:
		ext, err = normalizeExt(ext, imageExts, "unsupported image type")
	case BackgroundVideo:
		ext, err = normalizeExt(ext, videoExts, "use mp4 or mov")
	default:
		err = fmt.Errorf("%w: background type %q cannot be uploaded", ErrInvalidInput, kind)
	}
	if err != nil {
		return nil, err
	}
	return s.store.SignUpload(ctx, backgroundPathPrefix+ext, true)
}

// CommitResult is returned by every successful single-value commit.
type CommitResult struct {
	Version int
	URL     string
}

// CommitLogo records an uploaded logo object as the active logo.
func (s *Service) CommitLogo(ctx context.Context, raw string) (*CommitResult, error) {
	return s.commitSlot(ctx, raw,
		func(rec *ConfigRecord) *string { return rec.LogoPath },
		s.config.SetLogo,
		func(rec *ConfigRecord) int { return rec.LogoVersion })
}

// CommitAudio records an uploaded audio object as the active ambient track.
func (s *Service) CommitAudio(ctx context.Context, raw string) (*CommitResult, error) {
	return s.commitSlot(ctx, raw,
		func(rec *ConfigRecord) *string { return rec.AudioPath },
		s.config.SetAudio,
		func(rec *ConfigRecord) int { return rec.AudioVersion })
}

// CommitBackground switches the background slot. Color values are stored
// literally and clear the path; image and video values are canonicalized
// paths. Every successful commit bumps the version, including a
// self-transition to the same type with a new value.
func (s *Service) CommitBackground(ctx context.Context, kind BackgroundType, value string) (int, Background, error) {
	switch kind {
	case BackgroundColor:
		if strings.TrimSpace(value) == "" {
			return 0, Background{}, fmt.Errorf("%w: invalid color background data", ErrInvalidInput)
		}
		rec, err := s.config.GetOrCreate(ctx)
		if err != nil {
			return 0, Background{}, err
		}
		// Leaving a media background orphans its object; clean it up.
		s.cleanup(ctx, rec.BackgroundPath, "")

		rec, err = s.config.SetBackgroundColor(ctx, value)
		if err != nil {
			return 0, Background{}, err
		}
		return rec.BackgroundVersion, Background{Type: BackgroundColor, Value: value}, nil

	case BackgroundImage, BackgroundVideo:
		path := s.codec.Canonicalize(value)
		if path == "" {
			return 0, Background{}, fmt.Errorf("%w: invalid background path", ErrInvalidInput)
		}
		rec, err := s.config.GetOrCreate(ctx)
		if err != nil {
			return 0, Background{}, err
		}
		s.cleanup(ctx, rec.BackgroundPath, path)

		rec, err = s.config.SetBackgroundMedia(ctx, kind, path)
		if err != nil {
			return 0, Background{}, err
		}
		return rec.BackgroundVersion, Background{Type: kind, Value: s.store.PublicURL(path)}, nil

	default:
		return 0, Background{}, fmt.Errorf("%w: unknown background type %q", ErrInvalidInput, kind)
	}
}

// commitSlot is the common single-value commit algorithm: canonicalize,
// read-or-create, best-effort cleanup of the superseded object, then one
// atomic bump-and-swap.
func (s *Service) commitSlot(
	ctx context.Context,
	raw string,
	prevPath func(*ConfigRecord) *string,
	set func(context.Context, string) (*ConfigRecord, error),
	version func(*ConfigRecord) int,
) (*CommitResult, error) {
	path := s.codec.Canonicalize(raw)
	if path == "" {
		return nil, fmt.Errorf("%w: invalid asset path", ErrInvalidInput)
	}

	rec, err := s.config.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	s.cleanup(ctx, prevPath(rec), path)

	rec, err = set(ctx, path)
	if err != nil {
		return nil, err
	}
	return &CommitResult{Version: version(rec), URL: s.store.PublicURL(path)}, nil
}

// cleanup removes the previously stored object when it differs from the new
// path. Failures are logged and discarded; cleanup must never block or fail
// a commit.
func (s *Service) cleanup(ctx context.Context, prev *string, next string) {
	if prev == nil || *prev == "" || *prev == next {
		return
	}
	if err := s.store.Remove(ctx, *prev); err != nil {
		log.Printf("assets: cleanup of superseded object %q failed: %v", *prev, err)
	}
}

func (s *Service) slotState(version int, path *string) *SlotState {
	st := &SlotState{Version: version}
	if path != nil && *path != "" {
		url := s.store.PublicURL(*path)
		st.URL = &url
	}
	return st
}

// normalizeExt lowercases and validates an extension against allowed,
// folding jpeg to jpg.
func normalizeExt(ext string, allowed map[string]bool, msg string) (string, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || !allowed[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	return ext, nil
}
