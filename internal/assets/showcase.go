package assets

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind classifies a gallery object. Unrecognized entries are filtered
// out of listings rather than reported as errors.
type MediaKind string

// Gallery media kinds.
const (
	MediaImage        MediaKind = "image"
	MediaVideo        MediaKind = "video"
	MediaUnrecognized MediaKind = ""
)

const (
	showcasePrefix    = "showcase/"
	showcaseListLimit = 200

	maxImageBytes = 10 << 20  // 10 MiB
	maxVideoBytes = 100 << 20 // 100 MiB
)

var contentTypeExt = map[string]string{
	"image/png":       "png",
	"image/jpeg":      "jpg",
	"image/webp":      "webp",
	"image/gif":       "gif",
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
}

// ShowcaseItem is one gallery entry, derived from the object listing. The
// storage path doubles as the stable identity.
type ShowcaseItem struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Type       MediaKind `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ClassifyMedia determines the media kind of a file. The declared content
// type wins; the filename extension is the fallback for ambiguous or absent
// types.
func ClassifyMedia(name, contentType string) MediaKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i != -1 {
		ct = strings.TrimSpace(ct[:i])
	}
	if _, ok := contentTypeExt[ct]; ok {
		if strings.HasPrefix(ct, "video/") {
			return MediaVideo
		}
		return MediaImage
	}
	return classifyByName(name)
}

func classifyByName(name string) MediaKind {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	switch {
	case videoExts[ext]:
		return MediaVideo
	case imageExts[ext]:
		return MediaImage
	default:
		return MediaUnrecognized
	}
}

// ListShowcase enumerates the gallery, newest first, returning at most the
// 200 newest items. The listing is unbounded and the cap applied after the
// sort: backends enumerate in key order, which for timestamped gallery keys
// is oldest-first, and a cap at that stage would drop the newest uploads.
func (s *Service) ListShowcase(ctx context.Context) ([]ShowcaseItem, error) {
	infos, err := s.store.List(ctx, showcasePrefix, 0)
	if err != nil {
		return nil, fmt.Errorf("list showcase: %w", err)
	}

	items := make([]ShowcaseItem, 0, len(infos))
	for _, info := range infos {
		kind := classifyByName(info.Path)
		if kind == MediaUnrecognized {
			continue
		}
		items = append(items, ShowcaseItem{
			ID:         info.Path,
			URL:        s.store.PublicURL(info.Path),
			Type:       kind,
			UploadedAt: info.UpdatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
	if len(items) > showcaseListLimit {
		items = items[:showcaseListLimit]
	}
	return items, nil
}

// UploadShowcase stores a batch of gallery files. The whole batch is
// validated before any byte is written: an invalid kind or an oversize file
// rejects the request and nothing is stored. Once validation passes, files
// already uploaded stay even if a later one fails — they are legitimate
// gallery items, not orphans.
func (s *Service) UploadShowcase(ctx context.Context, files []*multipart.FileHeader) ([]ShowcaseItem, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrInvalidInput)
	}

	kinds := make([]MediaKind, len(files))
	for i, fh := range files {
		kind := ClassifyMedia(fh.Filename, fh.Header.Get("Content-Type"))
		if kind == MediaUnrecognized {
			return nil, fmt.Errorf("%w: unsupported file type for %q", ErrInvalidInput, fh.Filename)
		}
		limit := int64(maxImageBytes)
		if kind == MediaVideo {
			limit = maxVideoBytes
		}
		if fh.Size > limit {
			return nil, fmt.Errorf("%w: %q exceeds the %dMB limit", ErrInvalidInput, fh.Filename, limit>>20)
		}
		kinds[i] = kind
	}

	uploaded := make([]ShowcaseItem, 0, len(files))
	for i, fh := range files {
		item, err := s.uploadShowcaseFile(ctx, fh, kinds[i])
		if err != nil {
			if len(uploaded) > 0 {
				return uploaded, fmt.Errorf("after %d uploads: %w", len(uploaded), err)
			}
			return nil, err
		}
		uploaded = append(uploaded, *item)
	}
	return uploaded, nil
}

func (s *Service) uploadShowcaseFile(ctx context.Context, fh *multipart.FileHeader, kind MediaKind) (*ShowcaseItem, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	key := showcaseKey(fh.Filename, fh.Header.Get("Content-Type"))
	if err := s.store.Upload(ctx, key, f, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		return nil, fmt.Errorf("store %q: %w", fh.Filename, err)
	}

	return &ShowcaseItem{
		ID:         key,
		URL:        s.store.PublicURL(key),
		Type:       kind,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// DeleteShowcase removes one gallery object identified by its URL or path.
// Paths outside the gallery prefix are rejected so this endpoint cannot
// delete unrelated objects. Removing an already-absent object succeeds.
func (s *Service) DeleteShowcase(ctx context.Context, raw string) (string, error) {
	key := s.codec.Canonicalize(raw)
	if key == "" || !strings.HasPrefix(key, showcasePrefix) {
		return "", fmt.Errorf("%w: invalid media path", ErrInvalidInput)
	}
	if err := s.store.Remove(ctx, key); err != nil {
		return "", fmt.Errorf("delete showcase item: %w", err)
	}
	return key, nil
}

// showcaseKey synthesizes a collision-resistant gallery key. The extension
// comes from the content type when recognized, else from the filename.
func showcaseKey(name, contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i != -1 {
		ct = strings.TrimSpace(ct[:i])
	}
	ext, ok := contentTypeExt[ct]
	if !ok {
		ext = strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
		if ext == "jpeg" {
			ext = "jpg"
		}
	}
	return fmt.Sprintf("%s%d-%s.%s", showcasePrefix, time.Now().UnixNano(), uuid.NewString()[:8], ext)
}
