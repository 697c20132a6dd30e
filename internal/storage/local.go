package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidGrant is returned when an upload token is malformed, expired,
// or signed for a different path.
var ErrInvalidGrant = errors.New("invalid or expired upload grant")

// ErrInvalidKey is returned for keys that escape the storage root.
var ErrInvalidKey = errors.New("invalid object key")

// LocalStorage implements Storage on the local filesystem. It plays the
// append-only blob store role: upload authorizations are HMAC-signed tokens
// redeemed against the service's own upload endpoint, and non-overwrite
// grants land every upload at a fresh unique key.
type LocalStorage struct {
	root       string
	publicBase string
	secret     []byte
	grantTTL   time.Duration
}

// NewLocalStorage creates the root directory if needed and returns a
// ready-to-use LocalStorage.
func NewLocalStorage(root, publicBase, secret string, grantTTL time.Duration) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{
		root:       root,
		publicBase: strings.TrimRight(publicBase, "/"),
		secret:     []byte(secret),
		grantTTL:   grantTTL,
	}, nil
}

// SignUpload issues a signed token authorizing one write. Without overwrite
// the key is uniquified, so the caller must use the path echoed in the grant.
func (s *LocalStorage) SignUpload(ctx context.Context, key string, overwrite bool) (*UploadGrant, error) {
	if _, err := s.resolve(key); err != nil {
		return nil, err
	}

	if !overwrite {
		key = uniquifyKey(key)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"path": key,
		"iat":  now.Unix(),
		"exp":  now.Add(s.grantTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign upload grant: %w", err)
	}

	return &UploadGrant{Path: key, Token: token}, nil
}

// VerifyGrant validates an upload token and returns the key it authorizes.
func (s *LocalStorage) VerifyGrant(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidGrant
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidGrant
	}
	key, _ := claims["path"].(string)
	if key == "" {
		return "", ErrInvalidGrant
	}
	return key, nil
}

// Upload writes reader to key. The write goes through a temp file and a
// rename, so a partially written object is never visible at the key.
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	dst, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("finalize object %q: %w", key, err)
	}
	return nil
}

// List enumerates objects under prefix, at most limit entries.
func (s *LocalStorage) List(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error) {
	dir, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}

	var infos []ObjectInfo
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		infos = append(infos, ObjectInfo{
			Path:      filepath.ToSlash(rel),
			UpdatedAt: info.ModTime(),
		})
		if limit > 0 && len(infos) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	return infos, nil
}

// Remove deletes the object at key. Removing an absent key succeeds.
func (s *LocalStorage) Remove(ctx context.Context, key string) error {
	dst, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

// PublicURL returns the browser-accessible URL for the given key.
func (s *LocalStorage) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// resolve maps key to an absolute path under the root, rejecting traversal.
func (s *LocalStorage) resolve(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// uniquifyKey inserts a fresh suffix before the extension so repeated
// uploads never collide.
func uniquifyKey(key string) string {
	ext := filepath.Ext(key)
	base := strings.TrimSuffix(key, ext)
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
}
