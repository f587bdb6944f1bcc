package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/storage"
)

// MediaURLPrefix is the path under which stored media is served.
const MediaURLPrefix = "/uploads/"

var (
	allowedExtensions = map[string]struct{}{
		".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
	}
	allowedMIMETypes = map[string]struct{}{
		"image/jpeg": {}, "image/jpg": {}, "image/png": {}, "image/gif": {},
	}
)

// Upload is an incoming profile picture.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService accepts and serves profile pictures.
type MediaService interface {
	Accept(ctx context.Context, upload Upload) (string, error)
	Discard(ctx context.Context, storedPath string) error
	Open(ctx context.Context, name string) (io.ReadCloser, *storage.ObjectInfo, error)
}

type mediaService struct {
	store    storage.Store
	maxBytes int64
	stamp    *stamper
}

// NewMediaService creates a media service writing to store.
func NewMediaService(store storage.Store, maxBytes int64) MediaService {
	return &mediaService{
		store:    store,
		maxBytes: maxBytes,
		stamp:    &stamper{now: time.Now},
	}
}

// Accept checks the extension and the declared MIME type independently and
// stores the file as "<stamp>-<name>". It returns the public path.
func (s *mediaService) Accept(ctx context.Context, upload Upload) (string, error) {
	name := cleanFilename(upload.Filename)
	if !allowedExtension(name) || !allowedMIMEType(upload.ContentType) {
		return "", fmt.Errorf("%q as %q: %w", upload.Filename, upload.ContentType, apperrors.ErrUnsupportedMedia)
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", apperrors.ErrMediaTooLarge
	}

	body := upload.Body
	if s.maxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(upload.Body, s.maxBytes+1))
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		if int64(len(data)) > s.maxBytes {
			return "", apperrors.ErrMediaTooLarge
		}
		body = bytes.NewReader(data)
		upload.Size = int64(len(data))
	}

	key := fmt.Sprintf("%d-%s", s.stamp.next(), name)
	if err := s.store.Put(ctx, key, body, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return MediaURLPrefix + key, nil
}

// Discard removes a previously accepted file.
func (s *mediaService) Discard(ctx context.Context, storedPath string) error {
	key := strings.TrimPrefix(storedPath, MediaURLPrefix)
	if key == storedPath {
		return fmt.Errorf("%q is not a media path: %w", storedPath, storage.ErrInvalidKey)
	}
	return s.store.Delete(ctx, key)
}

func (s *mediaService) Open(ctx context.Context, name string) (io.ReadCloser, *storage.ObjectInfo, error) {
	return s.store.Open(ctx, name)
}

func allowedExtension(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func allowedMIMEType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := allowedMIMETypes[strings.ToLower(mediaType)]
	return ok
}

// cleanFilename keeps only the base name and replaces characters that are
// awkward in URLs.
func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// stamper hands out strictly increasing millisecond timestamps.
type stamper struct {
	last atomic.Int64
	now  func() time.Time
}

func (s *stamper) next() int64 {
	for {
		last := s.last.Load()
		ts := s.now().UnixMilli()
		if ts <= last {
			ts = last + 1
		}
		if s.last.CompareAndSwap(last, ts) {
			return ts
		}
	}
}
