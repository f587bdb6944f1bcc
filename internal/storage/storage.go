package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a key has no stored object.
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that are not a plain file name.
var ErrInvalidKey = errors.New("invalid object key")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified *time.Time
}

// Store persists uploaded media under flat keys.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys that could escape the media namespace.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) || path.Base(key) != key {
		return ErrInvalidKey
	}
	return nil
}
