package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/storage"
)

func newTestMediaService(t *testing.T, maxBytes int64) (MediaService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	return NewMediaService(store, maxBytes), dir
}

func TestMediaService_Accept(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantErr     error
	}{
		{name: "png", filename: "avatar.png", contentType: "image/png"},
		{name: "jpeg upper ext", filename: "ME.JPG", contentType: "image/jpeg"},
		{name: "gif with params", filename: "a.gif", contentType: "image/gif; charset=binary"},
		{name: "bad extension", filename: "avatar.exe", contentType: "image/png", wantErr: apperrors.ErrUnsupportedMedia},
		{name: "bad mime", filename: "avatar.png", contentType: "application/octet-stream", wantErr: apperrors.ErrUnsupportedMedia},
		{name: "both bad", filename: "notes.txt", contentType: "text/plain", wantErr: apperrors.ErrUnsupportedMedia},
		{name: "no extension", filename: "avatar", contentType: "image/png", wantErr: apperrors.ErrUnsupportedMedia},
		{name: "empty mime", filename: "avatar.png", contentType: "", wantErr: apperrors.ErrUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, dir := newTestMediaService(t, 1024)
			stored, err := svc.Accept(context.Background(), Upload{
				Filename:    tt.filename,
				ContentType: tt.contentType,
				Size:        4,
				Body:        strings.NewReader("data"),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, stored)
				entries, _ := os.ReadDir(dir)
				assert.Empty(t, entries)
				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(stored, MediaURLPrefix))
			assert.True(t, strings.HasSuffix(stored, "-"+tt.filename))
			data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(stored, MediaURLPrefix)))
			require.NoError(t, err)
			assert.Equal(t, "data", string(data))
		})
	}
}

func TestMediaService_AcceptTooLarge(t *testing.T) {
	svc, dir := newTestMediaService(t, 4)

	_, err := svc.Accept(context.Background(), Upload{
		Filename: "a.png", ContentType: "image/png", Size: 10, Body: strings.NewReader("0123456789"),
	})
	assert.ErrorIs(t, err, apperrors.ErrMediaTooLarge)

	// declared size lies; the body is still capped
	_, err = svc.Accept(context.Background(), Upload{
		Filename: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("0123456789"),
	})
	assert.ErrorIs(t, err, apperrors.ErrMediaTooLarge)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestMediaService_StripsDirectories(t *testing.T) {
	svc, dir := newTestMediaService(t, 1024)

	stored, err := svc.Accept(context.Background(), Upload{
		Filename: `..\..\evil dir/my photo.png`, ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "-my_photo.png"))
	assert.FileExists(t, filepath.Join(dir, strings.TrimPrefix(stored, MediaURLPrefix)))
}

func TestMediaService_UniqueNamesUnderConcurrency(t *testing.T) {
	svc, _ := newTestMediaService(t, 1024)

	const n = 50
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		paths = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := svc.Accept(context.Background(), Upload{
				Filename: "same.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
			})
			assert.NoError(t, err)
			mu.Lock()
			paths[stored] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, paths, n)
}

func TestMediaService_DiscardAndOpen(t *testing.T) {
	svc, _ := newTestMediaService(t, 1024)
	ctx := context.Background()

	stored, err := svc.Accept(ctx, Upload{Filename: "a.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("abc")})
	require.NoError(t, err)

	rc, info, err := svc.Open(ctx, strings.TrimPrefix(stored, MediaURLPrefix))
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "abc", string(data))
	assert.Equal(t, "image/png", info.ContentType)

	require.NoError(t, svc.Discard(ctx, stored))
	_, _, err = svc.Open(ctx, strings.TrimPrefix(stored, MediaURLPrefix))
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	assert.Error(t, svc.Discard(ctx, "/elsewhere/a.png"))
}

func TestStamper_StrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	s := &stamper{now: func() time.Time { return fixed }}

	first := s.next()
	assert.Equal(t, fixed.UnixMilli(), first)
	assert.Equal(t, first+1, s.next())
	assert.Equal(t, first+2, s.next())
}
