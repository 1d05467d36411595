package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dcover/internal/errors"
	"dcover/internal/storage"
)

func newUploadService(t *testing.T) (UploadService, string) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewUploadService(store, "https://api.example.com/", UploadLimits{AudioMB: 1, ImageMB: 1}), dir
}

func TestUploadService_Audio(t *testing.T) {
	ctx := context.Background()
	svc, dir := newUploadService(t)

	url, err := svc.Upload(ctx, storage.KindAudio, "Take One.MP3", 3, strings.NewReader("ID3"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://api.example.com/uploads/audio/"))
	assert.True(t, strings.HasSuffix(url, ".mp3"))

	rel := strings.TrimPrefix(url, "https://api.example.com/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data))
}

func TestUploadService_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUploadService(t)

	_, err := svc.Upload(ctx, storage.KindAudio, "virus.exe", 3, strings.NewReader("MZ"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.Upload(ctx, storage.KindImage, "big.png", 2<<20, strings.NewReader(""))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// declared size lies
	_, err = svc.Upload(ctx, storage.KindAudio, "big.mp3", 10, bytes.NewReader(make([]byte, 1<<20+1)))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUploadService_ImageIsReencoded(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUploadService(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))

	url, err := svc.Upload(ctx, storage.KindImage, "cover.png", int64(buf.Len()), &buf)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}

func TestUploadService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, dir := newUploadService(t)

	url, err := svc.Upload(ctx, storage.KindAudio, "take.mp3", 3, strings.NewReader("ID3"))
	require.NoError(t, err)
	path := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "https://api.example.com/uploads/")))
	require.FileExists(t, path)

	svc.Remove(ctx, "https://cdn.example.com/uploads/audio/x.mp3")
	svc.Remove(ctx, "https://api.example.com/uploads/../secret.txt")
	require.FileExists(t, path)

	svc.Remove(ctx, url)
	assert.NoFileExists(t, path)
	// already gone
	svc.Remove(ctx, url)
}
