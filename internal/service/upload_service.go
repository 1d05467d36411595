package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/samber/lo"

	apperrors "dcover/internal/errors"
	"dcover/internal/storage"
)

const megabyte = 1 << 20

var allowedExtensions = map[storage.Kind][]string{
	storage.KindAudio: {".mp3", ".wav", ".ogg", ".m4a", ".aac", ".flac", ".webm"},
	storage.KindImage: {".jpg", ".jpeg", ".png", ".gif", ".webp"},
}

// UploadLimits caps upload sizes per kind, in megabytes.
type UploadLimits struct {
	AudioMB int
	ImageMB int
}

func (l UploadLimits) limitFor(kind storage.Kind) int64 {
	if kind == storage.KindAudio {
		return int64(l.AudioMB) * megabyte
	}
	return int64(l.ImageMB) * megabyte
}

// UploadService stores media and returns its public URL.
type UploadService interface {
	Upload(ctx context.Context, kind storage.Kind, filename string, size int64, data io.Reader) (string, error)
	MediaRemover
}

// MediaRemover deletes stored media by the URL Upload returned.
type MediaRemover interface {
	Remove(ctx context.Context, url string)
}

type uploadService struct {
	store   storage.Store
	baseURL string
	limits  UploadLimits
}

// NewUploadService creates a new upload service. baseURL prefixes the
// returned /uploads path and may be empty for host-relative URLs.
func NewUploadService(store storage.Store, baseURL string, limits UploadLimits) UploadService {
	return &uploadService{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		limits:  limits,
	}
}

// Upload validates the file and stores it. Images that decode are
// downscaled and re-encoded as JPEG.
func (s *uploadService) Upload(ctx context.Context, kind storage.Kind, filename string, size int64, data io.Reader) (string, error) {
	allowed, ok := allowedExtensions[kind]
	if !ok {
		return "", apperrors.Validation("Unknown upload type")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !lo.Contains(allowed, ext) {
		return "", apperrors.Validation("Unsupported file type %q", ext)
	}
	limit := s.limits.limitFor(kind)
	if size > limit {
		return "", apperrors.Validation("File too large (max %d MB)", limit/megabyte)
	}

	// the declared size can lie; never read past the limit
	body, err := io.ReadAll(io.LimitReader(data, limit+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(body)) > limit {
		return "", apperrors.Validation("File too large (max %d MB)", limit/megabyte)
	}

	var content io.Reader = bytes.NewReader(body)
	if kind == storage.KindImage {
		normalized, ok, err := storage.NormalizeImage(body)
		if err != nil {
			return "", fmt.Errorf("process image: %w", err)
		}
		if ok {
			content, ext = normalized, storage.ImageExtension
		}
	}

	rel, err := s.store.Save(kind, storage.NewFileName(ext), content)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return s.baseURL + "/uploads/" + rel, nil
}

// Remove deletes a file this service stored. URLs pointing anywhere else,
// such as an external CDN, are ignored. Failures are logged only.
func (s *uploadService) Remove(ctx context.Context, url string) {
	rel, ok := s.localPath(url)
	if !ok {
		return
	}
	if err := s.store.Delete(rel); err != nil {
		log.Warnf("remove upload %s: %v", rel, err)
	}
}

func (s *uploadService) localPath(url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/uploads/")
	if !ok {
		return "", false
	}
	kind, name, ok := strings.Cut(rel, "/")
	if !ok || name == "" || !storage.Kind(kind).Valid() {
		return "", false
	}
	return rel, true
}
