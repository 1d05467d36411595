package storage

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/oklog/ulid/v2"
)

// Kind names an upload category and its subdirectory.
type Kind string

const (
	KindAudio Kind = "audio"
	KindImage Kind = "images"
)

// Valid reports whether k is a known upload kind.
func (k Kind) Valid() bool {
	return k == KindAudio || k == KindImage
}

// Store saves and removes uploaded media.
type Store interface {
	// Save writes data under kind with the given file name and returns the
	// slash-separated path relative to the store root.
	Save(kind Kind, filename string, data io.Reader) (string, error)
	Delete(relativePath string) error
}

// LocalStorage implements Store on the local filesystem.
type LocalStorage struct {
	basePath string
}

var _ Store = (*LocalStorage)(nil)

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid upload path '%s': %w", basePath, err)
	}
	if err := os.MkdirAll(absBasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory '%s': %w", absBasePath, err)
	}
	return &LocalStorage{basePath: absBasePath}, nil
}

func (ls *LocalStorage) Save(kind Kind, filename string, data io.Reader) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown upload kind '%s'", kind)
	}
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid file name '%s'", filename)
	}
	dir, err := ls.resolve(string(kind))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory '%s': %w", dir, err)
	}

	fullPath := filepath.Join(dir, filename)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file '%s': %w", fullPath, err)
	}
	if _, err := io.Copy(out, data); err != nil {
		out.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("write '%s': %w", fullPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("close '%s': %w", fullPath, err)
	}

	log.Debugf("storage: saved %s", fullPath)
	return string(kind) + "/" + filename, nil
}

// Delete removes a stored file. Missing files are not an error.
func (ls *LocalStorage) Delete(relativePath string) error {
	fullPath, err := ls.resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete '%s': %w", relativePath, err)
	}
	return nil
}

// resolve joins rel onto the base path and rejects anything escaping it.
func (ls *LocalStorage) resolve(rel string) (string, error) {
	full := filepath.Join(ls.basePath, filepath.Clean("/"+rel))
	if full != ls.basePath && !strings.HasPrefix(full, ls.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path '%s'", rel)
	}
	return full, nil
}

// NewFileName returns a unique, time-sortable file name with ext.
func NewFileName(ext string) string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()) + ext
}
