package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

var ErrDisallowedType = fmt.Errorf("invalid file type, only images and documents are allowed")
var ErrTooLarge = fmt.Errorf("file exceeds the size limit")

// DocumentStore keeps uploaded complaint documents on local disk under a
// generated unique name.
type DocumentStore struct {
	dir          string
	maxFileBytes int64
}

func NewDocumentStore(dir string, maxFileBytes int64) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DocumentStore{dir: dir, maxFileBytes: maxFileBytes}, nil
}

// Save streams one uploaded file to disk and returns the stored filename.
func (s *DocumentStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrDisallowedType
	}
	if file.Size > s.maxFileBytes {
		return "", ErrTooLarge
	}

	name := fmt.Sprintf("documents-%d-%s%s", time.Now().UnixMilli(), shortID(), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// Path resolves a stored filename back to its on-disk location. The name is
// reduced to its base component so path traversal cannot escape the dir.
func (s *DocumentStore) Path(name string) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == "" {
		return "", os.ErrNotExist
	}
	path := filepath.Join(s.dir, base)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
