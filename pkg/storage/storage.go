package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// PublicPathPrefix is the URL prefix the Fiber app serves the upload
// directory under.
const PublicPathPrefix = "/static/uploads"

type ItfStorage interface {
	Save(fileName string, data []byte) (string, error)
	Remove(fileName string) error
	Dir() string
}

type diskStorage struct {
	dir     string
	baseURL string
}

func New() (ItfStorage, error) {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./storage/uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &diskStorage{
		dir:     dir,
		baseURL: os.Getenv("PUBLIC_BASE_URL"),
	}, nil
}

// Save writes data under the given file name and returns the public URL the
// file is reachable at. The caller is responsible for picking a
// collision-free name.
func (s *diskStorage) Save(fileName string, data []byte) (string, error) {
	fullPath := filepath.Join(s.dir, filepath.Base(fileName))

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return fmt.Sprintf("%s%s/%s", s.baseURL, PublicPathPrefix, filepath.Base(fileName)), nil
}

func (s *diskStorage) Remove(fileName string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(fileName)))
}

func (s *diskStorage) Dir() string {
	return s.dir
}
