package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface is the contract for the two logical buckets the
// application writes to: equipment/log images and arbitrary documents.
// Save returns the public URL of the stored object; Delete accepts that
// same URL and removes the underlying object.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (publicURL string, err error)
	Delete(publicURL string) error
}

type LocalFileStorage struct {
	basePath      string
	publicBaseURL string
}

func NewLocalFileStorage(basePath, publicBaseURL string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("could not create storage directory: %w", err)
		}
	}
	return &LocalFileStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	// Randomized name to avoid collisions; the original extension is kept.
	ext := filepath.Ext(originalFileName)
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	relative := filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName))
	return s.publicBaseURL + "/" + relative, nil
}

func (s *LocalFileStorage) Delete(publicURL string) error {
	relative := strings.TrimPrefix(publicURL, s.publicBaseURL+"/")
	if relative == publicURL {
		// Not one of ours.
		return fmt.Errorf("url %q is outside the storage base", publicURL)
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relative))

	// An already-missing file counts as deleted.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}
