// Package imagestore keeps uploaded image bytes and extracts basic image metadata.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileStore writes blobs below Root and serves them under BaseURL.
type FileStore struct {
	Root    string
	BaseURL string
}

func NewFileStore(root, baseURL string) (*FileStore, error) {
	if root == "" {
		return nil, errors.New("imagestore: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore: failed to create root: %w", err)
	}
	return &FileStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put stores data under key and returns its public URL.
func (s *FileStore) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.pathFor(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("imagestore: failed to create directory: %w", err)
	}
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("imagestore: failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("imagestore: failed to move %s into place: %w", key, err)
	}
	return s.BaseURL + "/" + key, nil
}

// Delete removes the blob behind url. Unknown or foreign URLs and missing files are not errors.
func (s *FileStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := s.keyFor(url)
	if !ok {
		return nil
	}
	full, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("imagestore: failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) keyFor(url string) (string, bool) {
	prefix := s.BaseURL + "/"
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func (s *FileStore) pathFor(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("imagestore: invalid key %q", key)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

// Key builds the storage key for an image of a property.
func Key(propertyID, imageID, ext string) string {
	return fmt.Sprintf("properties/%s/%s%s", propertyID, imageID, ext)
}
