package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs under a root directory. Keys map to relative file
// paths and locators to URLs under baseURL, which the application serves
// statically.
type LocalStore struct {
	rootDir string
	baseURL string
}

func NewLocalStore(rootDir string, baseURL string) (*LocalStore, error) {
	if strings.TrimSpace(rootDir) == "" {
		return nil, errors.New("blob root directory is required")
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &LocalStore{
		rootDir: rootDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (store *LocalStore) Put(ctx context.Context, key string, content io.Reader, size int64, contentType string) error {
	filePath, err := store.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("create blob subdirectory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create blob %s: %w", key, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

func (store *LocalStore) URL(key string) string {
	return store.baseURL + "/" + key
}

func (store *LocalStore) Delete(ctx context.Context, key string) error {
	filePath, err := store.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// RootDir exposes the storage directory so the server can mount it as a
// static route.
func (store *LocalStore) RootDir() string {
	return store.rootDir
}

func (store *LocalStore) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	if cleaned := path.Clean(key); cleaned != key || cleaned == "." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid blob key %q", key)
		}
	}
	return filepath.Join(store.rootDir, filepath.FromSlash(key)), nil
}
