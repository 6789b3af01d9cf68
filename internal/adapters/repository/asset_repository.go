package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
)

// FileAssetStore resolves asset handles to image files under a bundle root
type FileAssetStore struct {
	root  string
	mu    sync.RWMutex
	cache map[string]bool
}

// NewFileAssetStore creates a store rooted at dir. An empty dir means no
// bundle is available and every lookup misses.
func NewFileAssetStore(dir string) *FileAssetStore {
	return &FileAssetStore{
		root:  dir,
		cache: make(map[string]bool),
	}
}

var _ ports.AssetStore = (*FileAssetStore)(nil)

// Root returns the bundle directory
func (s *FileAssetStore) Root() string { return s.root }

// Exists checks whether the file behind a handle is present
func (s *FileAssetStore) Exists(ctx context.Context, asset domain.AssetHandle) bool {
	if s.root == "" || asset.IsZero() {
		return false
	}

	s.mu.RLock()
	found, ok := s.cache[asset.Path()]
	s.mu.RUnlock()
	if ok {
		return found
	}

	path, err := s.Open(ctx, asset.Path())
	found = err == nil
	if found {
		info, statErr := os.Stat(path)
		found = statErr == nil && !info.IsDir()
	}

	s.mu.Lock()
	s.cache[asset.Path()] = found
	s.mu.Unlock()

	return found
}

// Open maps a bundle-relative path to an absolute path inside the root.
// Paths escaping the root are rejected.
func (s *FileAssetStore) Open(ctx context.Context, relPath string) (string, error) {
	if s.root == "" {
		return "", fmt.Errorf("no asset directory configured")
	}

	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid asset path: %s", relPath)
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve asset directory: %w", err)
	}

	full := filepath.Join(root, clean)
	if !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid asset path: %s", relPath)
	}

	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}
