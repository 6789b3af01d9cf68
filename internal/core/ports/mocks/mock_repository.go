package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
)

// MockCatalogSource is a mock implementation of the CatalogSource interface for testing
type MockCatalogSource struct {
	mu        sync.Mutex
	catalog   *domain.Catalog
	err       error
	loadCalls int
}

// NewMockCatalogSource creates a mock source that returns the given catalog
func NewMockCatalogSource(catalog *domain.Catalog) *MockCatalogSource {
	return &MockCatalogSource{catalog: catalog}
}

// SetError makes the next Load calls fail
func (m *MockCatalogSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Load returns the configured catalog
func (m *MockCatalogSource) Load(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.catalog == nil {
		return nil, fmt.Errorf("mock catalog not configured")
	}
	return m.catalog, nil
}

// LoadCalls returns how many times Load was called
func (m *MockCatalogSource) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// MockAssetStore is an in-memory AssetStore keyed by bundle-relative path
type MockAssetStore struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMockAssetStore creates an empty mock asset store
func NewMockAssetStore() *MockAssetStore {
	return &MockAssetStore{files: make(map[string]string)}
}

// Add registers a file for a bundle-relative path
func (m *MockAssetStore) Add(relPath, absPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[relPath] = absPath
}

// Exists checks whether the handle's file was registered
func (m *MockAssetStore) Exists(ctx context.Context, asset domain.AssetHandle) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[asset.Path()]
	return ok
}

// Open returns the registered path
func (m *MockAssetStore) Open(ctx context.Context, relPath string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.files[relPath]
	if !ok {
		return "", fmt.Errorf("asset not found: %s", relPath)
	}
	return p, nil
}

// MockClipboard records the last text written
type MockClipboard struct {
	Text string
	Err  error
}

// WriteAll stores the text
func (m *MockClipboard) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
