package ports

import (
	"context"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
)

// CatalogSource defines the port for loading the brand/category catalog
type CatalogSource interface {
	// Load reads and freezes the catalog. Called once at startup.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// NameResolver defines the port shared by the brand and category cascades
type NameResolver interface {
	// Resolve runs the lookup cascade for a free-text name
	Resolve(name string) domain.Resolution

	// ResolveValue resolves an untrusted upstream value; non-strings get the default asset
	ResolveValue(v any) domain.AssetHandle

	// HasAsset reports whether the name matches without falling back to aliases
	HasAsset(name string) bool

	// Default returns the fallback asset
	Default() domain.AssetHandle
}

// AssetStore defines the port for reading bundled asset files
type AssetStore interface {
	// Exists checks whether the file behind a handle is present
	Exists(ctx context.Context, asset domain.AssetHandle) bool

	// Open returns the absolute path for a bundle-relative path
	Open(ctx context.Context, relPath string) (string, error)
}

// ClipboardWriter defines the port for copying text to the system clipboard
type ClipboardWriter interface {
	WriteAll(text string) error
}
