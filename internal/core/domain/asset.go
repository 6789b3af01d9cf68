package domain

import "strings"

// Kind identifies which registry a name is resolved against
type Kind string

const (
	KindBrand    Kind = "brand"
	KindCategory Kind = "category"
)

// ParseKind maps user input onto a Kind, defaulting to brand
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "categories", "cat":
		return KindCategory
	default:
		return KindBrand
	}
}

// CanonicalName is a registry key, spelled exactly as the catalog author wrote it
type CanonicalName string

// AssetHandle is an opaque reference to a bundled display image.
// The zero value is not a valid handle.
type AssetHandle struct {
	path string
}

// NewAssetHandle wraps a bundle-relative image path (e.g. "brands/nike.png").
// Only catalog loaders should call this.
func NewAssetHandle(path string) AssetHandle {
	return AssetHandle{path: strings.TrimSpace(path)}
}

// Path returns the bundle-relative image path
func (h AssetHandle) Path() string { return h.path }

func (h AssetHandle) String() string { return h.path }

// IsZero reports whether the handle is unset
func (h AssetHandle) IsZero() bool { return h.path == "" }

// MarshalText lets handles appear as plain strings in JSON/YAML output
func (h AssetHandle) MarshalText() ([]byte, error) {
	return []byte(h.path), nil
}

// UnmarshalText reads a handle back from JSON/YAML output
func (h *AssetHandle) UnmarshalText(text []byte) error {
	*h = NewAssetHandle(string(text))
	return nil
}

// Entry is one (name, asset) pair of a registry, in declaration order
type Entry struct {
	Name  CanonicalName `json:"name"`
	Asset AssetHandle   `json:"asset"`
}

// Alias maps a normalized free-text variant to a canonical name
type Alias struct {
	Variant string        `json:"variant"`
	Target  CanonicalName `json:"target"`
}
