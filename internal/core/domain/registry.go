package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kamal-hamza/brandkit/pkg/namenorm"
)

var (
	ErrEmptyKey       = errors.New("registry key cannot be empty")
	ErrUntrimmedKey   = errors.New("registry key has leading or trailing whitespace")
	ErrDuplicateKey   = errors.New("duplicate registry key")
	ErrMissingAsset   = errors.New("registry entry has no asset")
	ErrNoDefault      = errors.New("registry has no default asset")
	ErrDuplicateAlias = errors.New("duplicate alias variant")
)

// Registry is an immutable, ordered mapping from canonical names to assets.
// Iteration order is declaration order; tie-breaks in the lookup cascade depend on it.
type Registry struct {
	kind     Kind
	entries  []Entry
	index    map[CanonicalName]int
	folded   []string // lowercase keys, parallel to entries
	norm     []string // normalized keys, parallel to entries
	aliases  []Alias
	aliasIdx map[string]CanonicalName
	def      AssetHandle
}

// NewRegistry validates and freezes a registry. Alias targets are not checked
// here: a dangling alias is a data defect reported by validation, not a load error.
func NewRegistry(kind Kind, entries []Entry, aliases []Alias, def AssetHandle) (*Registry, error) {
	if def.IsZero() {
		return nil, fmt.Errorf("%s registry: %w", kind, ErrNoDefault)
	}

	r := &Registry{
		kind:     kind,
		entries:  make([]Entry, 0, len(entries)),
		index:    make(map[CanonicalName]int, len(entries)),
		folded:   make([]string, 0, len(entries)),
		norm:     make([]string, 0, len(entries)),
		aliases:  make([]Alias, 0, len(aliases)),
		aliasIdx: make(map[string]CanonicalName, len(aliases)),
		def:      def,
	}

	for i, e := range entries {
		if strings.TrimSpace(string(e.Name)) == "" {
			return nil, fmt.Errorf("%s registry entry %d: %w", kind, i, ErrEmptyKey)
		}
		// exact and case-insensitive lookups trim the input, never the key
		if strings.TrimSpace(string(e.Name)) != string(e.Name) {
			return nil, fmt.Errorf("%s registry entry %q: %w", kind, e.Name, ErrUntrimmedKey)
		}
		if e.Asset.IsZero() {
			return nil, fmt.Errorf("%s registry entry %q: %w", kind, e.Name, ErrMissingAsset)
		}
		if _, exists := r.index[e.Name]; exists {
			return nil, fmt.Errorf("%s registry entry %q: %w", kind, e.Name, ErrDuplicateKey)
		}
		r.index[e.Name] = len(r.entries)
		r.entries = append(r.entries, e)
		r.folded = append(r.folded, namenorm.FoldCase(string(e.Name)))
		r.norm = append(r.norm, namenorm.Normalize(string(e.Name)))
	}

	for _, a := range aliases {
		if _, exists := r.aliasIdx[a.Variant]; exists {
			return nil, fmt.Errorf("%s alias %q: %w", kind, a.Variant, ErrDuplicateAlias)
		}
		r.aliasIdx[a.Variant] = a.Target
		r.aliases = append(r.aliases, a)
	}

	return r, nil
}

// Kind returns which kind of names this registry holds
func (r *Registry) Kind() Kind { return r.kind }

// Default returns the fallback asset
func (r *Registry) Default() AssetHandle { return r.def }

// Len returns the number of entries
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns a copy of the entries in declaration order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Aliases returns a copy of the alias table in declaration order
func (r *Registry) Aliases() []Alias {
	out := make([]Alias, len(r.aliases))
	copy(out, r.aliases)
	return out
}

// Lookup finds an entry by its exact canonical name
func (r *Registry) Lookup(name CanonicalName) (AssetHandle, bool) {
	i, ok := r.index[name]
	if !ok {
		return AssetHandle{}, false
	}
	return r.entries[i].Asset, true
}

// Has reports whether name is a registry key
func (r *Registry) Has(name CanonicalName) bool {
	_, ok := r.index[name]
	return ok
}

// AliasTarget looks up a normalized variant in the alias table
func (r *Registry) AliasTarget(variant string) (CanonicalName, bool) {
	target, ok := r.aliasIdx[variant]
	return target, ok
}

// FoldedKey returns the lowercase form of entry i
func (r *Registry) FoldedKey(i int) string { return r.folded[i] }

// NormalizedKey returns the normalized form of entry i
func (r *Registry) NormalizedKey(i int) string { return r.norm[i] }

// At returns entry i in declaration order
func (r *Registry) At(i int) Entry { return r.entries[i] }

// Catalog bundles the brand and category registries loaded at startup
type Catalog struct {
	Brands     *Registry
	Categories *Registry
}

// Registry returns the registry for the given kind
func (c *Catalog) Registry(kind Kind) *Registry {
	if kind == KindCategory {
		return c.Categories
	}
	return c.Brands
}
