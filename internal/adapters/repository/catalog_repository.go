package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/logging"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// catalogDocument mirrors the on-disk catalog layout. Sequences keep
// declaration order, which the lookup cascade relies on.
type catalogDocument struct {
	Brands     registryDocument `yaml:"brands"`
	Categories registryDocument `yaml:"categories"`
}

type registryDocument struct {
	Default string          `yaml:"default"`
	Entries []entryDocument `yaml:"entries"`
	Aliases []aliasDocument `yaml:"aliases"`
}

type entryDocument struct {
	Name  string `yaml:"name"`
	Asset string `yaml:"asset"`
}

type aliasDocument struct {
	Variant string `yaml:"variant"`
	Target  string `yaml:"target"`
}

// EmbeddedCatalogSource loads the catalog compiled into the binary
type EmbeddedCatalogSource struct {
	log logrus.FieldLogger
}

// NewEmbeddedCatalogSource creates a source over the bundled catalog
func NewEmbeddedCatalogSource(log logrus.FieldLogger) *EmbeddedCatalogSource {
	return &EmbeddedCatalogSource{log: logging.OrDiscard(log)}
}

var _ ports.CatalogSource = (*EmbeddedCatalogSource)(nil)

// Load parses the embedded catalog
func (s *EmbeddedCatalogSource) Load(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := ParseCatalog(embeddedCatalog, s.log)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return catalog, nil
}

// EmbeddedCatalogBytes exposes the raw bundled catalog (used by `bk validate --dump`)
func EmbeddedCatalogBytes() []byte {
	out := make([]byte, len(embeddedCatalog))
	copy(out, embeddedCatalog)
	return out
}

// FileCatalogSource loads a catalog from a YAML file with the embedded layout
type FileCatalogSource struct {
	path string
	log  logrus.FieldLogger
}

// NewFileCatalogSource creates a source reading the given path
func NewFileCatalogSource(path string, log logrus.FieldLogger) *FileCatalogSource {
	return &FileCatalogSource{path: path, log: logging.OrDiscard(log)}
}

var _ ports.CatalogSource = (*FileCatalogSource)(nil)

// Path returns the catalog file path
func (s *FileCatalogSource) Path() string { return s.path }

// Load reads and parses the catalog file
func (s *FileCatalogSource) Load(ctx context.Context) (*domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	catalog, err := ParseCatalog(data, s.log.WithField("catalog", s.path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", s.path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes catalog YAML and freezes both registries
func ParseCatalog(data []byte, log logrus.FieldLogger) (*domain.Catalog, error) {
	log = logging.OrDiscard(log)

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	brands, err := buildRegistry(domain.KindBrand, doc.Brands)
	if err != nil {
		return nil, err
	}
	categories, err := buildRegistry(domain.KindCategory, doc.Categories)
	if err != nil {
		return nil, err
	}

	for _, reg := range []*domain.Registry{brands, categories} {
		for _, a := range reg.Aliases() {
			if !reg.Has(a.Target) {
				log.WithFields(logrus.Fields{
					"registry": reg.Kind(),
					"variant":  a.Variant,
					"target":   a.Target,
				}).Warn("alias target is not a registry key")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"brands":     brands.Len(),
		"categories": categories.Len(),
	}).Debug("catalog loaded")

	return &domain.Catalog{Brands: brands, Categories: categories}, nil
}

func buildRegistry(kind domain.Kind, doc registryDocument) (*domain.Registry, error) {
	entries := make([]domain.Entry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		entries = append(entries, domain.Entry{
			Name:  domain.CanonicalName(e.Name),
			Asset: domain.NewAssetHandle(e.Asset),
		})
	}

	aliases := make([]domain.Alias, 0, len(doc.Aliases))
	for _, a := range doc.Aliases {
		aliases = append(aliases, domain.Alias{
			Variant: a.Variant,
			Target:  domain.CanonicalName(a.Target),
		})
	}

	return domain.NewRegistry(kind, entries, aliases, domain.NewAssetHandle(doc.Default))
}
