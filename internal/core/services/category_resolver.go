package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/logging"
	"github.com/kamal-hamza/brandkit/pkg/namenorm"
)

// CategoryResolver maps category names to icons. Categories come from a small
// closed taxonomy, so the cascade is just exact match then substring match.
type CategoryResolver struct {
	registry *domain.Registry
	log      logrus.FieldLogger
}

// NewCategoryResolver creates a resolver over a category registry
func NewCategoryResolver(registry *domain.Registry, log logrus.FieldLogger) *CategoryResolver {
	return &CategoryResolver{
		registry: registry,
		log:      logging.OrDiscard(log),
	}
}

var _ ports.NameResolver = (*CategoryResolver)(nil)

// Default returns the fallback icon
func (r *CategoryResolver) Default() domain.AssetHandle {
	return r.registry.Default()
}

// Resolve runs the two-tier category cascade
func (r *CategoryResolver) Resolve(name string) domain.Resolution {
	res := domain.Resolution{Input: name, Kind: domain.KindCategory}

	normalized := namenorm.Normalize(name)
	if normalized != "" {
		trimmed := strings.TrimSpace(name)
		if asset, ok := r.registry.Lookup(domain.CanonicalName(trimmed)); ok {
			return matched(res, domain.TierExact, domain.CanonicalName(trimmed), asset)
		}
		if i, ok := matchSubstring(r.registry, normalized); ok {
			e := r.registry.At(i)
			return matched(res, domain.TierSubstring, e.Name, e.Asset)
		}
	}

	r.log.WithField("input", name).Debug("category fell back to default icon")
	res.Tier = domain.TierDefault
	res.Asset = r.registry.Default()
	return res
}

// ResolveAsset resolves an optional name; nil yields the default icon
func (r *CategoryResolver) ResolveAsset(name *string) domain.AssetHandle {
	if name == nil {
		return r.registry.Default()
	}
	return r.Resolve(*name).Asset
}

// ResolveValue resolves an untrusted upstream value
func (r *CategoryResolver) ResolveValue(v any) domain.AssetHandle {
	return r.ResolveAsset(namenorm.NameOf(v))
}

// HasAsset reports whether either category tier matches
func (r *CategoryResolver) HasAsset(name string) bool {
	return !r.Resolve(name).IsDefault()
}
