package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/logging"
	"github.com/kamal-hamza/brandkit/pkg/namenorm"
)

// BrandResolver maps free-text brand names to display assets.
//
// Tiers run in strict order and stop at the first hit:
//  1. exact key (input trimmed, case kept)
//  2. case-insensitive key, first in declaration order
//  3. bidirectional substring on normalized forms, first in declaration order
//  4. alias table on the normalized input
//  5. the registry default
//
// The registry is immutable, so a resolver is safe for concurrent use.
type BrandResolver struct {
	registry *domain.Registry
	log      logrus.FieldLogger
}

// NewBrandResolver creates a resolver over a brand registry
func NewBrandResolver(registry *domain.Registry, log logrus.FieldLogger) *BrandResolver {
	return &BrandResolver{
		registry: registry,
		log:      logging.OrDiscard(log),
	}
}

var _ ports.NameResolver = (*BrandResolver)(nil)

// Default returns the fallback asset
func (r *BrandResolver) Default() domain.AssetHandle {
	return r.registry.Default()
}

// Resolve runs the full cascade and reports which tier matched
func (r *BrandResolver) Resolve(name string) domain.Resolution {
	res := domain.Resolution{Input: name, Kind: domain.KindBrand}

	normalized := namenorm.Normalize(name)
	if normalized == "" {
		return r.fallback(res)
	}

	trimmed := strings.TrimSpace(name)
	if asset, ok := r.registry.Lookup(domain.CanonicalName(trimmed)); ok {
		return matched(res, domain.TierExact, domain.CanonicalName(trimmed), asset)
	}

	if i, ok := matchFolded(r.registry, trimmed); ok {
		e := r.registry.At(i)
		return matched(res, domain.TierCaseInsensitive, e.Name, e.Asset)
	}

	if i, ok := matchSubstring(r.registry, normalized); ok {
		e := r.registry.At(i)
		r.log.WithFields(logrus.Fields{"input": name, "key": e.Name}).Debug("brand matched by substring")
		return matched(res, domain.TierSubstring, e.Name, e.Asset)
	}

	if target, ok := r.registry.AliasTarget(normalized); ok {
		if asset, ok := r.registry.Lookup(target); ok {
			r.log.WithFields(logrus.Fields{"input": name, "key": target}).Debug("brand matched by alias")
			return matched(res, domain.TierAlias, target, asset)
		}
		r.log.WithFields(logrus.Fields{"input": name, "target": target}).Debug("alias target missing from registry")
	}

	return r.fallback(res)
}

// ResolveAsset resolves an optional name; nil yields the default asset
func (r *BrandResolver) ResolveAsset(name *string) domain.AssetHandle {
	if name == nil {
		return r.registry.Default()
	}
	return r.Resolve(*name).Asset
}

// ResolveValue resolves an untrusted upstream value such as a decoded JSON field
func (r *BrandResolver) ResolveValue(v any) domain.AssetHandle {
	return r.ResolveAsset(namenorm.NameOf(v))
}

// HasAsset reports whether the exact, case-insensitive or substring tiers
// match. The alias table is not consulted, so a name reachable only through
// an alias reports false even though Resolve finds a non-default asset.
func (r *BrandResolver) HasAsset(name string) bool {
	normalized := namenorm.Normalize(name)
	if normalized == "" {
		return false
	}
	trimmed := strings.TrimSpace(name)
	if r.registry.Has(domain.CanonicalName(trimmed)) {
		return true
	}
	if _, ok := matchFolded(r.registry, trimmed); ok {
		return true
	}
	_, ok := matchSubstring(r.registry, normalized)
	return ok
}

func (r *BrandResolver) fallback(res domain.Resolution) domain.Resolution {
	r.log.WithField("input", res.Input).Debug("brand fell back to default asset")
	res.Tier = domain.TierDefault
	res.Asset = r.registry.Default()
	return res
}

func matched(res domain.Resolution, tier domain.Tier, key domain.CanonicalName, asset domain.AssetHandle) domain.Resolution {
	res.Tier = tier
	res.MatchedKey = key
	res.Asset = asset
	return res
}

// matchFolded returns the first entry whose lowercase key equals the lowercase input
func matchFolded(reg *domain.Registry, trimmed string) (int, bool) {
	folded := namenorm.FoldCase(trimmed)
	for i := 0; i < reg.Len(); i++ {
		if reg.FoldedKey(i) == folded {
			return i, true
		}
	}
	return 0, false
}

// matchSubstring returns the first entry whose normalized key contains, or is
// contained in, the normalized input. The input must be non-empty.
func matchSubstring(reg *domain.Registry, normalized string) (int, bool) {
	for i := 0; i < reg.Len(); i++ {
		key := reg.NormalizedKey(i)
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return i, true
		}
	}
	return 0, false
}
