package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
)

func entry(name, asset string) domain.Entry {
	return domain.Entry{Name: domain.CanonicalName(name), Asset: domain.NewAssetHandle(asset)}
}

// newTestBrandRegistry pins a literal declaration order; several tests rely on it.
func newTestBrandRegistry(t *testing.T) *domain.Registry {
	t.Helper()

	reg, err := domain.NewRegistry(domain.KindBrand,
		[]domain.Entry{
			entry("Nike", "brands/nike.png"),
			entry("Jack & Jones", "brands/jack_jones.png"),
			entry("jack & jones", "brands/jack_jones.png"),
			entry("Jack and Jones", "brands/jack_jones.png"),
			entry("PVR", "brands/pvr.png"),
			entry("PVR Inox", "brands/pvr_inox.png"),
			entry("Make My Trip", "brands/makemytrip.png"),
			entry("Levi's", "brands/levis.png"),
			entry("levi's", "brands/levis_lower.png"),
		},
		[]domain.Alias{
			{Variant: "makemytrip", Target: "Make My Trip"},
			{Variant: "mmt", Target: "Make My Trip"},
			{Variant: "mi store", Target: "mi store"},
		},
		domain.NewAssetHandle("brands/default.png"),
	)
	require.NoError(t, err)
	return reg
}

func newTestCategoryRegistry(t *testing.T) *domain.Registry {
	t.Helper()

	reg, err := domain.NewRegistry(domain.KindCategory,
		[]domain.Entry{
			entry("Fashion", "categories/fashion.png"),
			entry("fashion", "categories/fashion.png"),
			entry("Food & Dining", "categories/food.png"),
			entry("Beauty & Health", "categories/beauty.png"),
			entry("Travel", "categories/travel.png"),
		},
		[]domain.Alias{{Variant: "apparel", Target: "Fashion"}},
		domain.NewAssetHandle("categories/default.png"),
	)
	require.NoError(t, err)
	return reg
}

func newTestCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	return &domain.Catalog{
		Brands:     newTestBrandRegistry(t),
		Categories: newTestCategoryRegistry(t),
	}
}
