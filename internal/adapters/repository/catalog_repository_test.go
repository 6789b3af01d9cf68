package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/services"
	"github.com/kamal-hamza/brandkit/pkg/logging"
)

func loadBundled(t *testing.T) *domain.Catalog {
	t.Helper()
	catalog, err := NewEmbeddedCatalogSource(nil).Load(context.Background())
	require.NoError(t, err)
	return catalog
}

func TestEmbeddedCatalog_Loads(t *testing.T) {
	catalog := loadBundled(t)

	assert.Equal(t, domain.KindBrand, catalog.Brands.Kind())
	assert.Equal(t, domain.KindCategory, catalog.Categories.Kind())
	assert.Greater(t, catalog.Brands.Len(), 50)
	assert.Greater(t, catalog.Categories.Len(), 10)
	assert.Equal(t, "brands/default.png", catalog.Brands.Default().Path())
	assert.Equal(t, "categories/default.png", catalog.Categories.Default().Path())

	// declaration order survives parsing
	assert.Equal(t, domain.CanonicalName("Amazon"), catalog.Brands.At(0).Name)
	assert.Equal(t, domain.CanonicalName("Fashion"), catalog.Categories.At(0).Name)
}

func TestEmbeddedCatalog_PVRDeclaredBeforePVRInox(t *testing.T) {
	catalog := loadBundled(t)

	pvr, inox := -1, -1
	for i, e := range catalog.Brands.Entries() {
		switch e.Name {
		case "PVR":
			pvr = i
		case "PVR Inox":
			inox = i
		}
	}
	require.NotEqual(t, -1, pvr)
	require.NotEqual(t, -1, inox)
	assert.Less(t, pvr, inox)
}

func TestEmbeddedCatalog_BrandLookups(t *testing.T) {
	catalog := loadBundled(t)
	r := services.NewBrandResolver(catalog.Brands, nil)

	tests := []struct {
		input     string
		wantTier  domain.Tier
		wantAsset string
	}{
		{"Nike", domain.TierExact, "brands/nike.png"},
		{"NIKE", domain.TierCaseInsensitive, "brands/nike.png"},
		{"h&m", domain.TierCaseInsensitive, "brands/hm.png"},
		{"  jack   &   jones ", domain.TierSubstring, "brands/jack_jones.png"},
		{"PVR Inox Cinemas", domain.TierSubstring, "brands/pvr.png"},
		{"PVR Inox", domain.TierExact, "brands/pvr_inox.png"},
		{"makemytrip", domain.TierAlias, "brands/makemytrip.png"},
		{"mmt", domain.TierAlias, "brands/makemytrip.png"},
		{"gpay", domain.TierAlias, "brands/google_pay.png"},
		{"Amazon Pay", domain.TierSubstring, "brands/amazon.png"},
		{"Coca-Cola", domain.TierDefault, "brands/default.png"},
		{"ThisBrandDoesNotExist12345", domain.TierDefault, "brands/default.png"},
		{"", domain.TierDefault, "brands/default.png"},
		{"   ", domain.TierDefault, "brands/default.png"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := r.Resolve(tt.input)
			assert.Equal(t, tt.wantTier, res.Tier)
			assert.Equal(t, tt.wantAsset, res.Asset.Path())
		})
	}
}

func TestEmbeddedCatalog_HasAssetIgnoresAliases(t *testing.T) {
	catalog := loadBundled(t)
	r := services.NewBrandResolver(catalog.Brands, nil)

	assert.False(t, r.HasAsset("makemytrip"))
	assert.False(t, r.Resolve("makemytrip").IsDefault())
	assert.True(t, r.HasAsset("PVR Inox Cinemas"))
	assert.False(t, r.HasAsset("Coca-Cola"))
}

func TestEmbeddedCatalog_CategoryLookups(t *testing.T) {
	catalog := loadBundled(t)
	r := services.NewCategoryResolver(catalog.Categories, nil)

	tests := []struct {
		input     string
		wantTier  domain.Tier
		wantAsset string
	}{
		{"fashion", domain.TierExact, "categories/fashion.png"},
		{"  Fashion ", domain.TierExact, "categories/fashion.png"},
		{"Fashion & Apparel", domain.TierSubstring, "categories/fashion.png"},
		{"FASHION", domain.TierSubstring, "categories/fashion.png"},
		{"Health", domain.TierSubstring, "categories/beauty.png"},
		{"nothing here", domain.TierDefault, "categories/default.png"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := r.Resolve(tt.input)
			assert.Equal(t, tt.wantTier, res.Tier)
			assert.Equal(t, tt.wantAsset, res.Asset.Path())
		})
	}
}

// Every alias must point at a registry key. Self-referential placeholders are
// the only tolerated exception and must show up as warnings.
func TestEmbeddedCatalog_AliasIntegrity(t *testing.T) {
	catalog := loadBundled(t)

	var selfAliases []string
	for _, a := range catalog.Brands.Aliases() {
		if a.Variant == string(a.Target) {
			selfAliases = append(selfAliases, a.Variant)
			continue
		}
		assert.True(t, catalog.Brands.Has(a.Target), "alias %q targets missing key %q", a.Variant, a.Target)
	}
	assert.Equal(t, []string{"mi store", "nykaa fashion"}, selfAliases)

	resp, err := services.NewValidateService(catalog, nil).Execute(context.Background(), services.ValidateRequest{})
	require.NoError(t, err)

	assert.False(t, resp.HasErrors(), "bundled catalog has errors: %v", resp.Issues)

	var reportedSelf []string
	for _, issue := range resp.Issues {
		if issue.Kind == domain.IssueSelfAlias {
			assert.Equal(t, domain.SeverityWarning, issue.Severity)
			reportedSelf = append(reportedSelf, issue.Key)
		}
	}
	assert.Equal(t, selfAliases, reportedSelf)
}

func TestEmbeddedCatalog_KnownIssues(t *testing.T) {
	catalog := loadBundled(t)

	resp, err := services.NewValidateService(catalog, nil).Execute(context.Background(), services.ValidateRequest{})
	require.NoError(t, err)

	var got []string
	for _, issue := range resp.Issues {
		got = append(got, string(issue.Kind)+":"+issue.Key)
	}
	assert.Equal(t, []string{
		"self-alias:mi store",
		"self-alias:nykaa fashion",
		"substring-shadowed:PVR Inox",
	}, got)
}

func TestEmbeddedCatalogBytes_IsCopy(t *testing.T) {
	a := EmbeddedCatalogBytes()
	require.NotEmpty(t, a)
	a[0] = 'X'
	assert.NotEqual(t, a[0], EmbeddedCatalogBytes()[0])
}

const smallCatalog = `
brands:
  default: brands/default.png
  entries:
    - { name: "Acme", asset: brands/acme.png }
  aliases:
    - { variant: "acme corp", target: "Acme" }
    - { variant: "ghost", target: "Ghost" }
categories:
  default: categories/default.png
  entries:
    - { name: "Tools", asset: categories/tools.png }
`

func TestFileCatalogSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0644))

	var buf bytes.Buffer
	log := logging.New("warn", "text", &buf)

	src := NewFileCatalogSource(path, log)
	assert.Equal(t, path, src.Path())

	catalog, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.Brands.Len())
	target, ok := catalog.Brands.AliasTarget("acme corp")
	assert.True(t, ok)
	assert.Equal(t, domain.CanonicalName("Acme"), target)

	// dangling alias loads but is logged
	assert.Contains(t, buf.String(), "alias target is not a registry key")
	assert.Contains(t, buf.String(), "ghost")
}

func TestFileCatalogSource_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing file", "", "failed to read catalog file"},
		{"invalid yaml", "brands: [", "failed to parse catalog"},
		{"missing default", "brands:\n  entries:\n    - { name: A, asset: a.png }\ncategories:\n  default: c.png\n", "no default"},
		{"duplicate key", "brands:\n  default: d.png\n  entries:\n    - { name: A, asset: a.png }\n    - { name: A, asset: b.png }\ncategories:\n  default: c.png\n", "duplicate registry key"},
		{"untrimmed key", "brands:\n  default: d.png\n  entries:\n    - { name: \" A\", asset: a.png }\ncategories:\n  default: c.png\n", "leading or trailing whitespace"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if i > 0 {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			_, err := NewFileCatalogSource(path, logrus.New()).Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
