package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports/mocks"
)

func issueKinds(issues []domain.Issue) map[domain.IssueKind][]string {
	out := make(map[domain.IssueKind][]string)
	for _, i := range issues {
		out[i.Kind] = append(out[i.Kind], i.Key)
	}
	return out
}

func TestValidateService_TestCatalog(t *testing.T) {
	svc := NewValidateService(newTestCatalog(t), nil)

	resp, err := svc.Execute(context.Background(), ValidateRequest{})
	require.NoError(t, err)

	kinds := issueKinds(resp.Issues)
	assert.Equal(t, []string{"mi store"}, kinds[domain.IssueSelfAlias])
	assert.Equal(t, []string{"PVR Inox", "levi's"}, kinds[domain.IssueSubstringShadowed])
	assert.Equal(t, []string{"levi's"}, kinds[domain.IssueCaseCollision])
	assert.Equal(t, []string{"apparel"}, kinds[domain.IssueCategoryAliasIgnored])
	assert.Empty(t, kinds[domain.IssueDanglingAlias])

	assert.Equal(t, 0, resp.Errors)
	assert.Equal(t, 3, resp.Warnings)
	assert.Equal(t, 2, resp.Infos)
	assert.False(t, resp.HasErrors())
}

func TestValidateService_AliasDefects(t *testing.T) {
	brands, err := domain.NewRegistry(domain.KindBrand,
		[]domain.Entry{entry("Make My Trip", "brands/mmt.png")},
		[]domain.Alias{
			{Variant: "makemytrip", Target: "Make My Trip"},
			{Variant: "MakeMyTrip", Target: "Make My Trip"},
			{Variant: "mmt", Target: "MakeMyTrip"},
			{Variant: "tata cliq", Target: "tata cliq"},
		},
		domain.NewAssetHandle("brands/default.png"))
	require.NoError(t, err)

	catalog := &domain.Catalog{Brands: brands, Categories: newTestCategoryRegistry(t)}
	resp, err := NewValidateService(catalog, nil).Execute(context.Background(), ValidateRequest{})
	require.NoError(t, err)

	kinds := issueKinds(resp.Issues)
	assert.Equal(t, []string{"MakeMyTrip"}, kinds[domain.IssueAliasNotNormalized])
	assert.Equal(t, []string{"mmt"}, kinds[domain.IssueDanglingAlias])
	assert.Equal(t, []string{"tata cliq"}, kinds[domain.IssueSelfAlias])
	assert.Equal(t, 2, resp.Errors)
	assert.True(t, resp.HasErrors())
}

func TestValidateService_MissingAssetFiles(t *testing.T) {
	store := mocks.NewMockAssetStore()
	store.Add("brands/default.png", "/bundle/brands/default.png")
	store.Add("brands/nike.png", "/bundle/brands/nike.png")
	store.Add("categories/default.png", "/bundle/categories/default.png")

	svc := NewValidateService(newTestCatalog(t), store)

	resp, err := svc.Execute(context.Background(), ValidateRequest{})
	require.NoError(t, err)
	assert.Empty(t, issueKinds(resp.Issues)[domain.IssueMissingAssetFile], "asset files are only checked on request")

	resp, err = svc.Execute(context.Background(), ValidateRequest{CheckAssetFiles: true})
	require.NoError(t, err)

	missing := issueKinds(resp.Issues)[domain.IssueMissingAssetFile]
	// jack_jones.png is shared by three keys but reported once.
	assert.Equal(t, []string{
		"Jack & Jones", "PVR", "PVR Inox", "Make My Trip", "Levi's", "levi's",
		"Fashion", "Food & Dining", "Beauty & Health", "Travel",
	}, missing)
}

func TestValidateService_NoCatalog(t *testing.T) {
	_, err := NewValidateService(nil, nil).Execute(context.Background(), ValidateRequest{})
	assert.Error(t, err)
}
