package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/namenorm"
)

// ValidateService checks catalog data for curation defects that would
// otherwise degrade silently to the default asset at runtime
type ValidateService struct {
	catalog *domain.Catalog
	assets  ports.AssetStore
}

// NewValidateService creates a validator. assets may be nil, in which case
// asset files are not checked.
func NewValidateService(catalog *domain.Catalog, assets ports.AssetStore) *ValidateService {
	return &ValidateService{
		catalog: catalog,
		assets:  assets,
	}
}

// ValidateRequest selects optional checks
type ValidateRequest struct {
	CheckAssetFiles bool
}

// ValidateResponse lists findings, brands first, in declaration order
type ValidateResponse struct {
	Issues   []domain.Issue
	Errors   int
	Warnings int
	Infos    int
}

// HasErrors reports whether any finding is an error
func (r *ValidateResponse) HasErrors() bool {
	return r.Errors > 0
}

// Execute runs every check over both registries
func (s *ValidateService) Execute(ctx context.Context, req ValidateRequest) (*ValidateResponse, error) {
	if s.catalog == nil || s.catalog.Brands == nil || s.catalog.Categories == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}

	var issues []domain.Issue
	for _, reg := range []*domain.Registry{s.catalog.Brands, s.catalog.Categories} {
		if reg.Kind() == domain.KindCategory {
			issues = append(issues, ignoredAliases(reg)...)
		} else {
			issues = append(issues, checkAliases(reg)...)
		}
		issues = append(issues, caseCollisions(reg)...)
		issues = append(issues, shadowedEntries(reg)...)

		if req.CheckAssetFiles && s.assets != nil {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			issues = append(issues, s.missingAssetFiles(ctx, reg)...)
		}
	}

	resp := &ValidateResponse{Issues: issues}
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityError:
			resp.Errors++
		case domain.SeverityWarning:
			resp.Warnings++
		default:
			resp.Infos++
		}
	}
	return resp, nil
}

func checkAliases(reg *domain.Registry) []domain.Issue {
	var issues []domain.Issue
	for _, a := range reg.Aliases() {
		if a.Variant != namenorm.Normalize(a.Variant) {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Kind:     domain.IssueAliasNotNormalized,
				Registry: reg.Kind(),
				Key:      a.Variant,
				Detail:   fmt.Sprintf("lookups use %q; this variant can never match", namenorm.Normalize(a.Variant)),
			})
		}

		if reg.Has(a.Target) {
			continue
		}
		if namenorm.Normalize(string(a.Target)) == a.Variant {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Kind:     domain.IssueSelfAlias,
				Registry: reg.Kind(),
				Key:      a.Variant,
				Detail:   "alias points at itself and no registry key has that name",
			})
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Kind:     domain.IssueDanglingAlias,
			Registry: reg.Kind(),
			Key:      a.Variant,
			Detail:   fmt.Sprintf("target %q is not a registry key", a.Target),
		})
	}
	return issues
}

func ignoredAliases(reg *domain.Registry) []domain.Issue {
	var issues []domain.Issue
	for _, a := range reg.Aliases() {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Kind:     domain.IssueCategoryAliasIgnored,
			Registry: reg.Kind(),
			Key:      a.Variant,
			Detail:   fmt.Sprintf("category resolution has no alias tier; %q -> %q is never used", a.Variant, a.Target),
		})
	}
	return issues
}

// caseCollisions flags keys that fold to an earlier key but carry a different
// asset; the case-insensitive tier always returns the earlier one.
func caseCollisions(reg *domain.Registry) []domain.Issue {
	var issues []domain.Issue
	first := make(map[string]int, reg.Len())
	for i := 0; i < reg.Len(); i++ {
		folded := reg.FoldedKey(i)
		j, seen := first[folded]
		if !seen {
			first[folded] = i
			continue
		}
		earlier, current := reg.At(j), reg.At(i)
		if earlier.Asset != current.Asset {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Kind:     domain.IssueCaseCollision,
				Registry: reg.Kind(),
				Key:      string(current.Name),
				Detail:   fmt.Sprintf("case-insensitive lookups return %q (%s)", earlier.Name, earlier.Asset),
			})
		}
	}
	return issues
}

// shadowedEntries flags keys containing an earlier, differently-assetted key:
// any input containing the later key hits the earlier one first in the substring tier.
func shadowedEntries(reg *domain.Registry) []domain.Issue {
	var issues []domain.Issue
	for j := 0; j < reg.Len(); j++ {
		later := reg.NormalizedKey(j)
		for i := 0; i < j; i++ {
			if reg.At(i).Asset == reg.At(j).Asset {
				continue
			}
			if strings.Contains(later, reg.NormalizedKey(i)) {
				issues = append(issues, domain.Issue{
					Severity: domain.SeverityInfo,
					Kind:     domain.IssueSubstringShadowed,
					Registry: reg.Kind(),
					Key:      string(reg.At(j).Name),
					Detail:   fmt.Sprintf("fuzzy inputs containing it resolve to earlier key %q", reg.At(i).Name),
				})
				break
			}
		}
	}
	return issues
}

func (s *ValidateService) missingAssetFiles(ctx context.Context, reg *domain.Registry) []domain.Issue {
	var issues []domain.Issue
	checked := make(map[domain.AssetHandle]bool)

	check := func(key string, asset domain.AssetHandle) {
		if checked[asset] {
			return
		}
		checked[asset] = true
		if !s.assets.Exists(ctx, asset) {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Kind:     domain.IssueMissingAssetFile,
				Registry: reg.Kind(),
				Key:      key,
				Detail:   fmt.Sprintf("asset file %s not found", asset),
			})
		}
	}

	check("(default)", reg.Default())
	for _, e := range reg.Entries() {
		check(string(e.Name), e.Asset)
	}
	return issues
}
