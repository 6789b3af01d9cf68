package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/pkg/namenorm"
)

// ListService handles listing and searching catalog entries
type ListService struct {
	catalog *domain.Catalog
}

// NewListService creates a new list service
func NewListService(catalog *domain.Catalog) *ListService {
	return &ListService{
		catalog: catalog,
	}
}

// ListRequest represents a request to list a registry
type ListRequest struct {
	Kind    domain.Kind
	SortBy  string // "declared", "name", "asset" (default: declared)
	Reverse bool
}

// ListResponse represents the entries of one registry
type ListResponse struct {
	Entries []domain.Entry
	Aliases []domain.Alias
	Default domain.AssetHandle
	Total   int
}

// Execute lists registry entries with optional sorting
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	reg, err := s.registry(req.Kind)
	if err != nil {
		return nil, err
	}

	entries := sortEntries(reg.Entries(), req.SortBy, req.Reverse)

	return &ListResponse{
		Entries: entries,
		Aliases: reg.Aliases(),
		Default: reg.Default(),
		Total:   len(entries),
	}, nil
}

func (s *ListService) registry(kind domain.Kind) (*domain.Registry, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}
	reg := s.catalog.Registry(kind)
	if reg == nil {
		return nil, fmt.Errorf("no %s registry in catalog", kind)
	}
	return reg, nil
}

func sortEntries(entries []domain.Entry, sortBy string, reverse bool) []domain.Entry {
	switch sortBy {
	case "name":
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(string(entries[i].Name)) < strings.ToLower(string(entries[j].Name))
		})
	case "asset":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Asset.Path() < entries[j].Asset.Path()
		})
	default: // "declared"
	}

	if reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}

// SearchRequest represents a fuzzy search over one registry
type SearchRequest struct {
	Kind  domain.Kind
	Query string
	Limit int // 0 means no limit
}

// SearchResponse represents ranked search results
type SearchResponse struct {
	Entries []domain.Entry
	Total   int
}

// Search ranks entries by how well their name (or asset path) matches the query
func (s *ListService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	reg, err := s.registry(req.Kind)
	if err != nil {
		return nil, err
	}

	entries := reg.Entries()
	if namenorm.IsBlank(req.Query) {
		return &SearchResponse{Entries: limit(entries, req.Limit), Total: len(entries)}, nil
	}

	matches := rankEntries(entries, strings.TrimSpace(req.Query))
	return &SearchResponse{
		Entries: limit(matches, req.Limit),
		Total:   len(matches),
	}, nil
}

func limit(entries []domain.Entry, n int) []domain.Entry {
	if n > 0 && len(entries) > n {
		return entries[:n]
	}
	return entries
}

// scoredEntry represents a scored match
type scoredEntry struct {
	entry domain.Entry
	score int
}

// rankEntries scores entries by name first, falling back to the asset path.
// Ties keep declaration order.
func rankEntries(entries []domain.Entry, query string) []domain.Entry {
	var matches []scoredEntry

	for _, e := range entries {
		if score := fuzzyMatchScore(string(e.Name), query); score > 0 {
			matches = append(matches, scoredEntry{entry: e, score: score + 1000})
			continue
		}
		if score := fuzzyMatchScore(e.Asset.Path(), query); score > 0 {
			matches = append(matches, scoredEntry{entry: e, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.Entry, len(matches))
	for i, m := range matches {
		result[i] = m.entry
	}
	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text.
// Returns 0 if no match, higher scores for better matches.
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	if text == query {
		return 10000
	}

	textNorm := namenorm.Normalize(text)
	queryNorm := namenorm.Normalize(query)
	if queryNorm == "" {
		return 0
	}

	if textNorm == queryNorm {
		return 9000
	}

	if strings.Contains(textNorm, queryNorm) {
		score := 5000
		if strings.HasPrefix(textNorm, queryNorm) {
			score += 2000
		}
		return score
	}

	// Subsequence match with bonuses for runs and word starts
	textRunes := []rune(textNorm)
	queryRunes := []rune(queryNorm)

	score := 0
	qi := 0
	run := 0
	last := -1

	for ti := 0; ti < len(textRunes) && qi < len(queryRunes); ti++ {
		if textRunes[ti] != queryRunes[qi] {
			continue
		}

		score += 100
		if ti == last+1 {
			run++
			score += run * 50
		} else {
			run = 0
		}

		if ti == 0 || isWordBreak(textRunes[ti-1]) {
			score += 200
		}
		if ti == 0 {
			score += 300
		}

		last = ti
		qi++
	}

	if qi != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matched characters
	score -= (last + 1 - len(queryRunes)) * 10
	if score < 1 {
		score = 1
	}
	return score
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '/' || r == '&' || r == '.'
}
