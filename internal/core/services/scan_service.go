package services

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/logging"
)

// Default field names found in transaction payloads
var (
	DefaultBrandFields    = []string{"brandName", "brand"}
	DefaultCategoryFields = []string{"categoryName", "category"}
)

// ScanService resolves every brand and category field in captured JSON payloads
type ScanService struct {
	brands         ports.NameResolver
	categories     ports.NameResolver
	brandFields    map[string]bool
	categoryFields map[string]bool
	log            logrus.FieldLogger
}

// NewScanService creates a new scan service. Empty field lists fall back to the defaults.
func NewScanService(brands, categories ports.NameResolver, brandFields, categoryFields []string, log logrus.FieldLogger) *ScanService {
	if len(brandFields) == 0 {
		brandFields = DefaultBrandFields
	}
	if len(categoryFields) == 0 {
		categoryFields = DefaultCategoryFields
	}
	return &ScanService{
		brands:         brands,
		categories:     categories,
		brandFields:    fieldSet(brandFields),
		categoryFields: fieldSet(categoryFields),
		log:            logging.OrDiscard(log),
	}
}

func fieldSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// Source is one captured JSON document
type Source struct {
	Name string
	Data []byte
}

// ScanRequest represents a scan over several documents
type ScanRequest struct {
	Sources []Source
	Workers int // 0 means GOMAXPROCS
}

// ScanMatch is one resolved field occurrence
type ScanMatch struct {
	Path       string // gjson path of the field
	Field      string
	Resolution domain.Resolution
}

// SourceResult holds the matches for one document, in document order
type SourceResult struct {
	Name    string
	Matches []ScanMatch
	Err     error
}

// ScanResponse represents the outcome of a scan
type ScanResponse struct {
	Results    []SourceResult
	TierCounts map[domain.Kind]map[domain.Tier]int
	Defaults   []ScanMatch // matches that fell back to the default asset
	Total      int
	Failed     int
}

// Execute scans all sources concurrently. A malformed document is reported on
// its own result and does not stop the others.
func (s *ScanService) Execute(ctx context.Context, req ScanRequest) (*ScanResponse, error) {
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]SourceResult, len(req.Sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, src := range req.Sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanSource(src)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}

	resp := &ScanResponse{
		Results: results,
		TierCounts: map[domain.Kind]map[domain.Tier]int{
			domain.KindBrand:    {},
			domain.KindCategory: {},
		},
	}
	for _, r := range results {
		if r.Err != nil {
			resp.Failed++
			continue
		}
		for _, m := range r.Matches {
			resp.TierCounts[m.Resolution.Kind][m.Resolution.Tier]++
			resp.Total++
			if m.Resolution.IsDefault() {
				resp.Defaults = append(resp.Defaults, m)
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"sources": len(req.Sources),
		"matches": resp.Total,
		"failed":  resp.Failed,
	}).Debug("scan complete")

	return resp, nil
}

func (s *ScanService) scanSource(src Source) SourceResult {
	result := SourceResult{Name: src.Name}
	if !gjson.ValidBytes(src.Data) {
		result.Err = fmt.Errorf("%s: invalid JSON", src.Name)
		s.log.WithField("source", src.Name).Warn("skipping invalid JSON document")
		return result
	}

	s.walk(gjson.ParseBytes(src.Data), "", &result.Matches)
	return result
}

// walk visits objects and arrays depth first, in document order
func (s *ScanService) walk(node gjson.Result, path string, out *[]ScanMatch) {
	if !node.IsObject() && !node.IsArray() {
		return
	}

	isObject := node.IsObject()
	index := 0

	node.ForEach(func(key, value gjson.Result) bool {
		field := strconv.Itoa(index)
		if isObject {
			field = key.String()
		}
		index++
		childPath := joinPath(path, field)

		if isObject {
			switch {
			case s.brandFields[field]:
				*out = append(*out, ScanMatch{Path: childPath, Field: field, Resolution: resolveField(s.brands, domain.KindBrand, value)})
			case s.categoryFields[field]:
				*out = append(*out, ScanMatch{Path: childPath, Field: field, Resolution: resolveField(s.categories, domain.KindCategory, value)})
			}
		}

		s.walk(value, childPath, out)
		return true
	})
}

// resolveField treats anything other than a JSON string as a missing name
func resolveField(r ports.NameResolver, kind domain.Kind, value gjson.Result) domain.Resolution {
	if value.Type == gjson.String {
		res := r.Resolve(value.String())
		res.Kind = kind
		return res
	}
	return domain.Resolution{
		Input: value.Raw,
		Kind:  kind,
		Asset: r.ResolveValue(value.Value()),
		Tier:  domain.TierDefault,
	}
}

func joinPath(parent, key string) string {
	key = escapePathKey(key)
	if parent == "" {
		return key
	}
	return parent + "." + key
}

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

func escapePathKey(key string) string {
	return pathEscaper.Replace(key)
}
