package domain

import "fmt"

// Severity ranks catalog validation findings
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalText renders severities by name in JSON output
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IssueKind classifies a catalog data problem
type IssueKind string

const (
	IssueDanglingAlias        IssueKind = "dangling-alias"
	IssueSelfAlias            IssueKind = "self-alias"
	IssueAliasNotNormalized   IssueKind = "alias-not-normalized"
	IssueCategoryAliasIgnored IssueKind = "category-alias-ignored"
	IssueCaseCollision        IssueKind = "case-collision"
	IssueSubstringShadowed    IssueKind = "substring-shadowed"
	IssueMissingAssetFile     IssueKind = "missing-asset-file"
)

// Issue is one finding from catalog validation
type Issue struct {
	Severity Severity  `json:"severity"`
	Kind     IssueKind `json:"kind"`
	Registry Kind      `json:"registry"`
	Key      string    `json:"key"`
	Detail   string    `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s %s %q: %s", i.Severity, i.Registry, i.Kind, i.Key, i.Detail)
}
