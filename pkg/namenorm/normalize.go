package namenorm

import "strings"

// Normalize lowercases a free-text name, trims it and collapses every run of
// whitespace into a single space.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// FoldCase lowercases a trimmed name without touching inner whitespace.
func FoldCase(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NameOf converts an untrusted upstream value (typically a decoded JSON
// field) into an optional name. Only strings produce a name; nil, numbers,
// booleans and containers yield nil.
func NameOf(v any) *string {
	switch s := v.(type) {
	case string:
		return &s
	case *string:
		return s
	default:
		return nil
	}
}

// IsBlank reports whether a name normalizes to nothing.
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
