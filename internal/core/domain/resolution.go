package domain

import "fmt"

// Tier identifies which step of the lookup cascade produced a result
type Tier int

const (
	TierExact Tier = iota + 1
	TierCaseInsensitive
	TierSubstring
	TierAlias
	TierDefault
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCaseInsensitive:
		return "case-insensitive"
	case TierSubstring:
		return "substring"
	case TierAlias:
		return "alias"
	case TierDefault:
		return "default"
	default:
		return "unknown"
	}
}

// MarshalText renders tiers by name in JSON output
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText
func (t *Tier) UnmarshalText(text []byte) error {
	for _, candidate := range AllTiers() {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", text)
}

// AllTiers lists tiers in cascade order
func AllTiers() []Tier {
	return []Tier{TierExact, TierCaseInsensitive, TierSubstring, TierAlias, TierDefault}
}

// Resolution is the outcome of resolving one name
type Resolution struct {
	Input      string        `json:"input"`
	Kind       Kind          `json:"kind"`
	Asset      AssetHandle   `json:"asset"`
	Tier       Tier          `json:"tier"`
	MatchedKey CanonicalName `json:"matched_key,omitempty"`
}

// IsDefault reports whether resolution fell through to the default asset
func (r Resolution) IsDefault() bool {
	return r.Tier == TierDefault
}
