package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{Name: "Nike", Asset: NewAssetHandle("brands/nike.png")},
		{Name: "Jack & Jones", Asset: NewAssetHandle("brands/jack_jones.png")},
		{Name: "jack & jones", Asset: NewAssetHandle("brands/jack_jones.png")},
	}
}

func TestNewRegistry(t *testing.T) {
	def := NewAssetHandle("brands/default.png")

	tests := []struct {
		name    string
		entries []Entry
		aliases []Alias
		def     AssetHandle
		wantErr error
	}{
		{
			name:    "valid registry",
			entries: testEntries(),
			aliases: []Alias{{Variant: "jackjones", Target: "Jack & Jones"}},
			def:     def,
		},
		{
			name:    "missing default",
			entries: testEntries(),
			def:     AssetHandle{},
			wantErr: ErrNoDefault,
		},
		{
			name: "duplicate key",
			entries: []Entry{
				{Name: "Nike", Asset: NewAssetHandle("a.png")},
				{Name: "Nike", Asset: NewAssetHandle("b.png")},
			},
			def:     def,
			wantErr: ErrDuplicateKey,
		},
		{
			name:    "blank key",
			entries: []Entry{{Name: "   ", Asset: NewAssetHandle("a.png")}},
			def:     def,
			wantErr: ErrEmptyKey,
		},
		{
			name:    "leading whitespace in key",
			entries: []Entry{{Name: " Nike", Asset: NewAssetHandle("a.png")}},
			def:     def,
			wantErr: ErrUntrimmedKey,
		},
		{
			name:    "trailing whitespace in key",
			entries: []Entry{{Name: "Nike\t", Asset: NewAssetHandle("a.png")}},
			def:     def,
			wantErr: ErrUntrimmedKey,
		},
		{
			name:    "entry without asset",
			entries: []Entry{{Name: "Nike"}},
			def:     def,
			wantErr: ErrMissingAsset,
		},
		{
			name:    "duplicate alias",
			entries: testEntries(),
			aliases: []Alias{
				{Variant: "jackjones", Target: "Jack & Jones"},
				{Variant: "jackjones", Target: "jack & jones"},
			},
			def:     def,
			wantErr: ErrDuplicateAlias,
		},
		{
			name:    "dangling alias is not a load error",
			entries: testEntries(),
			aliases: []Alias{{Variant: "adidas", Target: "Adidas"}},
			def:     def,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(KindBrand, tt.entries, tt.aliases, tt.def)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistry_PreservesDeclarationOrder(t *testing.T) {
	r, err := NewRegistry(KindBrand, testEntries(), nil, NewAssetHandle("default.png"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	want := []CanonicalName{"Nike", "Jack & Jones", "jack & jones"}
	got := r.Entries()
	if len(got) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i].Name, want[i])
		}
		if r.At(i).Name != want[i] {
			t.Errorf("At(%d) = %q, want %q", i, r.At(i).Name, want[i])
		}
	}

	if r.FoldedKey(1) != "jack & jones" {
		t.Errorf("FoldedKey(1) = %q", r.FoldedKey(1))
	}
	if r.NormalizedKey(0) != "nike" {
		t.Errorf("NormalizedKey(0) = %q", r.NormalizedKey(0))
	}
}

func TestRegistry_EntriesIsACopy(t *testing.T) {
	r, err := NewRegistry(KindBrand, testEntries(), nil, NewAssetHandle("default.png"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	entries := r.Entries()
	entries[0].Name = "Mutated"

	if _, ok := r.Lookup("Nike"); !ok {
		t.Error("mutating Entries() result changed the registry")
	}
	if r.At(0).Name != "Nike" {
		t.Errorf("At(0) = %q after mutation, want Nike", r.At(0).Name)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := NewRegistry(KindBrand, testEntries(),
		[]Alias{{Variant: "jackjones", Target: "Jack & Jones"}},
		NewAssetHandle("default.png"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if asset, ok := r.Lookup("Nike"); !ok || asset.Path() != "brands/nike.png" {
		t.Errorf("Lookup(Nike) = %v, %v", asset, ok)
	}
	if _, ok := r.Lookup("nike"); ok {
		t.Error("Lookup should be case-sensitive")
	}
	if target, ok := r.AliasTarget("jackjones"); !ok || target != "Jack & Jones" {
		t.Errorf("AliasTarget(jackjones) = %q, %v", target, ok)
	}
	if r.Default().Path() != "default.png" {
		t.Errorf("Default() = %q", r.Default())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"brand", KindBrand},
		{"", KindBrand},
		{"Category", KindCategory},
		{" categories ", KindCategory},
		{"cat", KindCategory},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.input); got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTierString(t *testing.T) {
	want := []string{"exact", "case-insensitive", "substring", "alias", "default"}
	for i, tier := range AllTiers() {
		if tier.String() != want[i] {
			t.Errorf("Tier(%d).String() = %q, want %q", tier, tier.String(), want[i])
		}
	}
	if Tier(0).String() != "unknown" {
		t.Errorf("zero Tier should render as unknown")
	}
}

func TestTierTextRoundTrip(t *testing.T) {
	for _, tier := range AllTiers() {
		text, err := tier.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tier, err)
		}
		var got Tier
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != tier {
			t.Errorf("round trip of %v gave %v", tier, got)
		}
	}

	var bad Tier
	if err := bad.UnmarshalText([]byte("fuzzy")); err == nil {
		t.Error("expected error for unknown tier name")
	}
}

func TestResolutionJSONRoundTrip(t *testing.T) {
	want := Resolution{
		Input:      "PVR Inox Cinemas",
		Kind:       KindBrand,
		Asset:      NewAssetHandle("brands/pvr.png"),
		Tier:       TierSubstring,
		MatchedKey: "PVR",
	}

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Resolution
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal(%s): %v", data, err)
	}
	if got != want {
		t.Errorf("round trip gave %+v, want %+v", got, want)
	}
	if got.Asset.Path() != "brands/pvr.png" {
		t.Errorf("asset path = %q, want brands/pvr.png", got.Asset.Path())
	}
}
