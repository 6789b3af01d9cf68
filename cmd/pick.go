package cmd

import (
	"errors"
	"fmt"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	pickCategory bool
	pickCopy     bool
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Fuzzy-find a catalog entry and print its asset",
	Long: `Interactively search catalog entries.

The preview pane shows the entry's asset, the aliases that reach it and
the other spellings sharing the same asset.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVarP(&pickCategory, "category", "c", false, "Pick from categories instead of brands")
	pickCmd.Flags().BoolVar(&pickCopy, "copy", false, "Copy the picked asset path to the clipboard")
}

func runPick(cmd *cobra.Command, args []string) error {
	reg := catalog.Registry(kindFor(pickCategory))
	entries := reg.Entries()
	if len(entries) == 0 {
		fmt.Println(ui.FormatWarning("Catalog is empty"))
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return string(entries[i].Name)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return entryPreview(reg, entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return fmt.Errorf("picker failed: %w", err)
	}

	picked := entries[idx]
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatBrand(string(picked.Name)))
	fmt.Fprintln(out, picked.Asset.Path())

	if shouldCopy(pickCopy) {
		copyToClipboard(cmd.ErrOrStderr(), picked.Asset.Path())
	}
	return nil
}

// entryPreview lists the entry's asset, the aliases that reach it and other
// keys sharing its asset
func entryPreview(reg *domain.Registry, e domain.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:  %s\n", e.Name)
	fmt.Fprintf(&b, "Asset: %s\n", e.Asset.Path())

	var aliases []string
	for _, a := range reg.Aliases() {
		if a.Target == e.Name {
			aliases = append(aliases, a.Variant)
		}
	}
	if len(aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases:\n  %s\n", strings.Join(aliases, "\n  "))
	}

	var siblings []string
	for _, other := range reg.Entries() {
		if other.Name != e.Name && other.Asset == e.Asset {
			siblings = append(siblings, string(other.Name))
		}
	}
	if len(siblings) > 0 {
		fmt.Fprintf(&b, "\nSame asset:\n  %s\n", strings.Join(siblings, "\n  "))
	}
	return b.String()
}
