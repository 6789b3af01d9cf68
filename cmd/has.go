package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var hasCategory bool

// hasCmd represents the has command
var hasCmd = &cobra.Command{
	Use:   "has <name>...",
	Short: "Check whether names have a dedicated asset",
	Long: `Report whether each name matches a catalog entry without falling back.

For brands only the exact, case-insensitive and substring tiers count: a
name that is reachable only through the alias table reports "no" here even
though 'bk resolve' finds its asset.

Exits non-zero when any name has no dedicated asset.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHas,
}

func init() {
	hasCmd.Flags().BoolVarP(&hasCategory, "category", "c", false, "Check category names instead of brands")
}

func runHas(cmd *cobra.Command, args []string) error {
	resolver := resolverFor(hasCategory)
	out := cmd.OutOrStdout()

	missing := 0
	for _, name := range args {
		if resolver.HasAsset(name) {
			fmt.Fprintln(out, ui.FormatSuccess(displayInput(name)))
			continue
		}
		missing++
		fmt.Fprintln(out, ui.FormatError(displayInput(name)))
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d names have no dedicated asset", missing, len(args))
	}
	return nil
}
