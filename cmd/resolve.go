package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	resolveCategory bool
	resolveCopy     bool
	resolveJSON     bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:     "resolve <name>...",
	Short:   "Resolve names to display assets (alias: r)",
	Aliases: []string{"r"},
	Long: `Run the lookup cascade for each name and show which asset it maps to.

Brands go through exact, case-insensitive, substring and alias matching
before falling back to the default asset. Categories use exact and
substring matching only.

Examples:
  bk resolve "PVR Inox Cinemas"
  bk resolve makemytrip Nike --json
  bk resolve --category "Fashion & Apparel"
  bk resolve Nike --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveCategory, "category", "c", false, "Resolve category names instead of brands")
	resolveCmd.Flags().BoolVar(&resolveCopy, "copy", false, "Copy the (last) asset path to the clipboard")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print results as JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolver := resolverFor(resolveCategory)
	out := cmd.OutOrStdout()

	results := make([]domain.Resolution, 0, len(args))
	for _, name := range args {
		results = append(results, resolver.Resolve(name))
	}

	if resolveJSON {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		printResolutions(out, results)
	}

	if shouldCopy(resolveCopy) {
		copyToClipboard(cmd.ErrOrStderr(), results[len(results)-1].Asset.Path())
	}
	return nil
}

func printResolutions(out io.Writer, results []domain.Resolution) {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Input", Width: 20},
		{Header: "Tier", Width: 16},
		{Header: "Matched", Width: 16},
		{Header: "Asset"},
	})
	if appConfig != nil {
		table.MaxWidth = appConfig.TableWidth
	}

	for _, res := range results {
		matched := string(res.MatchedKey)
		if matched == "" {
			matched = "-"
		}
		table.AddRow([]string{
			displayInput(res.Input),
			res.Tier.String(),
			matched,
			res.Asset.Path(),
		})
	}
	fmt.Fprint(out, table.Render())
}

// displayInput makes blank inputs visible in tables
func displayInput(input string) string {
	if strings.TrimSpace(input) == "" {
		return fmt.Sprintf("%q", input)
	}
	return input
}
