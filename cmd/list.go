package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/services"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	listCategory bool
	listSortBy   string
	listReverse  bool
	listLimit    int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list [query]",
	Short:   "List catalog entries (alias: ls)",
	Aliases: []string{"ls"},
	Long: `List brand or category entries in a table.

With a query, entries are ranked by fuzzy match on name and asset path.

Examples:
  bk list
  bk list --sort name
  bk list --category
  bk list jack
  bk list pvr --limit 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listCategory, "category", "c", false, "List categories instead of brands")
	// Sort defaults to declaration order, config can override
	listCmd.Flags().StringVar(&listSortBy, "sort", "declared", "Sort by field (declared, name, asset)")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "Reverse sort order")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most n search results")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()
	kind := kindFor(listCategory)

	var (
		entries []domain.Entry
		total   int
		title   string
	)

	if len(args) == 1 {
		resp, err := listService.Search(ctx, services.SearchRequest{
			Kind:  kind,
			Query: args[0],
			Limit: listLimit,
		})
		if err != nil {
			return err
		}
		entries, total = resp.Entries, resp.Total
		title = fmt.Sprintf("%s matching %q", kindTitle(kind), args[0])
	} else {
		// If the flag was NOT changed by the user, use the config default
		if !cmd.Flags().Changed("sort") && appConfig != nil {
			listSortBy = appConfig.DefaultSort
		}
		resp, err := listService.Execute(ctx, services.ListRequest{
			Kind:    kind,
			SortBy:  listSortBy,
			Reverse: listReverse,
		})
		if err != nil {
			return err
		}
		entries, total = resp.Entries, resp.Total
		title = kindTitle(kind)
	}

	if total == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No entries found"))
		return nil
	}

	fmt.Fprintln(out, ui.FormatTitle(title))
	fmt.Fprintln(out)

	table := ui.NewTable([]ui.TableColumn{
		{Header: "#", Align: "right"},
		{Header: "Name", Width: 24},
		{Header: "Asset"},
	})
	if appConfig != nil {
		table.MaxWidth = appConfig.TableWidth
	}
	for i, e := range entries {
		table.AddRow([]string{fmt.Sprintf("%d", i+1), string(e.Name), e.Asset.Path()})
	}
	fmt.Fprint(out, table.Render())

	fmt.Fprintln(out)
	summary := fmt.Sprintf("Total: %d", total)
	if len(entries) < total {
		summary = fmt.Sprintf("Showing %d of %d", len(entries), total)
	}
	fmt.Fprintln(out, ui.FormatMuted(summary))
	return nil
}

func kindTitle(kind domain.Kind) string {
	if kind == domain.KindCategory {
		return "Categories"
	}
	return "Brands"
}

// aliasesCmd represents the aliases command
var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Show the brand alias table",
	Long: `Show every alias variant, the key it points at and whether that key exists.

Self-referential placeholders and dangling targets resolve to the default
asset; run 'bk validate' for the full report.`,
	Args: cobra.NoArgs,
	RunE: runAliases,
}

func runAliases(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reg := catalog.Brands

	aliases := reg.Aliases()
	if len(aliases) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No aliases defined"))
		return nil
	}

	fmt.Fprintln(out, ui.FormatTitle("Brand aliases"))
	fmt.Fprintln(out)

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Variant", Width: 16},
		{Header: "Target", Width: 16},
		{Header: "Status"},
	})
	for _, a := range aliases {
		table.AddRow([]string{a.Variant, string(a.Target), aliasStatus(reg, a)})
	}
	fmt.Fprint(out, table.Render())
	return nil
}

func aliasStatus(reg *domain.Registry, a domain.Alias) string {
	switch {
	case strings.EqualFold(a.Variant, string(a.Target)) && !reg.Has(a.Target):
		return "self (placeholder)"
	case !reg.Has(a.Target):
		return "dangling"
	default:
		return "ok"
	}
}
