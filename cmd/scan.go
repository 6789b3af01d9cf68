package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/services"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	scanWatch   bool
	scanChart   string
	scanWorkers int
	scanJSON    bool
	scanQuiet   bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <file|dir>...",
	Short: "Resolve every brand and category in captured JSON payloads",
	Long: `Walk captured API responses and resolve every brand and category field.

Field names come from brand_fields and category_fields in the config
(default: brandName/brand and categoryName/category). Directories
contribute their *.json files.

The report shows how many lookups each tier answered and lists every
name that fell back to the default asset, which is the curation to-do
list for the catalog.

Examples:
  bk scan offers.json
  bk scan ./captures --workers 8
  bk scan ./captures --chart tiers.html
  bk scan ./captures --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "Re-scan when the files change")
	scanCmd.Flags().StringVar(&scanChart, "chart", "", "Write an HTML bar chart of tier counts")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Parallel documents (default: max_workers)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the full report as JSON")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Only print the summary")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()

	if err := scanOnce(ctx, out, args); err != nil {
		return err
	}
	if !scanWatch {
		return nil
	}
	return watchScan(ctx, out, args)
}

func scanOnce(ctx context.Context, out io.Writer, paths []string) error {
	sources, err := readScanSources(paths)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No JSON files found"))
		return nil
	}

	workers := scanWorkers
	if workers <= 0 && appConfig != nil {
		workers = appConfig.MaxWorkers
	}

	resp, err := scanService.Execute(ctx, services.ScanRequest{Sources: sources, Workers: workers})
	if err != nil {
		return err
	}

	if scanJSON {
		if err := writeJSON(out, scanReport(resp)); err != nil {
			return err
		}
	} else {
		printScan(out, resp)
	}

	if scanChart != "" {
		path := scanChart
		if filepath.Dir(path) == "." && appDirs != nil {
			if err := appDirs.Initialize(); err != nil {
				return err
			}
			path = appDirs.ChartPath(path)
		}
		if err := writeTierChart(path, resp); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.FormatSuccess("Chart written to "+path))
	}
	return nil
}

// scanJSONReport is the --json shape of a scan
type scanJSONReport struct {
	Sources  []scanJSONSource          `json:"sources"`
	Tiers    map[string]map[string]int `json:"tiers"`
	Defaults []string                  `json:"defaults"`
	Total    int                       `json:"total"`
	Failed   int                       `json:"failed"`
}

type scanJSONSource struct {
	Name    string          `json:"name"`
	Error   string          `json:"error,omitempty"`
	Matches []scanJSONMatch `json:"matches"`
}

type scanJSONMatch struct {
	Path       string            `json:"path"`
	Resolution domain.Resolution `json:"resolution"`
}

func scanReport(resp *services.ScanResponse) scanJSONReport {
	report := scanJSONReport{
		Tiers:  make(map[string]map[string]int),
		Total:  resp.Total,
		Failed: resp.Failed,
	}
	for kind, counts := range resp.TierCounts {
		report.Tiers[string(kind)] = make(map[string]int)
		for tier, n := range counts {
			report.Tiers[string(kind)][tier.String()] = n
		}
	}
	for _, r := range resp.Results {
		src := scanJSONSource{Name: r.Name, Matches: []scanJSONMatch{}}
		if r.Err != nil {
			src.Error = r.Err.Error()
		}
		for _, m := range r.Matches {
			src.Matches = append(src.Matches, scanJSONMatch{Path: m.Path, Resolution: m.Resolution})
		}
		report.Sources = append(report.Sources, src)
	}
	report.Defaults = defaultNames(resp)
	return report
}

// defaultNames lists distinct fallback inputs in first-seen order
func defaultNames(resp *services.ScanResponse) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, m := range resp.Defaults {
		key := string(m.Resolution.Kind) + ":" + m.Resolution.Input
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, key)
	}
	return names
}

func printScan(out io.Writer, resp *services.ScanResponse) {
	for _, r := range resp.Results {
		if r.Err != nil {
			fmt.Fprintln(out, ui.FormatError(r.Err.Error()))
			continue
		}
		if scanQuiet {
			continue
		}
		fmt.Fprintln(out, ui.FormatBold(r.Name))
		for _, m := range r.Matches {
			fmt.Fprintf(out, "  %-40s %-22s %s\n", m.Path, ui.FormatTier(m.Resolution.Tier), m.Resolution.Asset.Path())
		}
	}

	fmt.Fprintln(out)
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Tier", Width: 16},
		{Header: "Brands", Align: "right"},
		{Header: "Categories", Align: "right"},
	})
	for _, tier := range domain.AllTiers() {
		table.AddRow([]string{
			tier.String(),
			fmt.Sprintf("%d", resp.TierCounts[domain.KindBrand][tier]),
			fmt.Sprintf("%d", resp.TierCounts[domain.KindCategory][tier]),
		})
	}
	fmt.Fprint(out, table.Render())

	if names := defaultNames(resp); len(names) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("%d name(s) fell back to the default asset:", len(names))))
		fmt.Fprint(out, ui.RenderSimpleList(names))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d lookup(s) across %d document(s), %d unreadable",
		resp.Total, len(resp.Results), resp.Failed)))
}

// writeTierChart renders a grouped bar chart of tier counts per kind
func writeTierChart(path string, resp *services.ScanResponse) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Lookup tiers",
			Subtitle: fmt.Sprintf("%d lookups", resp.Total),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	tiers := domain.AllTiers()
	labels := make([]string, len(tiers))
	for i, tier := range tiers {
		labels[i] = tier.String()
	}
	bar.SetXAxis(labels)

	for _, kind := range []domain.Kind{domain.KindBrand, domain.KindCategory} {
		data := make([]opts.BarData, len(tiers))
		for i, tier := range tiers {
			data[i] = opts.BarData{Value: resp.TierCounts[kind][tier]}
		}
		bar.AddSeries(kindTitle(kind), data)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// watchScan re-runs the scan whenever a watched JSON file changes
func watchScan(ctx context.Context, out io.Writer, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	fmt.Fprintln(out, ui.FormatRocket("Watching for changes..."))
	fmt.Fprintln(out, ui.FormatMuted("Press Ctrl+C to stop"))

	debounce := 500 * time.Millisecond
	if appConfig != nil {
		debounce = time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	}

	// Debounced rescans are funnelled through one channel so output never interleaves
	rescan := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isScanEvent(event, paths) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case rescan <- struct{}{}:
				default:
				}
			})

		case <-rescan:
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.FormatInfo("Change detected, rescanning..."))
			if err := scanOnce(ctx, out, paths); err != nil {
				fmt.Fprintln(out, ui.FormatError("Scan failed: "+err.Error()))
				appLog.WithError(err).Warn("rescan failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLog.WithError(err).Warn("watcher error")

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.FormatMuted("Watch stopped"))
			return nil
		}
	}
}

// isScanEvent keeps JSON writes inside the watched set and skips editor temp files
func isScanEvent(event fsnotify.Event, paths []string) bool {
	if !strings.HasSuffix(event.Name, ".json") {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
		return false
	}
	if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}

	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if filepath.Clean(filepath.Dir(event.Name)) == filepath.Clean(p) {
				return true
			}
			continue
		}
		if filepath.Clean(event.Name) == filepath.Clean(p) {
			return true
		}
	}
	return false
}
