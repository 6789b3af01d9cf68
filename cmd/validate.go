package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/adapters/repository"
	"github.com/kamal-hamza/brandkit/internal/core/services"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	validateStrict      bool
	validateCheckAssets bool
	validateJSON        bool
	validateDump        bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for curation defects",
	Long: `Check the catalog for data problems that would silently degrade to the
default asset at lookup time.

Reported:
  error    dangling-alias          alias target is not a key
  error    alias-not-normalized    variant can never match a normalized input
  warning  self-alias              placeholder alias pointing at itself
  warning  category-alias-ignored  categories never consult aliases
  warning  case-collision          same name in another case maps to another asset
  warning  missing-asset-file      asset file absent (with --check-assets)
  info     substring-shadowed      an earlier, shorter key wins substring lookups

Exits non-zero on errors, or on warnings with --strict.

Examples:
  bk validate
  bk validate --catalog ./catalog.yaml --strict
  bk validate --check-assets --assets ./assets
  bk validate --dump > catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as failures")
	validateCmd.Flags().BoolVar(&validateCheckAssets, "check-assets", false, "Verify asset files exist in the assets directory")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print issues as JSON")
	validateCmd.Flags().BoolVar(&validateDump, "dump", false, "Print the bundled catalog YAML and exit")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if validateDump {
		_, err := out.Write(repository.EmbeddedCatalogBytes())
		return err
	}

	if validateCheckAssets && assetStore == nil {
		return fmt.Errorf("--check-assets needs an assets directory (set assets_dir or --assets)")
	}

	resp, err := validateService.Execute(getContext(), services.ValidateRequest{
		CheckAssetFiles: validateCheckAssets,
	})
	if err != nil {
		return err
	}

	if validateJSON {
		if err := writeJSON(out, resp.Issues); err != nil {
			return err
		}
	} else {
		printIssues(out, resp)
	}

	if resp.HasErrors() {
		return fmt.Errorf("catalog has %d error(s)", resp.Errors)
	}
	if validateStrict && resp.Warnings > 0 {
		return fmt.Errorf("catalog has %d warning(s)", resp.Warnings)
	}
	return nil
}

func printIssues(out io.Writer, resp *services.ValidateResponse) {
	source := "bundled catalog"
	if appConfig != nil && appConfig.CatalogPath != "" {
		source = appConfig.CatalogPath
	}

	if len(resp.Issues) == 0 {
		fmt.Fprintln(out, ui.FormatSuccess("No issues in "+source))
		return
	}

	fmt.Fprintln(out, ui.FormatTitle("Validation of "+source))
	fmt.Fprintln(out)

	for _, issue := range resp.Issues {
		fmt.Fprintf(out, "%s %s %s %s\n",
			ui.FormatSeverity(issue.Severity),
			ui.StyleAccent.Render(string(issue.Kind)),
			ui.FormatBold(fmt.Sprintf("%s %q", issue.Registry, issue.Key)),
			ui.FormatMuted(issue.Detail),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d error(s), %d warning(s), %d info", resp.Errors, resp.Warnings, resp.Infos)))
}
