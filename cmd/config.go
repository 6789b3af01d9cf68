package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/pkg/config"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	configShowPath bool
	configEdit     bool
	configInit     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the bk configuration file",
	Long: `Show the effective configuration, or manage the config file.

Examples:
  bk config            # print effective settings
  bk config --path     # print the config file location
  bk config --init     # write a config file with the defaults
  bk config --edit     # open the config file in $EDITOR`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowPath, "path", false, "Print the config file path")
	configCmd.Flags().BoolVar(&configEdit, "edit", false, "Open the config file in your editor")
	configCmd.Flags().BoolVar(&configInit, "init", false, "Create the config file with default values")
}

func currentConfigPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return appDirs.ConfigPath
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := currentConfigPath()

	switch {
	case configShowPath:
		fmt.Fprintln(out, path)
		return nil

	case configInit:
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.FormatSuccess("Config written to "+path))
		return nil

	case configEdit:
		// Ensure it exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, ui.FormatInfo("Opening config: "+path))
		return openInEditor(path)
	}

	fmt.Fprintln(out, ui.FormatTitle("Configuration"))
	fmt.Fprintln(out, ui.FormatMuted(path))
	fmt.Fprintln(out)

	catalogPath := appConfig.CatalogPath
	if catalogPath == "" {
		catalogPath = "(bundled)"
	}
	assetsDir := appDirs.ResolveAssetsDir(appConfig.AssetsDir)
	if assetsDir == "" {
		assetsDir = "(none)"
	}

	rows := [][2]string{
		{"catalog_path", catalogPath},
		{"assets_dir", assetsDir},
		{"log_level", appConfig.LogLevel},
		{"log_format", appConfig.LogFormat},
		{"color_theme", appConfig.ColorTheme},
		{"default_sort", appConfig.DefaultSort},
		{"max_workers", fmt.Sprintf("%d", appConfig.MaxWorkers)},
		{"brand_fields", fmt.Sprintf("%v", appConfig.BrandFields)},
		{"category_fields", fmt.Sprintf("%v", appConfig.CategoryFields)},
		{"watch_debounce_ms", fmt.Sprintf("%d", appConfig.WatchDebounceMS)},
		{"serve_addr", appConfig.ServeAddr},
		{"rate_limit", fmt.Sprintf("%g/s burst %d", appConfig.RateLimitPerSecond, appConfig.RateLimitBurst)},
		{"copy_to_clipboard", fmt.Sprintf("%t", appConfig.CopyToClipboard)},
	}
	for _, row := range rows {
		fmt.Fprintln(out, ui.RenderKeyValue(row[0], row[1]))
	}
	return nil
}
