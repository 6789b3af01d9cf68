package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/adapters/repository"
	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/internal/core/services"
	"github.com/kamal-hamza/brandkit/pkg/appdir"
	"github.com/kamal-hamza/brandkit/pkg/config"
	"github.com/kamal-hamza/brandkit/pkg/logging"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var (
	// Global state
	appDirs   *appdir.Dirs
	appConfig *config.Config
	appLog    *logrus.Logger
	appCtx    = context.Background()

	// Catalog
	catalogSource ports.CatalogSource
	catalog       *domain.Catalog
	assetStore    ports.AssetStore

	// Services
	brandResolver    *services.BrandResolver
	categoryResolver *services.CategoryResolver
	listService      *services.ListService
	validateService  *services.ValidateService
	scanService      *services.ScanService

	// Global flags
	flagConfigPath  string
	flagCatalogPath string
	flagAssetsDir   string
	flagLogLevel    string
	flagLogFormat   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bk",
	Short: "BK - brand and category asset lookup",
	Long: ui.StyleTitle.Render("BK") + " - Brand Kit\n\n" +
		"Resolves free-text brand and category names from upstream payloads\n" +
		"to bundled display assets, and keeps the catalog behind them honest.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	appCtx = ctx

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(hasCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(aliasesCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigPath, "config", "", "Config file (default: XDG config dir)")
	pf.StringVar(&flagCatalogPath, "catalog", "", "Catalog YAML file (default: bundled catalog)")
	pf.StringVar(&flagAssetsDir, "assets", "", "Directory holding the asset files")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
}

// initializeApp loads config and the catalog, then wires the services
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	dirs, err := appdir.New()
	if err != nil {
		return fmt.Errorf("failed to resolve app directories: %w", err)
	}
	appDirs = dirs

	configPath := appDirs.ConfigPath
	if flagConfigPath != "" {
		configPath = flagConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)
	appLog = logging.New(appConfig.LogLevel, appConfig.LogFormat, os.Stderr)

	// config edits must work even when the catalog is broken
	if cmd.Name() == "config" {
		return nil
	}

	return loadCatalog(cmd.Context())
}

func applyFlagOverrides(cfg *config.Config) {
	if flagCatalogPath != "" {
		cfg.CatalogPath = flagCatalogPath
	}
	if flagAssetsDir != "" {
		cfg.AssetsDir = flagAssetsDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
}

// newCatalogSource picks the catalog file when configured, otherwise the bundled copy.
// Swapped out in tests.
var newCatalogSource = func(path string) ports.CatalogSource {
	if path != "" {
		return repository.NewFileCatalogSource(path, appLog)
	}
	return repository.NewEmbeddedCatalogSource(appLog)
}

// loadCatalog builds every catalog-backed service from the configured source
func loadCatalog(ctx context.Context) error {
	if ctx == nil {
		ctx = appCtx
	}

	catalogSource = newCatalogSource(appConfig.CatalogPath)
	c, err := catalogSource.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	catalog = c

	assetStore = nil
	if dir := appDirs.ResolveAssetsDir(appConfig.AssetsDir); dir != "" {
		assetStore = repository.NewFileAssetStore(dir)
	}

	brandResolver = services.NewBrandResolver(catalog.Brands, appLog)
	categoryResolver = services.NewCategoryResolver(catalog.Categories, appLog)
	listService = services.NewListService(catalog)
	validateService = services.NewValidateService(catalog, assetStore)
	scanService = services.NewScanService(brandResolver, categoryResolver,
		appConfig.BrandFields, appConfig.CategoryFields, appLog)

	return nil
}

// resolverFor picks the brand or category cascade
func resolverFor(category bool) ports.NameResolver {
	if category {
		return categoryResolver
	}
	return brandResolver
}

// kindFor maps the --category flag to a registry kind
func kindFor(category bool) domain.Kind {
	if category {
		return domain.KindCategory
	}
	return domain.KindBrand
}

// getContext returns a context for operations
func getContext() context.Context {
	if appCtx == nil {
		return context.Background()
	}
	return appCtx
}
