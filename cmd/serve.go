package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/adapters/httpapi"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	Long: `Start a read-only JSON API over the loaded catalog.

Routes:
  GET /v1/brands/resolve?name=      resolution with tier and matched key
  GET /v1/brands/has?name=          dedicated-asset check
  GET /v1/categories/resolve?name=
  GET /v1/categories/has?name=
  GET /v1/assets/{path}             asset file (needs assets_dir)
  GET /healthz
  GET /metrics                      Prometheus metrics

Requests under /v1 are rate limited per client address.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: serve_addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = appConfig.ServeAddr
	}

	srv := httpapi.NewServer(brandResolver, categoryResolver, assetStore, httpapi.Options{
		RateLimitPerSecond: appConfig.RateLimitPerSecond,
		RateLimitBurst:     appConfig.RateLimitBurst,
	}, appLog)

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatRocket("Serving lookups on http://"+addr))
	if assetStore == nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMuted("No assets directory configured; /v1/assets is disabled"))
	}

	return srv.ListenAndServe(getContext(), addr)
}
