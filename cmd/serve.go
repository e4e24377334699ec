package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"tabbytools/internal/logger"
	"tabbytools/internal/mockapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local mock Books API for development",
	Long: `Serve a small in-memory rendition of the Books accounting API on the
given address. The sample invoices deliberately mix field-name conventions
(snake_case exports, camelCase payloads, nested and bare customers) so every
normalizer fallback chain can be exercised end to end:

  GET /api/invoices?page=1&perPage=20   paginated list envelope
  GET /api/invoices/:id                 single invoice envelope`,
	Example: `  # Serve on the default port, then fetch against it
  tabbytools serve
  tabbytools invoices list --base-url http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")

	gin.SetMode(gin.ReleaseMode)
	if err := mockapi.New().Run(addr); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("Mock Books API stopped")
		return fmt.Errorf("mock Books API failed: %w", err)
	}
	return nil
}
