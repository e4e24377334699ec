package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tabbytools/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "tabbytools",
	Short: "TabbyTech billing tools - fetch and normalize Books API invoices",
	Long: `TabbyTech billing tools is a command-line interface for working with
the Books accounting API behind the TabbyTech debit-order platform.

Invoices arrive from upstream in whatever shape the source system produces;
every command normalizes them into the single fixed shape the admin UI
consumes before printing them.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("tabbytools executed")

		fmt.Println("Welcome to TabbyTech billing tools!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
