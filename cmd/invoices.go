package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"tabbytools/internal/books"
	"tabbytools/internal/config"
	"tabbytools/internal/logger"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Fetch and normalize invoices from the Books API",
	Long: `Fetch invoices from the Books accounting API and normalize each record
into the fixed shape the TabbyTech admin UI consumes.

Upstream field names vary by source system (total vs totalZar vs amount,
customer_name vs a nested customer object, and so on); the normalizer resolves
each field through a priority-ordered fallback chain and applies the standard
defaults (status "Unknown", customer "Customer", currency "ZAR").

The base URL and token are read from BOOKS_API_BASE_URL and BOOKS_API_TOKEN
unless overridden with flags.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch one page of invoices",
	Example: `  # First page with defaults, JSON to stdout
  tabbytools invoices list

  # Specific page against an explicit endpoint
  tabbytools invoices list --page 2 --per-page 10 --base-url http://localhost:8080

  # Save to a file
  tabbytools invoices list -o invoices.json`,
	Args: cobra.NoArgs,
	RunE: runInvoicesList,
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get [invoice-id]",
	Short: "Fetch a single invoice by id",
	Example: `  # Fetch and normalize one invoice
  tabbytools invoices get INV-2024-0001

  # With an explicit access token
  tabbytools invoices get INV-2024-0001 --token <token>`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesGet,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesListCmd, invoicesGetCmd)

	invoicesCmd.PersistentFlags().String("base-url", "", "Books API base URL (default: BOOKS_API_BASE_URL)")
	invoicesCmd.PersistentFlags().String("token", "", "Books API access token (default: BOOKS_API_TOKEN)")
	invoicesCmd.PersistentFlags().StringP("output", "o", "", "Output file path (default: stdout)")
	invoicesCmd.PersistentFlags().Int("timeout", 30, "Request timeout in seconds")

	invoicesListCmd.Flags().Int("page", 1, "Page number")
	invoicesListCmd.Flags().Int("per-page", books.DefaultPerPage, "Invoices per page")
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-list")

	client, token, err := newBooksClient(cmd, log)
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	ctx, cancel := requestContext(timeoutSecs, log)
	defer cancel()

	log.Info().
		Int("page", page).
		Int("per_page", perPage).
		Msg("Fetching invoices")

	list, err := client.FetchInvoices(ctx, books.ListOptions{
		Page:    page,
		PerPage: perPage,
		Token:   token,
	})
	if err != nil {
		return handleBooksError(err, log)
	}

	log.Info().
		Int("page", list.Page).
		Int("count", list.Count).
		Int("fetched", len(list.Invoices)).
		Bool("ok", list.OK).
		Msg("Invoices fetched")

	return writeJSON(list, outputPath, log)
}

func runInvoicesGet(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-get")

	client, token, err := newBooksClient(cmd, log)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	invoiceID := args[0]

	ctx, cancel := requestContext(timeoutSecs, log)
	defer cancel()

	log.Info().
		Str("invoice_id", invoiceID).
		Msg("Fetching invoice")

	inv, err := client.FetchInvoiceByID(ctx, invoiceID, token)
	if err != nil {
		return handleBooksError(err, log)
	}

	log.Info().
		Str("invoice_no", inv.InvoiceNo).
		Str("customer", inv.Customer).
		Float64("total_zar", inv.Totals.TotalZar).
		Float64("balance_zar", inv.Totals.BalanceZar).
		Msg("Invoice fetched")

	return writeJSON(inv, outputPath, log)
}

// newBooksClient resolves base URL and token from flags with environment
// fallback and builds the client.
func newBooksClient(cmd *cobra.Command, log zerolog.Logger) (*books.Client, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	booksCfg := cfg.GetBooksConfig()
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		booksCfg.BaseURL = baseURL
	}
	if timeoutSecs, _ := cmd.Flags().GetInt("timeout"); timeoutSecs > 0 {
		booksCfg.Timeout = time.Duration(timeoutSecs) * time.Second
	}

	if booksCfg.BaseURL == "" {
		log.Error().Msg("No Books API base URL configured")
		return nil, "", fmt.Errorf("books API base URL is required. Set BOOKS_API_BASE_URL or pass --base-url")
	}

	token := cfg.BooksToken
	if flagToken, _ := cmd.Flags().GetString("token"); flagToken != "" {
		token = flagToken
	}

	return books.New(booksCfg), token, nil
}

// requestContext creates a context with timeout and SIGINT/SIGTERM handling.
func requestContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	if timeoutSecs <= 0 {
		timeoutSecs = 30
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling request")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleBooksError provides user-friendly messages for client failures.
func handleBooksError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Books API request failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("request timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("request was canceled")
	case errors.Is(err, books.ErrMissingInvoiceID):
		return fmt.Errorf("an invoice id is required")
	case errors.Is(err, books.ErrHTMLResponse):
		return fmt.Errorf("the Books API returned a web page instead of JSON. "+
			"Check that the base URL points at the API, not a website: %w", err)
	default:
		return fmt.Errorf("books API request failed: %w", err)
	}
}

// writeJSON pretty-prints v to the output file or stdout.
func writeJSON(v any, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal output to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Output written to file")
		return nil
	}

	if _, err := os.Stdout.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write to stdout")
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Println()
	return nil
}
