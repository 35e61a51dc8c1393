package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/nina/config"
	"github.com/s0up4200/nina/filter"
	"github.com/s0up4200/nina/nina"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *nina.Client
	presets   *filter.Presets
	formatter = nina.NewConsoleFormatter()

	// Command flags
	outputFormat string
	limit        int
	filterExpr   string
	preset       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nina",
	Short: "Browse releases, hubs and exchanges on the Nina Protocol",
	Long: `nina is a CLI for the public Nina Protocol API. It lists and inspects
accounts, releases, hubs, exchanges and posts, runs searches, and can
narrow any list with a filter expression.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: console, json or table (default from config)")

	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(releasesCmd)
	rootCmd.AddCommand(hubsCmd)
	rootCmd.AddCommand(exchangesCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration, logger and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	switch cfg.Output.Format {
	case "console", "json", "table":
	default:
		return fmt.Errorf("invalid output format: %s (must be 'console', 'json' or 'table')", cfg.Output.Format)
	}

	opts := []nina.Option{
		nina.WithTimeout(cfg.Nina.Timeout),
		nina.WithDefaultLimit(cfg.Nina.DefaultLimit),
		nina.WithConcurrency(cfg.Nina.Concurrency),
	}
	if cfg.Nina.UserAgent != "" {
		opts = append(opts, nina.WithUserAgent(cfg.Nina.UserAgent))
	}

	client, err = nina.NewClient(cfg.Nina.URL, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Nina client: %w", err)
	}

	presets = filter.NewPresets(filter.NewCompiler())
	if err := presets.RegisterAll(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the Nina API",
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to Nina at %s...\n", client.BaseURL())

	if err := client.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	names := presets.Names()
	if len(names) > 0 {
		fmt.Fprintf(out, "\nFilter presets:\n")
		for _, name := range names {
			f, _ := presets.Get(name)
			fmt.Fprintf(out, "  • %s: %s\n", name, f.Expression())
		}
	}

	return nil
}

// addListFlags registers the flags shared by list-style commands
func addListFlags(cmd *cobra.Command, filterable bool) {
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results (0 uses nina.default_limit)")
	if filterable {
		cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
		cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	}
}

// activeFilter returns the filter selected by --filter or --preset, or nil
func activeFilter() (*filter.Filter, error) {
	f, err := presets.Resolve(filterExpr, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	}
	return f, nil
}

// applyFilter narrows items with the active filter
func applyFilter[T any](ctx context.Context, items []T, envOf func(T) filter.Env) ([]T, error) {
	f, err := activeFilter()
	if err != nil {
		return nil, err
	}
	if f == nil {
		return items, nil
	}
	return filter.Apply(ctx, f, items, envOf)
}

// render writes v as JSON or the console text produced by console. The
// table format falls back to console for single entities.
func render(out io.Writer, v any, console func() string) error {
	if cfg.Output.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Fprintln(out, console())
	return nil
}

// renderList is render for lists, which also support the table format
func renderList(out io.Writer, v any, console func() string, table func() tableView) error {
	if cfg.Output.Format == "table" {
		fmt.Fprintln(out, renderTable(table()))
		return nil
	}
	return render(out, v, console)
}

func formatOptions() nina.FormatOptions {
	return nina.FormatOptions{ShowDetails: cfg.Output.ShowDetails}
}

func refKeys(refs []nina.AccountRef) []string {
	keys := make([]string, 0, len(refs))
	for _, r := range refs {
		keys = append(keys, r.PublicKey)
	}
	return keys
}
