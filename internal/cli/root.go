package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/glyphos/internal/config"
	"github.com/roach88/glyphos/internal/glyph"
	"github.com/roach88/glyphos/internal/index"
	"github.com/roach88/glyphos/internal/repo"
	"github.com/roach88/glyphos/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // optional YAML config file
	StorePath  string // explicit store root override
	IndexPath  string // explicit catalog path override
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the GlyphOS CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "glyphos",
		Short: "GlyphOS - content-addressed glyph store and dynamics engine",
		Long: "Store immutable, content-identified glyph records and evolve their\n" +
			"energy state through the deterministic dynamics engine.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "store root directory (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.IndexPath, "index", "", "catalog database path (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewMergeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// Execute runs the root command and maps the outcome to a process exit
// code. Errors already emitted through a formatter are not printed again.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return GetExitCode(err)
	}
	return ExitSuccess
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves the effective configuration: the config file when
// given, built-in defaults otherwise, with flag overrides applied on top.
func (opts *RootOptions) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if opts.StorePath != "" {
		cfg.StoreRoot = opts.StorePath
	}
	if opts.IndexPath != "" {
		cfg.IndexPath = opts.IndexPath
	}
	return cfg, nil
}

// openRepo builds the repository over the resolved store root.
func (opts *RootOptions) openRepo() (*repo.Repository, config.Config, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	s, err := store.New(cfg.ResolveStoreRoot())
	if err != nil {
		return nil, config.Config{}, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	return repo.New(s), cfg, nil
}

// openIndex opens the catalog when one is configured. Returns nil when
// indexing is disabled.
func openIndex(cfg config.Config) (*index.Index, error) {
	if cfg.IndexPath == "" {
		return nil, nil
	}
	return index.Open(cfg.IndexPath)
}

// recordInIndex updates the catalog after a successful write. The
// catalog is advisory, so failures are reported in verbose mode and
// otherwise ignored; the glyph itself is already durable.
func recordInIndex(opts *RootOptions, out *OutputFormatter, cfg config.Config, cmd *cobra.Command, g glyph.Glyph) {
	ix, err := openIndex(cfg)
	if err != nil {
		out.VerboseLog("catalog unavailable: %v", err)
		return
	}
	if ix == nil {
		return
	}
	defer ix.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ix.Record(ctx, g); err != nil {
		out.VerboseLog("catalog update failed: %v", err)
	}
}

// formatter builds the output formatter for a command invocation with a
// fresh trace id.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   uuid.Must(uuid.NewV7()).String(),
	}
}
