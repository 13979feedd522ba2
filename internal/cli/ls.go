package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glyphos/internal/index"
)

// ListOptions holds flags for the ls command.
type ListOptions struct {
	*RootOptions
	Limit int
}

// listResult is the ls command's output payload.
type listResult struct {
	Glyphs []index.Entry `json:"glyphs"`
	Count  int           `json:"count"`
}

func (r listResult) String() string {
	if r.Count == 0 {
		return "no glyphs indexed"
	}
	var b strings.Builder
	for _, e := range r.Glyphs {
		fmt.Fprintf(&b, "%s  energy=%g activations=%d\n", e.ID, e.Energy, e.ActivationCount)
	}
	fmt.Fprintf(&b, "%d glyph(s)", r.Count)
	return b.String()
}

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List indexed glyphs",
		Long: `List glyphs recorded in the catalog database, ordered by id.

The catalog is advisory: it only knows about glyphs written while a
catalog path was configured, and the sharded store remains the source
of truth. Requires --index or an index_path config entry.

Example:
  glyphos ls --index catalog.db --limit 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGlyphs(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of entries (0 for all)")

	return cmd
}

func listGlyphs(opts *ListOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if cfg.IndexPath == "" {
		return WrapExitError(ExitCommandError, "no catalog configured: pass --index or set index_path", nil)
	}

	ix, err := index.Open(cfg.IndexPath)
	if err != nil {
		return fail(out, err)
	}
	defer ix.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := ix.List(ctx, opts.Limit)
	if err != nil {
		return fail(out, err)
	}
	out.VerboseLog("catalog %s: %d entries", cfg.IndexPath, len(entries))

	return out.Success(listResult{Glyphs: entries, Count: len(entries)})
}
