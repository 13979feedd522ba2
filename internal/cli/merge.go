package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/glyphos/internal/dynamics"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	Save bool
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge <id1> <id2>",
		Short: "Merge two glyphs into a new one",
		Long: `Combine two stored glyphs into a new glyph. The higher-energy glyph
becomes the primary (ties go to the first argument); the merged content
is "primary + secondary", energies are summed, counters take the
maximum, and the merged record carries both source ids as provenance.

The merged glyph gets a fresh content-derived id. The source glyphs are
left untouched. With --save the merged glyph is persisted; without it
the result is only printed.

Example:
  glyphos merge <id1> <id2> --save`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mergeGlyphs(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Save, "save", false, "persist the merged glyph to the store")

	return cmd
}

func mergeGlyphs(opts *MergeOptions, id1, id2 string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	r, cfg, err := opts.openRepo()
	if err != nil {
		return err
	}

	g1, err := r.Get(id1)
	if err != nil {
		return fail(out, err)
	}
	g2, err := r.Get(id2)
	if err != nil {
		return fail(out, err)
	}

	engine := dynamics.New(dynamics.Config{
		ActivationThreshold: cfg.Dynamics.ActivationThreshold,
		DecayRate:           cfg.Dynamics.DecayRate,
	})
	merged, err := engine.Merge(g1, g2)
	if err != nil {
		return fail(out, err)
	}
	out.VerboseLog("merged %s + %s -> %s (energy=%g)", id1, id2, merged.ID, merged.Energy)

	if opts.Save {
		// The merged glyph is new content, so its identity is re-verified
		// before it hits the store.
		if err := r.PutChecked(merged); err != nil {
			return fail(out, err)
		}
		out.VerboseLog("saved glyph %s", merged.ID)
		recordInIndex(opts.RootOptions, out, cfg, cmd, merged)
	}

	return out.Success(viewOf(merged))
}
