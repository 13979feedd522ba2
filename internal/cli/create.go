package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Metadata string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <content>",
		Short: "Create a glyph from content",
		Long: `Create a glyph whose id is the SHA-256 digest of its content and
persist it to the sharded store.

Reserved metadata fields (energy, activation_count, last_update_time)
default to zero unless supplied; any other metadata fields are stored
unchanged.

Example:
  glyphos create "Dynamics seed 0" --metadata '{"energy": 10.0}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createGlyph(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Metadata, "metadata", "", "glyph metadata as a JSON object")

	return cmd
}

func createGlyph(opts *CreateOptions, content string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	var metadata map[string]json.RawMessage
	if opts.Metadata != "" {
		if err := json.Unmarshal([]byte(opts.Metadata), &metadata); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --metadata JSON %q", opts.Metadata), err)
		}
	}

	r, cfg, err := opts.openRepo()
	if err != nil {
		return err
	}

	id, g, err := r.Create(content, metadata)
	if err != nil {
		return fail(out, err)
	}
	out.VerboseLog("created glyph %s", id)

	recordInIndex(opts.RootOptions, out, cfg, cmd, g)

	return out.Success(viewOf(g))
}
