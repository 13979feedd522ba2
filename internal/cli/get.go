package cli

import (
	"github.com/spf13/cobra"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a glyph by id",
		Long: `Fetch a glyph record from the sharded store by its content-addressed id.

Exits non-zero if no record exists at the id's path or if the stored
bytes are not a valid glyph record (corruption).

Example:
  glyphos get 4b227777d4dd1fc61c6f884f48641d02b4d21d3472a582d0ef545f4c3e93f4c0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getGlyph(opts, args[0], cmd)
		},
	}

	return cmd
}

func getGlyph(opts *GetOptions, id string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	r, _, err := opts.openRepo()
	if err != nil {
		return err
	}

	g, err := r.Get(id)
	if err != nil {
		return fail(out, err)
	}

	return out.Success(viewOf(g))
}
