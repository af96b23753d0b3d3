package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-platforms <input.json> <output.json>",
		Short: "Keep only the target platforms whose environment satisfies each requirement's marker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ResolveTargets(cmd.Context(), args[0], args[1])
		},
	}
}
