package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/whl/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		// The version does not depend on the settings file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			cmdo := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(cmdo, "whl version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
		},
	}
}
