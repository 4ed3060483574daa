package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.olrik.dev/gitrev/internal/core"
	"go.olrik.dev/gitrev/internal/revision"
)

// versionLine renders gitrev's own version, with its revision code when the
// version is a tag descriptor.
func versionLine(version string) string {
	line := fmt.Sprintf("gitrev %s", version)

	descriptor, err := revision.Parse(version)
	if err != nil {
		return line
	}
	code, err := descriptor.Code()
	if err != nil {
		return line
	}

	return fmt.Sprintf("%s (%s)", line, code.Hex())
}

func NewVersionCommand() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Long:  `Show version`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionLine(core.Version))
		},
	}

	return versionCmd
}
