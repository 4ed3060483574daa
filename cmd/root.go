package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.olrik.dev/gitrev/internal/core"
)

func NewRootCommand() *cobra.Command {
	var configPath string
	var gitPath string
	var verbose int

	homeDir, _ := os.UserHomeDir()

	rootCmd := &cobra.Command{
		Use:           "gitrev",
		Short:         "gitrev - Stamp builds with their git revision",
		Long:          `gitrev - Stamp builds with their git revision`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize config and bind global flags to the config
			messages, err := core.InitializeConfig(cmd)
			for _, message := range messages {
				fmt.Fprintln(cmd.ErrOrStderr(), color.HiBlackString("# %s", message))
			}
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config-path", fmt.Sprintf("%s/.config/gitrev", homeDir),
		"config path",
	)
	rootCmd.PersistentFlags().StringVar(
		&gitPath, "git-path", "",
		fmt.Sprintf("git executable (default %s on PATH, or $%s/git)", "git", core.LegacyGitPathEnv),
	)
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "more output, repeat for even more")

	rootCmd.AddCommand(
		NewGenerateCommand(),
		NewDescribeCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
