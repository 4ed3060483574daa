package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"go.olrik.dev/gitrev/internal/core"
	"go.olrik.dev/gitrev/internal/git"
	"go.olrik.dev/gitrev/internal/header"
)

const defaultTemplatePath = "src/version.h.in"

func NewGenerateCommand() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a header file carrying the current git revision",
		Long: strings.TrimSpace(dedent.Dedent(`
			Generate a header file carrying the current git revision

			The template is copied to the output with these placeholders replaced:

			  %(revision_num)s         packed revision code, e.g. 0x01020304 for v1.2.3-4-gabcdef
			  %(revision_str)s         descriptor without tag prefix, e.g. 1.2.3-4-gabcdef
			  %(revision_hash)s        full commit hash of HEAD
			  %(revision_short_hash)s  abbreviated commit hash
			  %(revision_semver)s      semantic version, e.g. 1.2.3+4.gabcdef

			Use %% for a literal percent sign. The output is only replaced when every
			step succeeded.
		`)),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templatePath, _ := cmd.Flags().GetString("template")
			outputPath, _ := cmd.Flags().GetString("output")
			dir, _ := cmd.Flags().GetString("dir")

			if outputPath == "" {
				outputPath = header.DefaultOutputPath(templatePath)
			}

			format, err := header.ParseNumberFormat(core.NumberFormat())
			if err != nil {
				return err
			}

			repo, err := openRepository(dir)
			if err != nil {
				return err
			}

			rev, err := readRevision(repo, describeOptionsFromFlags(cmd))
			if err != nil {
				return err
			}

			values, err := header.NewValues(rev, format)
			if err != nil {
				return err
			}

			repo.Note("Render %s into %s", templatePath, outputPath)
			if err := header.Generate(templatePath, outputPath, values); err != nil {
				return err
			}

			absOutputPath, err := filepath.Abs(outputPath)
			if err != nil {
				return err
			}
			if err := repo.RunHook(git.GITREV_HOOK_HEADER_GENERATED, absOutputPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				color.CyanString("%s", outputPath),
				values[header.PlaceholderRevisionStr],
				color.GreenString("%s", values[header.PlaceholderRevisionNum]),
			)

			return nil
		},
	}
	generateCmd.Flags().StringP("template", "t", defaultTemplatePath, "header template")
	generateCmd.Flags().StringP("output", "o", "", strings.TrimSpace(dedent.Dedent(`
			Generated header
			Defaults to the template path without its .in suffix
		`)),
	)
	generateCmd.Flags().String("number-format", string(header.NumberFormatHex), "revision code format, hex or decimal")
	generateCmd.RegisterFlagCompletionFunc("number-format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(header.NumberFormatHex), string(header.NumberFormatDecimal)}, cobra.ShellCompDirectiveNoFileComp
	})
	addDescribeFlags(generateCmd)

	return generateCmd
}
