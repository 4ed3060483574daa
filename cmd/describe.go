package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"go.olrik.dev/gitrev/internal/header"
	"gopkg.in/yaml.v3"
)

const (
	DESCRIBE_OUTPUT_TABLE = "table"
	DESCRIBE_OUTPUT_JSON  = "json"
	DESCRIBE_OUTPUT_YAML  = "yaml"
)

type describeResult struct {
	Descriptor   string `json:"descriptor" yaml:"descriptor"`
	Tag          string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Major        int    `json:"major" yaml:"major"`
	Minor        int    `json:"minor" yaml:"minor"`
	Patch        int    `json:"patch" yaml:"patch"`
	Commits      int    `json:"commits" yaml:"commits"`
	Prerelease   string `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
	Dirty        bool   `json:"dirty" yaml:"dirty"`
	RevisionCode string `json:"revision_code" yaml:"revision_code"`
	RevisionNum  uint32 `json:"revision_num" yaml:"revision_num"`
	Display      string `json:"display" yaml:"display"`
	SemVer       string `json:"semver,omitempty" yaml:"semver,omitempty"`
	HeadHash     string `json:"head_hash,omitempty" yaml:"head_hash,omitempty"`
}

func newDescribeResult(rev header.Revision, tag string) (*describeResult, error) {
	d := rev.Descriptor

	code, err := d.Code()
	if err != nil {
		return nil, err
	}

	result := &describeResult{
		Descriptor:   d.Raw,
		Tag:          tag,
		Major:        d.Major,
		Minor:        d.Minor,
		Patch:        d.Patch,
		Commits:      d.Commits,
		Prerelease:   d.Prerelease,
		Dirty:        d.Dirty,
		RevisionCode: code.Hex(),
		RevisionNum:  uint32(code),
		Display:      d.Display(),
		HeadHash:     rev.HeadHash,
	}
	if v, err := d.SemVer(); err == nil {
		result.SemVer = v.String()
	}

	return result, nil
}

func writeDescribeResult(w io.Writer, format string, result *describeResult) error {
	switch format {
	case DESCRIBE_OUTPUT_JSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case DESCRIBE_OUTPUT_YAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err

	case DESCRIBE_OUTPUT_TABLE:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendRows([]table.Row{
			{"Descriptor", result.Descriptor},
			{"Tag", result.Tag},
			{"Version", fmt.Sprintf("%d.%d.%d", result.Major, result.Minor, result.Patch)},
			{"Commits", result.Commits},
			{"Prerelease", result.Prerelease},
			{"Dirty", result.Dirty},
			{"Revision code", result.RevisionCode},
			{"Display", result.Display},
			{"SemVer", result.SemVer},
			{"HEAD", result.HeadHash},
		})
		t.Render()
		return nil

	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}
}

func NewDescribeCommand() *cobra.Command {
	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the revision of the current checkout",
		Long: strings.TrimSpace(dedent.Dedent(`
			Show the revision of the current checkout

			Parses the output of git describe into its version tuple and shows the
			revision code and display string a generated header would receive.
		`)),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			raw, _ := cmd.Flags().GetBool("raw")
			dir, _ := cmd.Flags().GetString("dir")
			options := describeOptionsFromFlags(cmd)

			repo, err := openRepository(dir)
			if err != nil {
				return err
			}

			if raw {
				descriptor, err := repo.Describe(options)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), descriptor)
				return nil
			}

			rev, err := readRevision(repo, options)
			if err != nil {
				return err
			}

			tag, err := repo.NearestTag(options)
			if err != nil {
				repo.Warn("No tag found: %s", err)
			}

			result, err := newDescribeResult(rev, tag)
			if err != nil {
				return err
			}

			return writeDescribeResult(cmd.OutOrStdout(), output, result)
		},
	}
	describeCmd.Flags().StringP("output", "O", DESCRIBE_OUTPUT_TABLE, "output format, table, json or yaml")
	describeCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{DESCRIBE_OUTPUT_TABLE, DESCRIBE_OUTPUT_JSON, DESCRIBE_OUTPUT_YAML}, cobra.ShellCompDirectiveNoFileComp
	})
	describeCmd.Flags().Bool("raw", false, "print the git descriptor only")
	addDescribeFlags(describeCmd)

	return describeCmd
}
