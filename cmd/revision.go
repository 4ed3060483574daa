package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.olrik.dev/gitrev/internal/core"
	"go.olrik.dev/gitrev/internal/git"
	"go.olrik.dev/gitrev/internal/header"
	"go.olrik.dev/gitrev/internal/revision"
)

func openRepository(dir string) (*git.LocalRepository, error) {
	repo, err := git.GetLocalRepository(core.GitPath(), dir)
	if err != nil {
		return nil, err
	}
	repo.Verbose = core.Verbosity()

	return repo, nil
}

// readRevision asks git for the descriptor of HEAD and parses it.
func readRevision(repo *git.LocalRepository, options git.DescribeOptions) (header.Revision, error) {
	raw, err := repo.Describe(options)
	if err != nil {
		return header.Revision{}, err
	}

	descriptor, err := revision.Parse(raw)
	if err != nil {
		var parseErr *revision.ParseError
		if errors.As(err, &parseErr) && parseErr.Untagged {
			repo.Err("No version tag reachable from HEAD, tag a release first: git tag v0.1.0")
		}
		return header.Revision{}, err
	}

	headHash, err := repo.HeadHash()
	if err != nil {
		return header.Revision{}, fmt.Errorf("read HEAD commit: %w", err)
	}

	shortHash, err := repo.ShortHeadHash()
	if err != nil {
		return header.Revision{}, err
	}

	return header.Revision{Descriptor: descriptor, HeadHash: headHash, ShortHash: shortHash}, nil
}

func describeOptionsFromFlags(cmd *cobra.Command) git.DescribeOptions {
	match, _ := cmd.Flags().GetString("match")
	dirty, _ := cmd.Flags().GetBool("dirty")

	return git.DescribeOptions{Match: match, Dirty: dirty}
}

func addDescribeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "C", ".", "run as if started in this directory")
	cmd.Flags().String("match", "", "only consider tags matching this glob")
	cmd.RegisterFlagCompletionFunc("match", tagNameCompletions)
	cmd.Flags().Bool("dirty", false, "mark builds from a modified work tree with -dirty")
}

func tagNameCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	suggestions := []string{}

	dir, _ := cmd.Flags().GetString("dir")
	repo, err := openRepository(dir)
	if err != nil {
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}

	validOptions, err := repo.AllTagNames()
	if err != nil {
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}

	// Filter suggestions based on what the user has typed
	for _, option := range validOptions {
		if strings.HasPrefix(option, toComplete) {
			suggestions = append(suggestions, option)
		}
	}

	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
