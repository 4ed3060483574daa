package git

import (
	"strings"
)

// AllTagNames lists every tag in the repository.
func (r *LocalRepository) AllTagNames() ([]string, error) {
	tags := []string{}

	output, err := r.ExecuteGitCommandQuiet("show-ref", "--tags")
	if err != nil {
		// show-ref exits non-zero when there is nothing to show
		return tags, nil
	}

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		parts := strings.Split(line, " ")
		if len(parts) != 2 || !strings.HasPrefix(parts[1], "refs/tags/") {
			continue
		}
		tags = append(tags, strings.TrimPrefix(parts[1], "refs/tags/"))
	}

	return tags, nil
}

// NearestTag returns the closest tag reachable from HEAD.
func (r *LocalRepository) NearestTag(options DescribeOptions) (string, error) {
	args := []string{"describe", "--tags", "--abbrev=0"}
	if options.Match != "" {
		args = append(args, "--match", options.Match)
	}

	return r.ExecuteGitCommandQuiet(args...)
}
