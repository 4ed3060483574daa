package git

// DescribeOptions tune the git describe query.
type DescribeOptions struct {
	// Match only considers tags matching this glob
	Match string
	// Dirty appends -dirty when the work tree has local modifications
	Dirty bool
}

func (o DescribeOptions) args() []string {
	args := []string{"describe", "--tags", "--always"}
	if o.Dirty {
		args = append(args, "--dirty")
	}
	if o.Match != "" {
		args = append(args, "--match", o.Match)
	}
	return args
}

// Describe returns the nearest tag plus commits since, e.g. v1.2.3-4-gabcdef.
// Without any reachable tag git prints the abbreviated hash only.
func (r *LocalRepository) Describe(options DescribeOptions) (string, error) {
	r.Note("Describe HEAD")

	return r.ExecuteGitCommand(options.args()...)
}
