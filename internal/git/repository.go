package git

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
)

// DefaultExecutable is looked up on PATH when no git location is configured.
const DefaultExecutable = "git"

type LocalRepository struct {
	// GitPath is the resolved git executable
	GitPath string
	// Dir is the directory git commands run in
	Dir        string
	Verbose    int
	Output     io.Writer
	Repository *git.Repository
}

// ExternalToolError is returned when git cannot be found, cannot be run or
// exits with a non-zero status.
type ExternalToolError struct {
	Path   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	command := strings.TrimSpace(strings.Join(append([]string{e.Path}, e.Args...), " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", command, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// ResolveExecutable locates the git executable. An empty path means git on PATH.
func ResolveExecutable(path string) (string, error) {
	if path == "" {
		path = DefaultExecutable
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", &ExternalToolError{Path: path, Err: err}
	}

	return resolved, nil
}

// GetLocalRepository opens the repository containing dir and prepares git
// commands to run there with the given executable.
func GetLocalRepository(gitPath, dir string) (*LocalRepository, error) {
	resolved, err := ResolveExecutable(gitPath)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		dir = "."
	}

	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &ExternalToolError{
			Path: resolved,
			Err:  fmt.Errorf("%s is not inside a git repository: %w", dir, err),
		}
	}

	repo := &LocalRepository{
		GitPath:    resolved,
		Dir:        dir,
		Output:     os.Stderr,
		Repository: r,
	}

	return repo, nil
}

func (r *LocalRepository) Note(format string, arg ...any) {
	if r.Verbose < 1 {
		return
	}
	format = fmt.Sprintf("# %s", format)
	fmt.Fprintln(r.output(), color.HiBlackString("%s", fmt.Sprintf(format, arg...)))
}

func (r *LocalRepository) Warn(format string, arg ...any) {
	format = fmt.Sprintf("# %s", format)
	fmt.Fprintln(r.output(), color.HiYellowString("%s", fmt.Sprintf(format, arg...)))
}

func (r *LocalRepository) Err(format string, arg ...any) {
	format = fmt.Sprintf("# %s", format)
	fmt.Fprintln(r.output(), color.HiRedString("%s", fmt.Sprintf(format, arg...)))
}

func (r *LocalRepository) output() io.Writer {
	if r.Output == nil {
		return os.Stderr
	}
	return r.Output
}

// ExecuteGitCommand runs git, echoing the command line when verbose.
func (r *LocalRepository) ExecuteGitCommand(arg ...string) (string, error) {
	if r.Verbose > 0 {
		fmt.Fprintln(r.output(), color.CyanString("$ git %s", strings.Join(arg, " ")))
	}

	return r.ExecuteGitCommandQuiet(arg...)
}

func (r *LocalRepository) ExecuteGitCommandQuiet(arg ...string) (string, error) {
	cmd := exec.Command(r.GitPath, arg...)
	cmd.Dir = r.Dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", &ExternalToolError{
			Path:   r.GitPath,
			Args:   arg,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// HeadHash returns the full hash of the checked out commit.
func (r *LocalRepository) HeadHash() (string, error) {
	ref, err := r.Repository.Head()
	if err != nil {
		return "", err
	}

	return ref.Hash().String(), nil
}

func (r *LocalRepository) ShortHeadHash() (string, error) {
	return r.ExecuteGitCommandQuiet("rev-parse", "--short", "HEAD")
}
