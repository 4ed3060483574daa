package cmd

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.olrik.dev/gitrev/internal/git"
	"go.olrik.dev/gitrev/internal/header"
	"go.olrik.dev/gitrev/internal/revision"
)

const testTemplate = `#define REVISION_NUM %(revision_num)s
#define REVISION_STR "%(revision_str)s"
`

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	t.Setenv("GITPATH", "")
	t.Setenv("GITREV_GIT_PATH", "")
	t.Setenv("GITREV_HEADER_NUMBER_FORMAT", "")
	t.Setenv("GITREV_VERBOSE", "")
}

// newTestRepository creates a repository with the given number of commits
// and tags the first one when tag is not empty.
func newTestRepository(t *testing.T, commits int, tag string) (string, []plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error = %v", err)
	}

	hashes := []plumbing.Hash{}
	for i := 0; i < commits; i++ {
		if err := os.WriteFile(filepath.Join(dir, "main.c"), []byte(strconv.Itoa(i)), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if _, err := worktree.Add("main.c"); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		hash, err := worktree.Commit("commit "+strconv.Itoa(i), &gogit.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(int64(1700000000+i), 0)},
		})
		if err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		hashes = append(hashes, hash)
	}

	if tag != "" {
		if _, err := repo.CreateTag(tag, hashes[0], nil); err != nil {
			t.Fatalf("CreateTag() error = %v", err)
		}
	}

	return dir, hashes
}

func writeTemplate(t *testing.T, dir string) (string, string) {
	t.Helper()

	templatePath := filepath.Join(dir, "version.h.in")
	if err := os.WriteFile(templatePath, []byte(testTemplate), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	return templatePath, filepath.Join(dir, "version.h")
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	stdout, _, err := runRootWithConfig(t, t.TempDir(), args...)
	return stdout, err
}

func runRootWithConfig(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config-path", configPath))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_CommitsSinceTag(t *testing.T) {
	requireGit(t)

	dir, hashes := newTestRepository(t, 3, "v1.2.3")
	templatePath, outputPath := writeTemplate(t, t.TempDir())

	_, err := runRoot(t, "generate", "-C", dir, "-t", templatePath)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := regexp.MustCompile(`^#define REVISION_NUM 0x01020302\n#define REVISION_STR "1\.2\.3-2-g` + hashes[2].String()[:7] + `[0-9a-f]*"\n$`)
	if !want.Match(data) {
		t.Errorf("header = %q, want match for %s", string(data), want)
	}
}

func TestGenerate_DecimalExactTag(t *testing.T) {
	requireGit(t)

	dir, _ := newTestRepository(t, 1, "v2.0.1")
	templatePath, _ := writeTemplate(t, t.TempDir())
	outputPath := filepath.Join(t.TempDir(), "custom.h")

	_, err := runRoot(t, "gen", "-C", dir, "-t", templatePath, "-o", outputPath, "--number-format", "decimal")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "#define REVISION_NUM 33554688\n#define REVISION_STR \"2.0.1\"\n"
	if string(data) != want {
		t.Errorf("header = %q, want %q", string(data), want)
	}
}

func TestGenerate_ShortHashExactTag(t *testing.T) {
	requireGit(t)

	dir, hashes := newTestRepository(t, 1, "v1.0.0")
	templatePath := filepath.Join(t.TempDir(), "hash.h.in")
	if err := os.WriteFile(templatePath, []byte("%(revision_short_hash)s %(revision_hash)s\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := runRoot(t, "generate", "-C", dir, "-t", templatePath)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = dir
	short, err := cmd.Output()
	if err != nil {
		t.Fatalf("git rev-parse error = %v", err)
	}

	data, err := os.ReadFile(strings.TrimSuffix(templatePath, ".in"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := strings.TrimSpace(string(short)) + " " + hashes[0].String() + "\n"
	if string(data) != want {
		t.Errorf("header = %q, want %q", string(data), want)
	}
}

func TestGenerate_UnwritableConfigPath(t *testing.T) {
	requireGit(t)

	dir, _ := newTestRepository(t, 1, "v1.0.0")
	templatePath, outputPath := writeTemplate(t, t.TempDir())

	blocker := filepath.Join(t.TempDir(), "not-a-directory")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, stderr, err := runRootWithConfig(t, filepath.Join(blocker, "gitrev"), "generate", "-C", dir, "-t", templatePath)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(stderr, "Unable to create config path") {
		t.Errorf("stderr = %q, want config path warning", stderr)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"1.0.0"`) {
		t.Errorf("header = %q, want revision 1.0.0", string(data))
	}
}

func TestGenerate_UntaggedWritesNothing(t *testing.T) {
	requireGit(t)

	dir, _ := newTestRepository(t, 1, "")
	templatePath, outputPath := writeTemplate(t, t.TempDir())

	_, err := runRoot(t, "generate", "-C", dir, "-t", templatePath)

	var parseErr *revision.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("generate error = %v, want *revision.ParseError", err)
	}
	if ExitCode(err) != EXIT_DATAERR {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), EXIT_DATAERR)
	}
	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Errorf("expected no header to be written, stat error = %v", statErr)
	}
}

func TestGenerate_OutOfRangeWritesNothing(t *testing.T) {
	requireGit(t)

	dir, _ := newTestRepository(t, 1, "v1.2.256")
	templatePath, outputPath := writeTemplate(t, t.TempDir())

	_, err := runRoot(t, "generate", "-C", dir, "-t", templatePath)

	var rangeErr *revision.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("generate error = %v, want *revision.RangeError", err)
	}
	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Errorf("expected no header to be written, stat error = %v", statErr)
	}
}

func TestGenerate_MissingGit(t *testing.T) {
	requireGit(t)

	templatePath, outputPath := writeTemplate(t, t.TempDir())

	_, err := runRoot(t, "generate", "-t", templatePath, "--git-path", filepath.Join(t.TempDir(), "no-such-git"))

	var toolErr *git.ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("generate error = %v, want *git.ExternalToolError", err)
	}
	if ExitCode(err) != EXIT_UNAVAILABLE {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), EXIT_UNAVAILABLE)
	}
	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Errorf("expected no header to be written, stat error = %v", statErr)
	}
}

func TestGenerate_MissingTemplate(t *testing.T) {
	requireGit(t)

	dir, _ := newTestRepository(t, 1, "v1.0.0")

	_, err := runRoot(t, "generate", "-C", dir, "-t", filepath.Join(t.TempDir(), "missing.h.in"))

	var ioErr *header.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("generate error = %v, want *header.IOError", err)
	}
	if ExitCode(err) != EXIT_IOERR {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), EXIT_IOERR)
	}
}

func TestGenerate_UnknownNumberFormat(t *testing.T) {
	_, err := runRoot(t, "generate", "--number-format", "octal")
	if err == nil || !strings.Contains(err.Error(), "unknown number format") {
		t.Fatalf("generate error = %v, want unknown number format", err)
	}
	if ExitCode(err) != EXIT_FAILURE {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), EXIT_FAILURE)
	}
}

func TestGenerateCommand_Flags(t *testing.T) {
	cmd := NewGenerateCommand()

	for name, shorthand := range map[string]string{
		"template": "t",
		"output":   "o",
		"dir":      "C",
	} {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("expected --%s flag to exist", name)
		}
		if flag.Shorthand != shorthand {
			t.Errorf("expected --%s shorthand -%s, got -%s", name, shorthand, flag.Shorthand)
		}
	}

	if flag := cmd.Flags().Lookup("template"); flag.DefValue != "src/version.h.in" {
		t.Errorf("expected default template %q, got %q", "src/version.h.in", flag.DefValue)
	}
}
