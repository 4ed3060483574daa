package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	GITREV_HOOK_DIRECTORY        = ".gitrev.hooks.d"
	GITREV_HOOK_HEADER_GENERATED = "header-generated.sh"
)

// RunHook runs an executable from the hook directory of the repository when
// it exists. A missing hook is not an error.
func (r *LocalRepository) RunHook(hookFile string, arg ...string) error {
	hookFile, err := filepath.Abs(filepath.Join(r.Dir, GITREV_HOOK_DIRECTORY, hookFile))
	if err != nil {
		return err
	}

	_, err = os.Stat(hookFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	r.Note("Running hook %s", filepath.Base(hookFile))
	cmd := exec.Command(hookFile, arg...)
	cmd.Dir = r.Dir
	output, err := cmd.Output()
	if err != nil {
		return &ExternalToolError{Path: hookFile, Args: arg, Err: err}
	}
	if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
		fmt.Fprintln(r.output(), trimmed)
	}

	return nil
}
