package header

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"
)

// IOError is returned when the template cannot be read or the header cannot
// be written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DefaultOutputPath derives the header path from its template by dropping a
// trailing .in, so src/version.h.in renders to src/version.h.
func DefaultOutputPath(templatePath string) string {
	if output := strings.TrimSuffix(templatePath, ".in"); output != templatePath {
		return output
	}
	return templatePath + ".out"
}

// Generate renders the template at templatePath into outputPath. The output
// is either written completely or left as it was.
func Generate(templatePath, outputPath string, values Values) error {
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return &IOError{Op: "read template", Path: templatePath, Err: err}
	}

	content, err := Render(string(template), values)
	if err != nil {
		return err
	}

	return WriteFile(outputPath, []byte(content))
}

// WriteFile replaces path with data through a temporary file in the same
// directory, so readers never observe a partial header.
func WriteFile(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}
