// Package header renders version values into a generated source header.
//
// Templates use mapping placeholders of the form %(name)s; %% is a literal
// percent sign. Anything else is copied through untouched.
package header

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	PlaceholderRevisionNum       = "revision_num"
	PlaceholderRevisionStr       = "revision_str"
	PlaceholderRevisionHash      = "revision_hash"
	PlaceholderRevisionShortHash = "revision_short_hash"
	PlaceholderRevisionSemver    = "revision_semver"
)

var placeholderPattern = regexp.MustCompile(`%%|%\(([A-Za-z_][A-Za-z0-9_]*)\)s`)

// Values maps placeholder names to their replacement text.
type Values map[string]string

// PlaceholderError is returned when a template references a value that was
// not provided.
type PlaceholderError struct {
	Name string
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("template placeholder '%%(%s)s' has no value", e.Name)
}

// Render substitutes every placeholder in template.
func Render(template string, values Values) (string, error) {
	var out strings.Builder
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(template, -1) {
		out.WriteString(template[last:loc[0]])
		last = loc[1]

		if loc[2] < 0 {
			out.WriteByte('%')
			continue
		}

		name := template[loc[2]:loc[3]]
		value, ok := values[name]
		if !ok {
			return "", &PlaceholderError{Name: name}
		}
		out.WriteString(value)
	}
	out.WriteString(template[last:])

	return out.String(), nil
}
