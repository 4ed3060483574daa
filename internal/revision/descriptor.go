// Package revision turns a `git describe --tags` descriptor into a numeric
// version tuple and renders it as a packed revision code or a display string.
//
// The accepted grammar is
//
//	v<major>.<minor>.<patch>[-<prerelease>][-<commits>-g<hash>][-dirty]
//
// Only the three version-core numbers and the commit count are numeric tokens.
// Digits inside a prerelease label (rc2, beta.1) are kept in the label and
// never shift the tuple.
package revision

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// TagPrefix is the conventional prefix of release tags.
const TagPrefix = "v"

var descriptorPattern = regexp.MustCompile(
	`^v?(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)` +
		`(?:-(?P<prerelease>[0-9A-Za-z.-]+?))??` +
		`(?:-(?P<commits>\d+)-g(?P<hash>[0-9a-f]+))?` +
		`(?P<dirty>-dirty)?$`,
)

// Descriptor is a parsed git describe string.
type Descriptor struct {
	Tuple

	// Raw is the descriptor as returned by git, without surrounding whitespace.
	Raw        string
	Prerelease string
	// Hash is the abbreviated commit hash without its "g" marker. Empty for an
	// exact tag.
	Hash  string
	Dirty bool
}

// Parse parses a descriptor into its version tuple.
//
// A bare commit hash, which is what git prints when no tag is reachable,
// is rejected with a *ParseError instead of being read as 0.0.0.
func Parse(raw string) (*Descriptor, error) {
	raw = strings.TrimSpace(raw)

	match := descriptorPattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, &ParseError{
			Descriptor: raw,
			Reason:     parseFailureReason(raw),
			Untagged:   bareHashPattern.MatchString(raw),
		}
	}
	group := func(name string) string {
		return match[descriptorPattern.SubexpIndex(name)]
	}

	d := &Descriptor{
		Raw:        raw,
		Prerelease: group("prerelease"),
		Hash:       group("hash"),
		Dirty:      group("dirty") != "",
	}

	fields := []struct {
		name string
		dst  *int
	}{
		{"major", &d.Major},
		{"minor", &d.Minor},
		{"patch", &d.Patch},
		{"commits", &d.Commits},
	}
	for _, field := range fields {
		token := group(field.name)
		if token == "" {
			// Only commits is optional
			continue
		}
		value, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, &RangeError{Component: field.name, Value: token}
			}
			return nil, &ParseError{Descriptor: raw, Reason: err.Error()}
		}
		*field.dst = int(value)
	}

	return d, nil
}

// Display returns the descriptor without its tag prefix.
func (d *Descriptor) Display() string {
	return Display(d.Raw)
}

// Display strips one leading tag prefix from a raw descriptor.
func Display(raw string) string {
	return strings.TrimPrefix(raw, TagPrefix)
}

func parseFailureReason(raw string) string {
	if raw == "" {
		return "empty descriptor"
	}
	if bareHashPattern.MatchString(raw) {
		return "no tag reachable from HEAD, is the repository tagged?"
	}
	if len(versionCoreNumbers.FindAllString(raw, -1)) < 3 {
		return "fewer than three version numbers, is the repository tagged?"
	}
	return "does not match v<major>.<minor>.<patch>[-<prerelease>][-<commits>-g<hash>]"
}

var (
	versionCoreNumbers = regexp.MustCompile(`\d+`)
	// git describe --always falls back to the abbreviated hash
	bareHashPattern = regexp.MustCompile(`^[0-9a-f]{4,40}(-dirty)?$`)
)
