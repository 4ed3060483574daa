package revision

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blang/semver"
)

// SemVer renders the descriptor as a semantic version. Commits since the tag,
// the hash and the dirty marker become build metadata, so 1.2.3-rc2-4-gabcdef
// reads 1.2.3-rc2+4.gabcdef.
func (d *Descriptor) SemVer() (semver.Version, error) {
	v := semver.Version{
		Major: uint64(d.Major),
		Minor: uint64(d.Minor),
		Patch: uint64(d.Patch),
	}

	if d.Prerelease != "" {
		for _, part := range strings.Split(d.Prerelease, ".") {
			pr, err := semver.NewPRVersion(part)
			if err != nil {
				return semver.Version{}, fmt.Errorf("prerelease '%s': %w", d.Prerelease, err)
			}
			v.Pre = append(v.Pre, pr)
		}
	}

	if d.Hash != "" {
		v.Build = append(v.Build, strconv.Itoa(d.Commits), "g"+d.Hash)
	}
	if d.Dirty {
		v.Build = append(v.Build, "dirty")
	}

	if err := v.Validate(); err != nil {
		return semver.Version{}, err
	}

	return v, nil
}
