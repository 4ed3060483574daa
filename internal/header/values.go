package header

import (
	"fmt"

	"go.olrik.dev/gitrev/internal/revision"
)

// NumberFormat selects how the revision code is written.
type NumberFormat string

const (
	NumberFormatHex     NumberFormat = "hex"
	NumberFormatDecimal NumberFormat = "decimal"
)

func ParseNumberFormat(s string) (NumberFormat, error) {
	switch format := NumberFormat(s); format {
	case NumberFormatHex, NumberFormatDecimal:
		return format, nil
	case "":
		return NumberFormatHex, nil
	default:
		return "", fmt.Errorf("unknown number format '%s', expected hex or decimal", s)
	}
}

// Revision is everything known about the build's revision.
type Revision struct {
	Descriptor *revision.Descriptor
	HeadHash string
	// ShortHash is git's abbreviation of HeadHash, used when the descriptor
	// is an exact tag and carries no hash of its own
	ShortHash string
}

// NewValues computes the placeholder values for a revision. It fails with a
// *revision.RangeError before anything is written when the version does not
// pack, and when the version is not valid semver.
func NewValues(rev Revision, format NumberFormat) (Values, error) {
	code, err := rev.Descriptor.Code()
	if err != nil {
		return nil, err
	}

	num := code.Hex()
	if format == NumberFormatDecimal {
		num = code.Decimal()
	}

	values := Values{
		PlaceholderRevisionNum:       num,
		PlaceholderRevisionStr:       rev.Descriptor.Display(),
		PlaceholderRevisionHash:      rev.HeadHash,
		PlaceholderRevisionShortHash: rev.Descriptor.Hash,
	}
	if values[PlaceholderRevisionShortHash] == "" {
		values[PlaceholderRevisionShortHash] = rev.ShortHash
	}

	v, err := rev.Descriptor.SemVer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PlaceholderRevisionSemver, err)
	}
	values[PlaceholderRevisionSemver] = v.String()

	return values, nil
}
