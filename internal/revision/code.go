package revision

import (
	"fmt"
	"strconv"
)

// MaxComponent is the largest value a tuple component can take once packed.
const MaxComponent = 0xFF

// Tuple is a version reduced to four numbers.
type Tuple struct {
	Major   int
	Minor   int
	Patch   int
	Commits int
}

func (t Tuple) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", t.Major, t.Minor, t.Patch, t.Commits)
}

// Code packs the tuple into a revision code, one byte per component with
// major in the most significant byte.
//
// Components are never truncated: ordering of codes must follow ordering of
// versions, so anything outside 0-255 is a *RangeError.
func (t Tuple) Code() (Code, error) {
	components := []struct {
		name  string
		value int
	}{
		{"major", t.Major},
		{"minor", t.Minor},
		{"patch", t.Patch},
		{"commits", t.Commits},
	}

	var code Code
	for _, component := range components {
		if component.value < 0 || component.value > MaxComponent {
			return 0, &RangeError{
				Component: component.name,
				Value:     strconv.Itoa(component.value),
			}
		}
		code = code<<8 | Code(component.value)
	}

	return code, nil
}

// Code is a packed revision number.
type Code uint32

// Tuple splits the code back into its four bytes.
func (c Code) Tuple() Tuple {
	return Tuple{
		Major:   int(c >> 24 & 0xFF),
		Minor:   int(c >> 16 & 0xFF),
		Patch:   int(c >> 8 & 0xFF),
		Commits: int(c & 0xFF),
	}
}

// Hex renders the code as a fixed width C hex literal, e.g. 0x01020304.
func (c Code) Hex() string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

func (c Code) Decimal() string {
	return strconv.FormatUint(uint64(c), 10)
}

func (c Code) String() string {
	return c.Hex()
}
