package revision

import "fmt"

// ParseError is returned when a descriptor does not carry a usable version.
type ParseError struct {
	Descriptor string
	Reason     string
	// Untagged is set when git returned a bare commit hash because no tag is
	// reachable from HEAD
	Untagged bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse version descriptor '%s': %s", e.Descriptor, e.Reason)
}

// RangeError is returned when a version component does not fit its byte.
type RangeError struct {
	Component string
	Value     string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s version component %s is out of range 0-%d", e.Component, e.Value, MaxComponent)
}
