package cmd

import (
	"errors"

	"go.olrik.dev/gitrev/internal/git"
	"go.olrik.dev/gitrev/internal/header"
	"go.olrik.dev/gitrev/internal/revision"
)

// Exit codes follow sysexits.h so build systems can tell a missing tag from
// a missing git.
const (
	EXIT_FAILURE     = 1
	EXIT_DATAERR     = 65
	EXIT_UNAVAILABLE = 69
	EXIT_IOERR       = 74
)

func ExitCode(err error) int {
	var parseErr *revision.ParseError
	var rangeErr *revision.RangeError
	var toolErr *git.ExternalToolError
	var ioErr *header.IOError

	switch {
	case errors.As(err, &parseErr), errors.As(err, &rangeErr):
		return EXIT_DATAERR
	case errors.As(err, &toolErr):
		return EXIT_UNAVAILABLE
	case errors.As(err, &ioErr):
		return EXIT_IOERR
	default:
		return EXIT_FAILURE
	}
}
