package core

import (
	"runtime/debug"

	"go.olrik.dev/gitrev/internal/revision"
)

// version is set via ldflags at build time, gitrev can stamp itself:
//
// -ldflags "-X go.olrik.dev/gitrev/internal/core.version=$(gitrev describe --raw)"
var version string

// Version is the resolved application version, without tag prefix.
var Version = resolveVersion()

func resolveVersion() string {
	if version != "" {
		return revision.Display(version)
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return revision.Display(info.Main.Version)
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return "(devel) " + setting.Value[:7]
		}
	}

	return "(devel)"
}
