// Package misc holds small helpers shared by all commands.
package misc

import (
	"runtime/debug"
)

const appName = "dzr"

// Set by the linker during release builds, see project build notes.
var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns the short program name used for logs, temporary
// directories and report naming.
func GetAppName() string {
	return appName
}

// GetVersion returns program version - either linker supplied or taken from
// module build information.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns VCS revision recorded in build information when linker
// did not supply one.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
