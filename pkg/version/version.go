// Package version provides build information for envctl.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the current version of envctl.
	// This is set during build time via ldflags.
	Version = "dev"

	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"

	// Commit is the git commit SHA that the binary was built from.
	Commit = "unknown"
)

// Info returns version information as a formatted string.
func Info() string {
	commitID := Commit
	if len(commitID) > 8 {
		commitID = commitID[:8]
	}

	return fmt.Sprintf("envctl %s (%s) - %s %s/%s",
		Version,
		commitID,
		BuildTime,
		runtime.GOOS,
		runtime.GOARCH,
	)
}
