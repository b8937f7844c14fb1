// Package version exposes build metadata stamped via ldflags.
package version

// Overridden at build time with -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
