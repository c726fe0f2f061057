// Package version carries build-time version metadata.
package version

// Set via -ldflags at build time.
var (
	// Version is the semantic version of this build.
	Version = "0.1.0"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// GitCommit is the git commit hash the binary was built from.
	GitCommit = "unknown"
)
