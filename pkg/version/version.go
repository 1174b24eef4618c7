// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/libris/pkg/version.version=v0.3.0 \
//	  -X github.com/rshade/libris/pkg/version.gitCommit=$(git rev-parse --short HEAD)"
//
//nolint:gochecknoglobals // ldflags targets
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// UserAgent returns the HTTP User-Agent sent to the catalog API.
func UserAgent() string {
	return fmt.Sprintf("libris/%s (+https://github.com/rshade/libris; %s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

// Info returns a one-line description for `libris --version` style output.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", version, gitCommit, buildDate, runtime.Version())
}

// IsRelease reports whether the version is a stable semantic version
// (no pre-release suffix). Local "dev" builds are not releases.
func IsRelease() bool {
	return isRelease(version)
}

func isRelease(v string) bool {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return parsed.Prerelease() == ""
}
