// Package version exposes build information injected through -ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Set at build time with -ldflags "-X github.com/os2iot/iotconsole/pkg/version.version=...".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info is the build information printed by "iotconsole version".
type Info struct {
	Version   string `json:"version"   yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform"  yaml:"platform"`
}

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// Get returns the full build information.
func Get() Info {
	return Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// IsRelease reports whether the version is a valid semantic version without
// a pre-release suffix.
func IsRelease() bool {
	v, err := semver.NewVersion(version)
	return err == nil && v.Prerelease() == ""
}
