package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info is the build version split into its semantic version parts.
type Info struct {
	Major      string `json:"major"`
	Minor      string `json:"minor"`
	Patch      string `json:"patch"`
	PreRelease string `json:"prerelease,omitempty"`
	Meta       string `json:"meta,omitempty"`
	Version    string `json:"version"`
	GoVersion  string `json:"goVersion"`
	Platform   string `json:"platform"`
}

// InfoFrom builds Info from the main module version of bi.
// Versions that are not semantic versions such as "(devel)" are reported as 0.0.0
// with Version holding the raw value.
func InfoFrom(bi *debug.BuildInfo) Info {
	info := Info{
		Major:     "0",
		Minor:     "0",
		Patch:     "0",
		Version:   bi.Main.Version,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	v, err := semver.NewVersion(bi.Main.Version)
	if err != nil {
		return info
	}
	info.Version = v.String()
	info.PreRelease = v.Prerelease()
	info.Meta = strings.TrimPrefix(v.Metadata(), "+")
	info.Major = strconv.FormatUint(v.Major(), 10)
	info.Minor = strconv.FormatUint(v.Minor(), 10)
	info.Patch = strconv.FormatUint(v.Patch(), 10)
	return info
}
