package version

import (
	"fmt"
	"runtime"
)

// Name is the product name shown by the CLI.
const Name = "Regalium Core"

// Semantic version parts.
const (
	Major = 0
	Minor = 3
	Patch = 0
)

// Set at link time:
//
//	go build -ldflags "-X github.com/regalium/regalium-core/pkg/version.GitCommit=$(git rev-parse HEAD)"
var (
	PreRelease = ""
	GitCommit  = ""
	BuildDate  = ""
)

// Version returns the semantic version string
func Version() string {
	v := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
	if PreRelease != "" {
		v += "-" + PreRelease
	}
	return v
}

// BuildInfo contains build information for the version command.
type BuildInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	PreRelease string `json:"pre_release,omitempty"`
	GitCommit  string `json:"git_commit,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Name:       Name,
		Version:    Version(),
		PreRelease: PreRelease,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns "<version>" or "<version> (<short commit>)".
func String() string {
	if len(GitCommit) >= 7 {
		return fmt.Sprintf("%s (%s)", Version(), GitCommit[:7])
	}
	return Version()
}

// Full returns the version line with build details.
func Full() string {
	info := GetBuildInfo()
	result := fmt.Sprintf("%s v%s", info.Name, info.Version)
	if len(info.GitCommit) >= 7 {
		result += fmt.Sprintf(" (commit: %s)", info.GitCommit[:7])
	}
	if info.BuildDate != "" {
		result += fmt.Sprintf(" (built: %s)", info.BuildDate)
	}
	result += fmt.Sprintf(" (go: %s, platform: %s)", info.GoVersion, info.Platform)
	return result
}
