// Package version carries build metadata stamped in by the linker.
package version

// Set at build time:
//
//	go build -ldflags "-X github.com/newtron-network/ipshow/pkg/version.Version=v1.0.0 \
//	  -X github.com/newtron-network/ipshow/pkg/version.GitCommit=abc1234 \
//	  -X github.com/newtron-network/ipshow/pkg/version.BuildDate=2026-01-01T00:00:00Z" ./cmd/ipshow
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo is the structured form of the build metadata.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

// Get returns the current build metadata.
func Get() BuildInfo {
	return BuildInfo{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}
}

// IsDev reports whether the binary was built without version ldflags.
func IsDev() bool { return Version == "dev" }

// Info returns a one-line version string for display.
func Info() string {
	if IsDev() {
		return "dev build"
	}
	return Version + " (" + GitCommit + ") built " + BuildDate
}
