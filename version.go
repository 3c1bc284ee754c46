package isobox

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the isobox library.
const Version = "0.1.0"

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string
	GitCommit string // from ldflags, else the VCS revision stamped by the go tool
	BuildTime string
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime can be set at build time:
//
//	go build -ldflags="-X github.com/simonhull/isobox.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/isobox.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/mp4dump
//
// Without ldflags they fall back to the VCS settings recorded in the binary.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
