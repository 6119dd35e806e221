package version

import (
	"runtime/debug"
	"sync"
)

// Set at build time with -ldflags "-X github.com/kbukum/restkit/version.Version=v1.2.0".
var (
	Version   = "dev"
	GitCommit = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

var (
	buildOnce sync.Once
	buildInfo *debug.BuildInfo
)

func readBuildInfo() *debug.BuildInfo {
	buildOnce.Do(func() {
		if bi, ok := debug.ReadBuildInfo(); ok {
			buildInfo = bi
		}
	})
	return buildInfo
}

// Get returns the linker-provided values, completed from the embedded VCS
// stamp when they were not set.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	bi := readBuildInfo()
	if bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short renders "version", "version-commit" or "version-commit-dirty".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
		if i.Dirty {
			s += "-dirty"
		}
	}
	return s
}

// UserAgent is the User-Agent the HTTP transport sends by default.
func UserAgent() string {
	return "restkit/" + Get().Short()
}
