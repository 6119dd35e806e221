package version

import (
	"strings"
	"testing"
)

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "v1.0.0", GitCommit: "abc1234"}, "v1.0.0-abc1234"},
		{Info{Version: "v1.0.0", GitCommit: "abc1234", Dirty: true}, "v1.0.0-abc1234-dirty"},
		{Info{Version: "v1.0.0", Dirty: true}, "v1.0.0"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestGet_LinkerValues(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "v2.3.4"
	GitCommit = "0123456789abcdef"
	info := Get()
	if info.Version != "v2.3.4" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.GitCommit != "0123456" {
		t.Errorf("GitCommit = %q, want truncated to 7", info.GitCommit)
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); !strings.HasPrefix(ua, "restkit/") {
		t.Errorf("UserAgent = %q", ua)
	}
}
