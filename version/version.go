// Package version reports which build of wavetag is running.
package version

import (
	"cmp"
	"runtime/debug"
)

// Version is empty unless set at link time, e.g.
//
//	go build -ldflags "-X github.com/wavetag/wavetag/version.Version=v0.3.0" ./cmd/wavetag
var Version string

// Hash is the short VCS revision of the build, suffixed with -dirty when the
// tree had local modifications. Empty outside a VCS checkout.
var Hash = vcsHash()

// VersionOrHash is what the --version flag prints.
var VersionOrHash = cmp.Or(Version, Hash, "dev")

func vcsHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(revision) < 7 {
		return ""
	}
	if dirty {
		return revision[:7] + "-dirty"
	}
	return revision[:7]
}
