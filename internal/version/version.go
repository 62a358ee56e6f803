// Package version exposes build metadata for igd-setup.
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// Set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/igd-setup/internal/version.release=v1.2.3 \
//	                   -X github.com/muurk/igd-setup/internal/version.revision=abc123"
var (
	release  = ""
	revision = ""
)

// Info describes the running build
type Info struct {
	// Version is the release tag, or a dev identifier for untagged builds
	Version string
	// Commit is the abbreviated VCS revision, "unknown" when unavailable
	Commit string
	// Dirty reports uncommitted changes in the build tree
	Dirty bool
}

// Get returns the build info, assembled once from ldflags and, where
// those are unset, from the VCS details the Go toolchain embeds
var Get = sync.OnceValue(func() Info {
	info := Info{Version: release, Commit: revision}

	if bi, ok := debug.ReadBuildInfo(); ok {
		var revTime string
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(s.Value)
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "vcs.time":
				revTime = s.Value
			}
		}
		// No tags in build info, so untagged builds get a dev version
		// derived from the commit date.
		if info.Version == "" && revTime != "" {
			if t, err := time.Parse(time.RFC3339, revTime); err == nil {
				info.Version = "dev-" + t.Format("20060102")
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev-" + time.Now().Format("20060102-150405")
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	return info
})

func shortRevision(rev string) string {
	if len(rev) > 7 {
		rev = rev[:7]
	}
	return rev
}

// Short returns just the version identifier
func Short() string {
	return Get().Version
}

// String returns the version with commit details
func String() string {
	info := Get()
	commit := info.Commit
	if info.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit: %s)", info.Version, commit)
}
