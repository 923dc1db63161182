package main

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags at release time.
var buildChangeID = "unknown"
var buildCommitID = "unknown"

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func versionString() string {
	commitID := buildCommitID
	if commitID == "unknown" {
		commitID = vcsRevision(debug.ReadBuildInfo)
	}
	return fmt.Sprintf("change_id %s\ncommit_id %s", buildChangeID, commitID)
}

// vcsRevision returns the revision the go toolchain stamped into the binary,
// or "unknown".
func vcsRevision(readBuildInfo func() (*debug.BuildInfo, bool)) string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "unknown"
	}
	revision, modified := "", false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return "unknown"
	}
	if modified {
		revision += "+dirty"
	}
	return revision
}
