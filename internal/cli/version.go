package cli

import (
	"runtime/debug"
	"strings"
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// buildVersion decides what --version prints. A value injected at link time
// wins; binaries built with go install fall back to the module version the
// toolchain stamps, then to the recorded VCS revision.
func buildVersion(injected string) string {
	injected = strings.TrimSpace(injected)
	if injected != "" && injected != "dev" {
		return injected
	}
	if info, ok := readBuildInfo(); ok && info != nil {
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
			return v
		}
		if stamp := vcsStamp(info.Settings); stamp != "" {
			return stamp
		}
	}
	if injected == "" {
		return "dev"
	}
	return injected
}

// vcsStamp shortens the commit hash and marks locally modified trees.
func vcsStamp(settings []debug.BuildSetting) string {
	revision := ""
	modified := false
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = strings.TrimSpace(setting.Value)
		case "vcs.modified":
			modified = strings.EqualFold(strings.TrimSpace(setting.Value), "true")
		}
	}
	if revision == "" {
		return ""
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if modified {
		revision += "-dirty"
	}
	return revision
}
