package version

import (
	"fmt"
	"runtime"
)

const (
	Major    = 0
	Minor    = 1
	Patch    = 0
	RepoName = "expensed"
)

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func Version() string {
	return fmt.Sprintf("v%d.%d.%d", Major, Minor, Patch)
}

func FullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)",
		Version(), GitCommit, BuildTime, runtime.Version())
}
