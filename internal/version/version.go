// Package version carries build identification stamped in via ldflags.
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, commit, and build date in that order.
func Info() (version, commit, date string) {
	return Version, GitCommit, BuildDate
}
