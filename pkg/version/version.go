package version

import "fmt"

// Set at build time with -ldflags "-X github.com/compozy/hellopr/pkg/version.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns the one-line form printed by --version.
func Summary() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
