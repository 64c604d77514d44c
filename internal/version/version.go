package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/templatizer/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/templatizer/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/templatizer/internal/version.Date={{.Date}}
)

// String returns the multi-line version banner
func String() string {
	return fmt.Sprintf("templatizer version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
