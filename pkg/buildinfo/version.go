// Package buildinfo holds version metadata stamped at build time.
package buildinfo

import "fmt"

// Set via -ldflags at release time:
//
//	-X github.com/jtran/techtree/pkg/buildinfo.Version=v1.2.3
//	-X github.com/jtran/techtree/pkg/buildinfo.Commit=abc1234
//	-X github.com/jtran/techtree/pkg/buildinfo.Date=2026-08-29
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a single-line version summary.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt:  %s\n", Version, Commit, Date)
}
