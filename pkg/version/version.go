// Package version carries build metadata for lglass.
package version

// Version, GitCommit, and BuildDate are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/newtron-network/lglass/pkg/version.Version=v0.3.0 \
//	  -X github.com/newtron-network/lglass/pkg/version.GitCommit=abc1234 \
//	  -X github.com/newtron-network/lglass/pkg/version.BuildDate=2026-10-01T00:00:00Z" ./cmd/lglass
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns a formatted version string for display.
func Info() string {
	return Version + " (" + GitCommit + ") built " + BuildDate
}

