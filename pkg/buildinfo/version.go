// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/libscope/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/libscope/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/libscope/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/libscope
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies libscope to upstream APIs. GitHub rejects requests
// without one.
func UserAgent() string {
	return "libscope/" + Version + " (+https://github.com/matzehuels/libscope)"
}
