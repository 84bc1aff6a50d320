// Package buildinfo reports the build metadata injected at link time:
//
//	go build -ldflags "-X github.com/ticketly/ticketly/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/ticketly/ticketly/internal/buildinfo.Date=2025-05-01 \
//	  -X github.com/ticketly/ticketly/internal/buildinfo.Commit=abc123"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = ""
	Date    = ""
	Commit  = ""
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes version, date and commit to w, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", orNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(Commit))
}
