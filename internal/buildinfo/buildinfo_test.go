package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	orig := []string{Version, Date, Commit}
	t.Cleanup(func() { Version, Date, Commit = orig[0], orig[1], orig[2] })

	var buf bytes.Buffer
	Version, Date, Commit = "", "", ""
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())

	buf.Reset()
	Version, Date, Commit = "v1.0.0", "2025-05-01", "abc123"
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: v1.0.0\nBuild date: 2025-05-01\nBuild commit: abc123\n", buf.String())
}
