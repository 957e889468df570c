package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ver "github.com/hol-platform/labcheck/internal/version"
)

func TestRunVersion(t *testing.T) {
	original := ver.Version
	t.Cleanup(func() { ver.Version = original })

	ver.Version = "1.2.3"
	out := captureStdout(t, func() {
		require.NoError(t, runVersion())
	})
	assert.Equal(t, "1.2.3\n", out)
}

func TestRunVersion_EmptyFallsBackToDev(t *testing.T) {
	original := ver.Version
	t.Cleanup(func() { ver.Version = original })

	ver.Version = "  "
	out := captureStdout(t, func() {
		require.NoError(t, runVersion())
	})
	assert.Equal(t, "dev\n", out)
}
