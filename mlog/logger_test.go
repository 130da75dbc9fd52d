package mlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	_, _, err := NewLogger(&LogConfig{Level: "nope"})
	require.Error(t, err)

	lg, closeLog, err := NewLogger(&LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, lg)
	closeLog()

	f := filepath.Join(t.TempDir(), "out.log")
	lg, closeLog, err = NewLogger(&LogConfig{Level: "info", File: f, Production: true})
	require.NoError(t, err)
	lg.Info("hello")
	closeLog()

	b, err := os.ReadFile(f)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"hello"`)

	// the file is closed, nothing reaches it anymore
	lg.Info("after close")
	b, err = os.ReadFile(f)
	require.NoError(t, err)
	require.NotContains(t, string(b), "after close")
}
