package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Workspace creates an isolated temporary directory, points HOME at it so
// no user config is picked up, and makes it the working directory.
func Workspace(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return dir
}

// AssertNoFile fails when path exists
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "unexpected file %s", path)
}
