package testutil

import (
	"os"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// Revisions parses the manifest at path and maps every project name to
// its revision. Projects without a revision map to the empty string.
func Revisions(t *testing.T, path string) map[string]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	root, err := xmlquery.Parse(f)
	require.NoError(t, err, "parse %s", path)

	revisions := make(map[string]string)
	for _, p := range xmlquery.Find(root, "//project") {
		revisions[p.SelectAttr("name")] = p.SelectAttr("revision")
	}
	return revisions
}

// AssertRevisions compares the project revisions of the manifest at path
func AssertRevisions(t *testing.T, path string, want map[string]string) {
	t.Helper()

	if diff := cmp.Diff(want, Revisions(t, path)); diff != "" {
		t.Errorf("revisions of %s mismatch (-want +got):\n%s", path, diff)
	}
}
