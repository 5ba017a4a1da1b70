package testutil

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project describes one <project> element of a fixture manifest. An empty
// Revision omits the attribute.
type Project struct {
	Name     string
	Revision string
}

// ManifestXML renders a minimal manifest with one line per project
func ManifestXML(projects ...Project) string {
	var b strings.Builder
	b.WriteString("<manifest>\n")
	for _, p := range projects {
		b.WriteString(`  <project name="`)
		writeAttr(&b, p.Name)
		if p.Revision != "" {
			b.WriteString(`" revision="`)
			writeAttr(&b, p.Revision)
		}
		b.WriteString("\"/>\n")
	}
	b.WriteString("</manifest>\n")
	return b.String()
}

// writeAttr escapes value for a double-quoted attribute
func writeAttr(b *strings.Builder, value string) {
	_ = xml.EscapeText(b, []byte(value))
}

// WriteFile writes content to dir/name and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

// WriteManifest writes a fixture manifest built from projects
func WriteManifest(t *testing.T, dir, name string, projects ...Project) string {
	t.Helper()
	return WriteFile(t, dir, name, ManifestXML(projects...))
}

// ReadFile returns the content of path as a string
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
