package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_Valid(t *testing.T) {
	loader := NewLoader()

	content := `<?xml version="1.0" encoding="UTF-8"?>
<manifest>
  <remote name="origin" fetch=".."/>
  <project name="platform/build" revision="master"/>
  <project name="platform/core" revision="refs/tags/v1.0"/>
</manifest>
`
	path := filepath.Join(t.TempDir(), "default.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := loader.Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, path, doc.Path)
	projects, err := doc.Elements("project")
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	doc, err := loader.Load("/nonexistent/path/manifest.xml")

	assert.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestLoader_Load_ReadError(t *testing.T) {
	loader := NewLoader()

	path := filepath.Join(t.TempDir(), "manifest.xml")
	require.NoError(t, os.Mkdir(path, 0755))

	doc, err := loader.Load(path)

	assert.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "failed to read manifest file")
}

func TestLoader_Load_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"mismatched end tag", `<manifest><project name="a" revision="b"></manifest>`},
		{"unclosed root", `<manifest><project name="a" revision="b"/>`},
		{"unquoted attribute", `<manifest><project name=a/></manifest>`},
		{"no element", `<?xml version="1.0"?>`},
		{"empty file", ``},
		{"two root elements", `<manifest/><manifest/>`},
		{"trailing text", `<manifest/>junk`},
		{"leading text", `junk<manifest/>`},
		{"repeated attribute", `<manifest><project name="a" name="b" revision="c"/></manifest>`},
		{"repeated attribute on root", `<project name="a" name="b" revision="c"/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader()
			path := filepath.Join(t.TempDir(), "broken.xml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			doc, err := loader.Load(path)

			require.Error(t, err)
			assert.Nil(t, doc)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, path, parseErr.Path)
			assert.Contains(t, err.Error(), "failed to parse "+path+": ")
		})
	}
}

func TestLoadFromBytes(t *testing.T) {
	loader := NewLoader()

	doc, err := loader.LoadFromBytes("inline.xml", []byte(`<manifest><project name="a" revision="b"/></manifest>`))
	require.NoError(t, err)

	assert.Equal(t, "inline.xml", doc.Path)
	revisions, err := doc.AttrMap("project", "name", "revision")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b"}, revisions)
}

func TestLoadFromBytes_RecordsLineNumbers(t *testing.T) {
	loader := NewLoader()

	doc, err := loader.LoadFromBytes("lines.xml", []byte("<manifest>\n  <project name=\"a\" revision=\"b\"/>\n  <project name=\"c\" revision=\"d\"/>\n</manifest>"))
	require.NoError(t, err)

	projects, err := doc.Elements("project")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 2, projects[0].LineNumber)
	assert.Equal(t, 3, projects[1].LineNumber)
}

func TestLoader_LoadFromBytes_Latin1(t *testing.T) {
	loader := NewLoader()

	// "café" in ISO-8859-1
	content := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<manifest><project name=\"caf\xe9\" revision=\"r1\"/></manifest>\n")

	doc, err := loader.LoadFromBytes("latin1.xml", content)
	require.NoError(t, err)

	revisions, err := doc.AttrMap("project", "name", "revision")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"café": "r1"}, revisions)

	out := string(doc.Bytes())
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `name="café"`)
	assert.NotContains(t, out, "ISO-8859-1")
}

func TestLoader_LoadFromBytes_UnknownEncoding(t *testing.T) {
	loader := NewLoader()

	content := []byte(`<?xml version="1.0" encoding="x-no-such-charset"?><manifest/>`)

	_, err := loader.LoadFromBytes("odd.xml", content)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "odd.xml", parseErr.Path)
	assert.Contains(t, err.Error(), "x-no-such-charset")
}

func TestLoadFromBytes_StructureErrorsCiteLine(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadFromBytes("dup.xml", []byte("<manifest>\n  <project name=\"a\" name=\"b\" revision=\"c\"/>\n</manifest>"))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), `repeats attribute "name"`)
}

func TestLoadFromBytes_AllowsProlog(t *testing.T) {
	loader := NewLoader()

	content := "<?xml version=\"1.0\"?>\n<!-- pinned -->\n<manifest>\n  <project name=\"a\" revision=\"b\"/>\n</manifest>\n<!-- end -->\n"

	doc, err := loader.LoadFromBytes("prolog.xml", []byte(content))
	require.NoError(t, err)
	assert.Contains(t, string(doc.Bytes()), "<!-- pinned -->")
}
