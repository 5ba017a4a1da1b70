package manifest

import (
	"bytes"
	"fmt"
	"os"

	"github.com/antchfx/xmlquery"
)

// Loader reads manifest files into Documents
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the manifest at path. Read failures are returned
// wrapped; malformed XML yields a *ParseError naming the file.
func (l *Loader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return l.LoadFromBytes(path, data)
}

// LoadFromBytes parses manifest content. path is only used for error
// messages and Document.Path.
func (l *Loader) LoadFromBytes(path string, data []byte) (*Document, error) {
	root, err := xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			CharsetReader: charsetReader,
		},
		WithLineNumbers: true,
	})
	if err != nil {
		return nil, NewParseError(path, err)
	}
	if err := checkStructure(data); err != nil {
		return nil, NewParseError(path, err)
	}

	return NewDocument(path, root), nil
}
