package manifest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// charsetReader converts input in the encoding named by an XML declaration
// to UTF-8. Manifests are always written back as UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == unicode.UTF8 {
		return input, nil
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
