package manifest

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// checkStructure rejects documents the tree parser accepts but XML does
// not: more than one root element, text outside the root element and
// repeated attributes on one element.
func checkStructure(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charsetReader

	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			if depth == 0 {
				roots++
				if roots > 1 {
					return fmt.Errorf("line %d: <%s> is a second root element", line, t.Name.Local)
				}
			}
			if name, ok := repeatedAttr(t.Attr); ok {
				return fmt.Errorf("line %d: <%s> repeats attribute %q", line, t.Name.Local, name)
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				return fmt.Errorf("line %d: text outside the root element", line)
			}
		}
	}
}

func repeatedAttr(attrs []xml.Attr) (string, bool) {
	seen := make(map[xml.Name]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a.Name]; ok {
			if a.Name.Space != "" {
				return a.Name.Space + ":" + a.Name.Local, true
			}
			return a.Name.Local, true
		}
		seen[a.Name] = struct{}{}
	}
	return "", false
}
