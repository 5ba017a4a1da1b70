package manifest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// xmlHeader is written in front of every serialized manifest
const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// Document is a parsed manifest together with the file it came from
type Document struct {
	Path string
	Root *xmlquery.Node
}

// NewDocument wraps an already parsed tree
func NewDocument(path string, root *xmlquery.Node) *Document {
	return &Document{
		Path: path,
		Root: root,
	}
}

// Elements returns every element named tag, in document order
func (d *Document) Elements(tag string) ([]*xmlquery.Node, error) {
	if !ValidName(tag) {
		return nil, fmt.Errorf("%w: tag %q", ErrInvalidName, tag)
	}
	expr, err := xpath.Compile("//" + tag)
	if err != nil {
		return nil, fmt.Errorf("invalid tag %q: %w", tag, err)
	}
	return xmlquery.QuerySelectorAll(d.Root, expr), nil
}

// AttrMap maps the key attribute of every tag element to its value
// attribute. Later elements overwrite earlier ones with the same key.
func (d *Document) AttrMap(tag, keyAttr, valueAttr string) (map[string]string, error) {
	elements, err := d.Elements(tag)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(elements))
	for _, el := range elements {
		key, err := d.requireAttr(el, tag, keyAttr)
		if err != nil {
			return nil, err
		}
		value, err := d.requireAttr(el, tag, valueAttr)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

func (d *Document) requireAttr(el *xmlquery.Node, tag, name string) (string, error) {
	value, ok := Attr(el, name)
	if !ok {
		return "", &MissingAttributeError{
			Path:      d.Path,
			Tag:       tag,
			Attribute: name,
			Line:      el.LineNumber,
		}
	}
	return value, nil
}

// Attr returns the value of an unprefixed attribute and whether it is set
func Attr(el *xmlquery.Node, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Bytes renders the document as UTF-8 XML
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the document as UTF-8 XML. The XML declaration of the
// source, or the one the parser synthesizes when it is absent, is replaced
// by one declaring UTF-8.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	child := d.Root.FirstChild
	if child != nil && child.Type == xmlquery.DeclarationNode && child.Data == "xml" {
		child = child.NextSibling
	}
	if child == nil || child.Type != xmlquery.TextNode {
		buf.WriteByte('\n')
	}

	for ; child != nil; child = child.NextSibling {
		err := child.WriteWithOptions(&buf,
			xmlquery.WithOutputSelf(),
			xmlquery.WithEmptyTagSupport(),
		)
		if err != nil {
			return 0, err
		}
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
