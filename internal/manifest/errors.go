package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrMissingAttribute indicates a selected element lacks a required attribute
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrMissingReplacement indicates the static manifest has no entry for a project
	ErrMissingReplacement = errors.New("replacement value missing")

	// ErrNodeNotFound indicates a selected project is absent from the source manifest
	ErrNodeNotFound = errors.New("node not found in source manifest")

	// ErrInvalidName indicates a tag or attribute name that is not an XML name
	ErrInvalidName = errors.New("invalid XML name")
)

// ParseError is returned when a manifest is not well-formed XML
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(path string, err error) *ParseError {
	return &ParseError{
		Path: path,
		Err:  err,
	}
}

// MissingAttributeError is returned when an element selected by tag does
// not carry an attribute the merge depends on.
type MissingAttributeError struct {
	Path      string
	Tag       string
	Attribute string
	Line      int
}

func (e *MissingAttributeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: <%s> element has no %q attribute", e.Path, e.Line, e.Tag, e.Attribute)
	}
	return fmt.Sprintf("%s: <%s> element has no %q attribute", e.Path, e.Tag, e.Attribute)
}

func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}

// MissingReplacementError records a project that has no counterpart in the
// static manifest. It never aborts a merge.
type MissingReplacementError struct {
	Key  string
	Path string
}

func (e *MissingReplacementError) Error() string {
	return fmt.Sprintf("Value revision missing for %s in %s", e.Key, e.Path)
}

func (e *MissingReplacementError) Unwrap() error {
	return ErrMissingReplacement
}

// NodeNotFoundError is returned when the match manifest names a project
// the source manifest does not contain.
type NodeNotFoundError struct {
	Key        string
	SourcePath string
	MatchPath  string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("%s selected by %s not found in %s", e.Key, e.MatchPath, e.SourcePath)
}

func (e *NodeNotFoundError) Unwrap() error {
	return ErrNodeNotFound
}
