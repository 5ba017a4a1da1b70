package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	baseErr := errors.New("XML syntax error on line 1: unexpected EOF")
	err := NewParseError("default.xml", baseErr)

	assert.Equal(t, "failed to parse default.xml: XML syntax error on line 1: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, baseErr)
}

func TestMissingAttributeError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &MissingAttributeError{Path: "static.xml", Tag: "project", Attribute: "revision", Line: 4}

		assert.Equal(t, `static.xml:4: <project> element has no "revision" attribute`, err.Error())
		assert.ErrorIs(t, err, ErrMissingAttribute)
	})

	t.Run("without line", func(t *testing.T) {
		err := &MissingAttributeError{Path: "static.xml", Tag: "project", Attribute: "name"}

		assert.Equal(t, `static.xml: <project> element has no "name" attribute`, err.Error())
	})
}

func TestMissingReplacementError(t *testing.T) {
	err := &MissingReplacementError{Key: "platform/build", Path: "static.xml"}

	assert.Equal(t, "Value revision missing for platform/build in static.xml", err.Error())
	assert.ErrorIs(t, err, ErrMissingReplacement)
	assert.NotErrorIs(t, err, ErrNodeNotFound)
}

func TestNodeNotFoundError(t *testing.T) {
	err := &NodeNotFoundError{Key: "x", SourcePath: "default.xml", MatchPath: "projects.xml"}

	assert.Equal(t, "x selected by projects.xml not found in default.xml", err.Error())
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
