package manifest

import (
	"fmt"
	"regexp"
)

// xmlNameRegex matches unprefixed XML names
var xmlNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// ValidName reports whether name can be used as an element or attribute name
func ValidName(name string) bool {
	return xmlNameRegex.MatchString(name)
}

// Validate rejects options naming something other than a plain XML element
// or attribute
func (o Options) Validate() error {
	o = o.withDefaults()
	for _, n := range []struct{ field, value string }{
		{"tag", o.Tag},
		{"match attribute", o.MatchAttr},
		{"replace attribute", o.ReplaceAttr},
	} {
		if !ValidName(n.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidName, n.field, n.value)
		}
	}
	return nil
}
