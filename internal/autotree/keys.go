package autotree

import (
	"strings"

	"github.com/roach88/oort/internal/ir"
)

// Reserved keys shared with downstream serializers. These must not change.
const (
	URIKey      = "$uri"
	BNodeKey    = "$id"
	DatatypeKey = "$datatype"
	ValueKey    = "$value"
	LangTag     = "@"
)

// LangKey returns the mapping key for a language tag, e.g. "@en".
func LangKey(lang string) string {
	return LangTag + lang
}

// IsLangNode reports whether v is a language-tagged mapping.
func IsLangNode(v ir.Value) bool {
	obj, ok := v.(ir.Object)
	if !ok {
		return false
	}
	for k := range obj {
		if strings.HasPrefix(k, LangTag) {
			return true
		}
	}
	return false
}

// IsDatatypeNode reports whether v is a datatype-carrying mapping.
func IsDatatypeNode(v ir.Value) bool {
	obj, ok := v.(ir.Object)
	if !ok {
		return false
	}
	_, has := obj[DatatypeKey]
	return has
}

// IsLiteral reports whether v is anything but a resource-shaped mapping.
// Language and datatype mappings count as literals.
func IsLiteral(v ir.Value) bool {
	if _, ok := v.(ir.Object); !ok {
		return true
	}
	return IsDatatypeNode(v) || IsLangNode(v)
}

// IsResource reports whether v is a resource-shaped mapping. Mappings
// without "$uri" or "$id" (anonymous nodes) are resources too.
func IsResource(v ir.Value) bool {
	return !IsLiteral(v)
}
