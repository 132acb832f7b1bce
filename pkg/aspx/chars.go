package aspx

import (
	"strings"
	"unicode"
)

// isIdentifierStart reports whether r may begin a tag or attribute name.
func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Pc, r)
}

// isIdentifierPart reports whether r may continue a tag or attribute name:
// letters, decimal digits, connector punctuation, combining marks and
// format characters.
func isIdentifierPart(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.In(r, unicode.Nd, unicode.Pc, unicode.Mn, unicode.Mc, unicode.Cf)
}

// isNamePart extends identifiers with the joiners found in markup names
// such as data-title or xml.lang.
func isNamePart(r rune) bool {
	return isIdentifierPart(r) || r == '-' || r == '.'
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func findAttribute(attrs []AttributeInfo, name string) (AttributeInfo, bool) {
	for _, attr := range attrs {
		if strings.EqualFold(attr.Name, name) {
			return attr, true
		}
	}

	return AttributeInfo{}, false
}
