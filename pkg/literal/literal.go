// Package literal finds string literals in the server and client code
// embedded in Web Forms markup.
package literal

import (
	"strings"
)

// Language selects the lexical rules used by Extract.
type Language uint8

// Supported code languages.
const (
	LanguageUnknown Language = iota
	LanguageCSharp
	LanguageVB
	LanguageJavaScript
)

// String returns the canonical language identifier.
func (l Language) String() string {
	switch l {
	case LanguageCSharp:
		return "csharp"
	case LanguageVB:
		return "vb"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// ParseLanguage maps directive values and identifiers to a Language.
func ParseLanguage(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c#", "cs", "csharp", "c sharp":
		return LanguageCSharp
	case "vb", "vbnet", "vb.net", "visualbasic", "visual basic", "visual basic .net":
		return LanguageVB
	case "js", "javascript", "jscript", "ecmascript":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// NoLocMarker is the comment text that excludes the following literal or
// element from localization.
const NoLocMarker = "VL_NO_LOC"

// IsNoLocComment reports whether code consists of a single comment holding
// the no-localize marker, in C#, VB or line-comment form.
func IsNoLocComment(code string) bool {
	text := strings.TrimSpace(code)

	switch {
	case len(text) >= 4 && strings.HasPrefix(text, "/*") && strings.HasSuffix(text, "*/"):
		text = text[2 : len(text)-2]
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case strings.HasPrefix(text, "'"):
		text = text[1:]
	default:
		return false
	}

	return strings.TrimSpace(text) == NoLocMarker
}

// Literal is a string literal found in code.
type Literal struct {
	// Value is the decoded content with escapes resolved.
	Value string

	// Raw is the literal as written, including prefix and quotes.
	Raw string

	// Offset and Length locate Raw in the scanned code, in characters.
	Offset int
	Length int

	Verbatim     bool
	Interpolated bool

	// NoLoc is set when the literal directly follows a no-localize marker.
	NoLoc bool
}

// Extract returns the string literals of code in order of appearance.
// Unknown languages are scanned with C# rules. Unterminated literals are
// dropped.
func Extract(code string, lang Language) []Literal {
	s := &scanner{src: []rune(code), lang: lang}
	if lang == LanguageUnknown {
		s.lang = LanguageCSharp
	}

	s.run()

	return s.out
}
