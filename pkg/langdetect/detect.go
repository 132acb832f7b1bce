// Package langdetect guesses the language of code embedded in Web Forms
// markup. It uses go-enry for file extensions and as a fallback classifier
// when no characteristic pattern is found.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Detected language identifiers.
const (
	LangCSharp     = "csharp"
	LangVB         = "vb"
	LangJavaScript = "javascript"
	LangText       = "text"
)

// Candidate names as known to go-enry.
var candidates = []string{"C#", "Visual Basic .NET", "JavaScript"}

var (
	vbKeywords = regexp.MustCompile(`(?im)^\s*(dim\s|end\s+(if|sub|function|with|select)\b|next\b|imports\s|` +
		`(private|protected|public)\s+(sub|function)\s)|\bthen\s*$|\bas\s+(string|integer|boolean|object)\b`)
	csharpKeywords = regexp.MustCompile(`(?m);\s*$|\b(foreach|using|namespace)\s*[\(\w]|\b(string|int|bool|var)\s+\w+\s*=`)
	jsKeywords     = regexp.MustCompile(`\bfunction\s*\w*\s*\(|=>|\bdocument\.|\bwindow\.|console\.log|\$\(|===|\b(let|const)\s`)
)

// Detect returns the detected language for code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	// Strategy 1: language-specific patterns.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 2: classifier restricted to the languages Web Forms hosts.
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// FromFilename returns the language implied by a file extension, such as
// the CodeFile of a page. Returns "" when the extension is not recognized.
func FromFilename(name string) string {
	if name == "" {
		return ""
	}

	// Extensions such as .cs are shared with unrelated languages, so take
	// the first candidate Web Forms can host.
	for _, lang := range enry.GetLanguagesByExtension(filepath.Base(name), nil, nil) {
		if normalized := normalize(lang); normalized != LangText {
			return normalized
		}
	}

	return ""
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) string {
	switch {
	case vbKeywords.Match(content):
		return LangVB
	case jsKeywords.Match(content):
		return LangJavaScript
	case csharpKeywords.Match(content):
		return LangCSharp
	default:
		return ""
	}
}

// normalize converts go-enry language names to identifiers.
func normalize(lang string) string {
	switch strings.ToLower(lang) {
	case "c#":
		return LangCSharp
	case "visual basic .net", "visual basic", "vba", "vbscript", "visual basic 6.0":
		return LangVB
	case "javascript", "jscript":
		return LangJavaScript
	default:
		return LangText
	}
}
