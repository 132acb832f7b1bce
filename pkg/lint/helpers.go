package lint

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yaklabco/aspxloc/pkg/markup"
)

// Text helpers.

// HasLetters reports whether s contains at least one letter.
// Text without letters, such as "&nbsp;" or "|", never needs translation.
func HasLetters(s string) bool {
	entity := false
	for _, r := range s {
		switch {
		case r == '&':
			entity = true
		case r == ';' || unicode.IsSpace(r):
			entity = false
		case !entity && unicode.IsLetter(r):
			return true
		}
	}
	return false
}

// Element helpers.

// InsideElement reports whether ev is nested in an unprefixed element with
// one of the given names, compared case-insensitively.
func InsideElement(file *markup.FileSnapshot, ev *markup.Event, names ...string) bool {
	for _, anc := range file.Ancestors(ev) {
		if anc.Element.Prefix != "" {
			continue
		}
		for _, name := range names {
			if strings.EqualFold(anc.Element.ElementName, name) {
				return true
			}
		}
	}
	return false
}

// IsServerControl reports whether the element carries runat="server".
func IsServerControl(ev *markup.Event) bool {
	if ev.Kind != markup.EventElementBegin {
		return false
	}
	attr, ok := ev.Element.Attribute("runat")
	return ok && strings.EqualFold(strings.TrimSpace(attr.Value), "server")
}

// Script helpers.

var (
	scriptOpenPattern = regexp.MustCompile(`(?is)^<script\b`)
	runatPattern      = regexp.MustCompile(`(?i)\brunat\s*=\s*["']?\s*server\b`)
	languagePattern   = regexp.MustCompile(`(?i)\blanguage\s*=\s*["']([^"']*)["']`)
)

// ScriptTag returns the opening <script ...> tag of a code block that holds
// a script body. ok is false for <% %> code blocks.
func ScriptTag(file *markup.FileSnapshot, ev *markup.Event) (string, bool) {
	if ev.Kind != markup.EventCodeBlock {
		return "", false
	}

	outer := ev.CodeBlock.OuterBlockSpan
	inner := ev.CodeBlock.InnerBlockSpan
	if inner.AbsoluteCharOffset < outer.AbsoluteCharOffset || inner.AbsoluteCharOffset > len(file.Text) {
		return "", false
	}

	tag := string(file.Text[outer.AbsoluteCharOffset:inner.AbsoluteCharOffset])
	if !scriptOpenPattern.MatchString(tag) {
		return "", false
	}

	return tag, true
}

// IsServerScript reports whether a script opening tag runs at the server.
func IsServerScript(tag string) bool {
	return runatPattern.MatchString(tag)
}

// ScriptLanguage returns the language attribute of a script opening tag.
func ScriptLanguage(tag string) string {
	match := languagePattern.FindStringSubmatch(tag)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// Line helpers.

// LineText returns the 1-based line of the file without its newline.
func LineText(file *markup.FileSnapshot, lineNum int) string {
	if file == nil {
		return ""
	}
	return file.LineContent(lineNum)
}
