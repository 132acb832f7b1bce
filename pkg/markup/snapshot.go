// Package markup holds the parsed view of a Web Forms file used by the
// rule engine: the decoded text, its line index and the ordered list of
// parser events with their element nesting.
package markup

import (
	"strings"

	"github.com/yaklabco/aspxloc/pkg/aspx"
)

// FileSnapshot is an immutable view of a markup file at a specific time.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes as read from disk.
	Content []byte

	// Text is the decoded content. Event spans index into Text.
	Text []rune

	// Lines contains metadata for each line of Text.
	Lines []LineInfo

	// Events is the parser output in document order.
	Events []Event

	// Language is the server code language of the page, such as "csharp" or "vb".
	Language string
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the character index of the line start.
	StartOffset int

	// NewlineStart is the character index where newline characters begin.
	// For lines without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the character index just after the newline (or end of text).
	EndOffset int
}

// NewFileSnapshot creates a snapshot with its line index built.
// Events are filled in by a Builder.
func NewFileSnapshot(path string, content []byte, text string) *FileSnapshot {
	runes := []rune(text)

	return &FileSnapshot{
		Path:    path,
		Content: content,
		Text:    runes,
		Lines:   BuildLines(runes),
	}
}

// Slice returns the text covered by span.
func (f *FileSnapshot) Slice(span aspx.BlockSpan) string {
	return span.Text(f.Text)
}

// Directive returns the first directive with the given name, compared
// case-insensitively.
func (f *FileSnapshot) Directive(name string) *aspx.DirectiveContext {
	for _, ev := range f.Events {
		if ev.Kind == EventDirective && strings.EqualFold(ev.Directive.DirectiveName, name) {
			return ev.Directive
		}
	}

	return nil
}

// Enclosing returns the element event that contains ev, or nil at top level.
func (f *FileSnapshot) Enclosing(ev *Event) *Event {
	if ev.Parent < 0 || ev.Parent >= len(f.Events) {
		return nil
	}

	return &f.Events[ev.Parent]
}

// Ancestors returns the element events enclosing ev, innermost first.
func (f *FileSnapshot) Ancestors(ev *Event) []*Event {
	var out []*Event
	for parent := f.Enclosing(ev); parent != nil; parent = f.Enclosing(parent) {
		out = append(out, parent)
	}

	return out
}
