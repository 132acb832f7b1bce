package aspx

import "fmt"

// BlockSpan locates a construct in the parsed text.
// Lines and columns are 0-based. EndLine and EndIndex point just past the
// last character of the construct. Offsets and lengths count characters,
// not bytes.
type BlockSpan struct {
	StartLine  int
	StartIndex int
	EndLine    int
	EndIndex   int

	// AbsoluteCharOffset is the index of the first character in the whole input.
	AbsoluteCharOffset int

	// AbsoluteCharLength is the number of characters covered.
	AbsoluteCharLength int
}

// End returns the absolute offset just past the span.
func (s BlockSpan) End() int {
	return s.AbsoluteCharOffset + s.AbsoluteCharLength
}

// IsEmpty reports whether the span covers no characters.
func (s BlockSpan) IsEmpty() bool {
	return s.AbsoluteCharLength == 0
}

// Contains reports whether child lies entirely within s.
func (s BlockSpan) Contains(child BlockSpan) bool {
	return child.AbsoluteCharOffset >= s.AbsoluteCharOffset && child.End() <= s.End()
}

// Text returns the characters of src covered by the span.
// Out of range spans yield an empty string.
func (s BlockSpan) Text(src []rune) string {
	start, end := s.AbsoluteCharOffset, s.End()
	if start < 0 || end > len(src) || start > end {
		return ""
	}

	return string(src[start:end])
}

func (s BlockSpan) String() string {
	return fmt.Sprintf("%d:%d-%d:%d@%d+%d",
		s.StartLine, s.StartIndex, s.EndLine, s.EndIndex,
		s.AbsoluteCharOffset, s.AbsoluteCharLength)
}

// position is a cursor into the input.
type position struct {
	line   int
	col    int
	offset int
}

// shift moves the position within its line. Delimiters never contain line
// breaks, so corrections are applied to the column directly.
func (p position) shift(n int) position {
	return position{line: p.line, col: p.col + n, offset: p.offset + n}
}

// after reports whether p lies past the inclusive bound (line, col).
func (p position) after(line, col int) bool {
	return p.line > line || (p.line == line && p.col > col)
}

// spanBuilder records a span in two steps. Every hitStart must be followed
// by exactly one hitEnd before the span is reported.
type spanBuilder struct {
	start position
	open  bool
}

func (b *spanBuilder) hitStart(at position, correction int) {
	b.start = at.shift(correction)
	b.open = true
}

func (b *spanBuilder) hitEnd(at position, correction int) BlockSpan {
	if !b.open {
		panic("aspx: span ended before it was started")
	}

	end := at.shift(correction)
	b.open = false

	return BlockSpan{
		StartLine:          b.start.line,
		StartIndex:         b.start.col,
		EndLine:            end.line,
		EndIndex:           end.col,
		AbsoluteCharOffset: b.start.offset,
		AbsoluteCharLength: end.offset - b.start.offset,
	}
}
