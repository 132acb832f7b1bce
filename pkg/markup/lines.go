package markup

import (
	"sort"

	"github.com/yaklabco/aspxloc/pkg/aspx"
)

// BuildLines constructs line metadata from decoded text.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(text []rune) []LineInfo {
	if len(text) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range text {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && text[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a character offset to 1-based line and column numbers.
// Returns (0, 0) if the offset is out of range.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 || offset > len(f.Text) {
		return 0, 0
	}

	if offset == len(f.Text) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	return lineIdx + 1, offset - f.Lines[lineIdx].StartOffset + 1
}

// LineContent returns a 1-based line without its newline.
// Returns an empty string if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) string {
	if line < 1 || line > len(f.Lines) {
		return ""
	}

	info := f.Lines[line-1]
	return string(f.Text[info.StartOffset:info.NewlineStart])
}

// SpanAt builds a span covering length characters from offset.
// Returns an empty span if the range falls outside the text.
func (f *FileSnapshot) SpanAt(offset, length int) aspx.BlockSpan {
	if offset < 0 || length < 0 || offset+length > len(f.Text) {
		return aspx.BlockSpan{}
	}

	startLine, startCol := f.LineAt(offset)
	endLine, endCol := f.LineAt(offset + length)

	return aspx.BlockSpan{
		StartLine:          startLine - 1,
		StartIndex:         startCol - 1,
		EndLine:            endLine - 1,
		EndIndex:           endCol - 1,
		AbsoluteCharOffset: offset,
		AbsoluteCharLength: length,
	}
}
