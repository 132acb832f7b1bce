package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aspxloc/pkg/aspx"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []LineInfo
	}{
		{"empty", "", []LineInfo{}},
		{"single line", "abc", []LineInfo{{0, 3, 3}}},
		{"trailing newline", "ab\n", []LineInfo{{0, 2, 3}, {3, 3, 3}}},
		{"crlf", "a\r\nb", []LineInfo{{0, 1, 3}, {3, 4, 4}}},
		{"runes", "é\nü", []LineInfo{{0, 1, 2}, {2, 3, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, BuildLines([]rune(tt.text)))
		})
	}
}

func TestLineAt(t *testing.T) {
	t.Parallel()

	snap := NewFileSnapshot("", nil, "ab\nçd\n")

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{-1, 0, 0},
		{7, 0, 0},
	}

	for _, tt := range tests {
		line, col := snap.LineAt(tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}

	assert.Equal(t, 3, snap.LineCount())
	assert.Equal(t, "çd", snap.LineContent(2))
	assert.Empty(t, snap.LineContent(0))
	assert.Empty(t, snap.LineContent(4))
}

func TestFromSpan(t *testing.T) {
	t.Parallel()

	pos := FromSpan(aspx.BlockSpan{StartLine: 0, StartIndex: 4, EndLine: 2, EndIndex: 0})
	assert.Equal(t, SourcePosition{StartLine: 1, StartColumn: 5, EndLine: 3, EndColumn: 1}, pos)
	assert.True(t, pos.IsValid())
	assert.False(t, pos.IsSingleLine())
	assert.Equal(t, Position{Line: 1, Column: 5}, pos.Start())
	assert.Equal(t, Position{Line: 3, Column: 1}, pos.End())
	assert.False(t, SourcePosition{}.IsValid())
}

func TestSpanAt(t *testing.T) {
	t.Parallel()

	snap := NewFileSnapshot("", nil, "ab\nçd\n")

	span := snap.SpanAt(1, 3)
	assert.Equal(t, aspx.BlockSpan{
		StartLine: 0, StartIndex: 1, EndLine: 1, EndIndex: 1,
		AbsoluteCharOffset: 1, AbsoluteCharLength: 3,
	}, span)
	assert.Equal(t, "b\nç", snap.Slice(span))

	assert.Equal(t, aspx.BlockSpan{}, snap.SpanAt(5, 5))
	assert.Equal(t, aspx.BlockSpan{}, snap.SpanAt(-1, 1))
}
