package literal

import (
	"strconv"
	"strings"
	"unicode"
)

type scanner struct {
	src   []rune
	pos   int
	lang  Language
	out   []Literal
	noLoc bool
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		if unicode.IsSpace(s.src[s.pos]) {
			s.pos++
			continue
		}

		if s.lang == LanguageVB {
			s.stepVB()
		} else {
			s.stepC()
		}
	}
}

func (s *scanner) has(prefix string) bool {
	idx := s.pos
	for _, r := range prefix {
		if idx >= len(s.src) || s.src[idx] != r {
			return false
		}
		idx++
	}

	return true
}

func (s *scanner) at(offset int) rune {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.src) {
		return 0
	}

	return s.src[idx]
}

// stepC scans one token with C# or JavaScript rules.
func (s *scanner) stepC() {
	start := s.pos
	csharp := s.lang == LanguageCSharp

	switch {
	case s.has("//"):
		s.lineComment(2)
	case s.has("/*"):
		s.blockComment()
	case csharp && (s.has(`$@"`) || s.has(`@$"`)):
		s.verbatim(start, 3, true)
	case csharp && s.has(`@"`):
		s.verbatim(start, 2, false)
	case csharp && s.has(`$"`):
		s.quoted(start, 2, '"', true)
	case s.at(0) == '"':
		s.quoted(start, 1, '"', false)
	case s.at(0) == '\'' && csharp:
		s.charLiteral()
	case s.at(0) == '\'':
		s.quoted(start, 1, '\'', false)
	case s.at(0) == '`':
		s.template(start)
	default:
		s.noLoc = false
		s.pos++
	}
}

// stepVB scans one token with Visual Basic rules.
func (s *scanner) stepVB() {
	start := s.pos

	switch r := s.at(0); {
	case r == '\'' || r == '‘' || r == '’':
		s.lineComment(1)
	case s.atREM():
		s.lineComment(3)
	case s.has(`$"`):
		s.vbString(start, 2, true)
	case r == '"':
		s.vbString(start, 1, false)
	default:
		s.noLoc = false
		s.pos++
	}
}

func (s *scanner) atREM() bool {
	if s.pos+3 > len(s.src) || !strings.EqualFold(string(s.src[s.pos:s.pos+3]), "rem") {
		return false
	}
	if s.pos > 0 && !unicode.IsSpace(s.src[s.pos-1]) {
		return false
	}

	next := s.at(3)
	return next == 0 || unicode.IsSpace(next)
}

func (s *scanner) lineComment(prefixLen int) {
	begin := s.pos + prefixLen
	end := begin
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}

	s.noLoc = strings.TrimSpace(string(s.src[min(begin, end):end])) == NoLocMarker
	s.pos = end
}

func (s *scanner) blockComment() {
	begin := s.pos + 2
	end := begin
	for end+1 < len(s.src) && (s.src[end] != '*' || s.src[end+1] != '/') {
		end++
	}

	if end+1 >= len(s.src) {
		s.noLoc = false
		s.pos = len(s.src)
		return
	}

	s.noLoc = strings.TrimSpace(string(s.src[begin:end])) == NoLocMarker
	s.pos = end + 2
}

func (s *scanner) emit(start int, value string, verbatim, interpolated bool) {
	s.out = append(s.out, Literal{
		Value:        value,
		Raw:          string(s.src[start:s.pos]),
		Offset:       start,
		Length:       s.pos - start,
		Verbatim:     verbatim,
		Interpolated: interpolated,
		NoLoc:        s.noLoc,
	})
	s.noLoc = false
}

// quoted scans a single-line literal with backslash escapes.
func (s *scanner) quoted(start, prefixLen int, quote rune, interpolated bool) {
	s.pos = start + prefixLen
	var value strings.Builder
	depth := 0

	for s.pos < len(s.src) {
		r := s.src[s.pos]

		if depth > 0 {
			depth += holeDelta(r)
			value.WriteRune(r)
			s.pos++
			continue
		}

		switch {
		case r == quote:
			s.pos++
			s.emit(start, value.String(), false, interpolated)
			return
		case r == '\n':
			s.noLoc = false
			return
		case r == '\\':
			decoded, width := s.escape()
			value.WriteString(decoded)
			s.pos += width
			continue
		case interpolated && (r == '{' || r == '}') && s.at(1) == r:
			value.WriteRune(r)
			s.pos += 2
			continue
		case interpolated && r == '{':
			depth = 1
		}

		value.WriteRune(r)
		s.pos++
	}

	s.noLoc = false
}

// verbatim scans a C# @"..." literal where "" stands for a quote.
func (s *scanner) verbatim(start, prefixLen int, interpolated bool) {
	s.pos = start + prefixLen
	value, ok := s.doubledQuote(interpolated)
	if !ok {
		s.noLoc = false
		return
	}

	s.emit(start, value, true, interpolated)
}

func (s *scanner) vbString(start, prefixLen int, interpolated bool) {
	s.pos = start + prefixLen
	value, ok := s.doubledQuote(interpolated)
	if !ok {
		s.noLoc = false
		return
	}

	// "x"c is a Char literal.
	if next := s.at(0); (next == 'c' || next == 'C') && !unicode.IsLetter(s.at(1)) && !unicode.IsDigit(s.at(1)) {
		s.pos++
		s.noLoc = false
		return
	}

	s.emit(start, value, false, interpolated)
}

// doubledQuote reads up to a closing quote that is not doubled.
func (s *scanner) doubledQuote(interpolated bool) (string, bool) {
	var value strings.Builder
	depth := 0

	for s.pos < len(s.src) {
		r := s.src[s.pos]

		if depth > 0 {
			depth += holeDelta(r)
			value.WriteRune(r)
			s.pos++
			continue
		}

		switch {
		case r == '"' && s.at(1) == '"':
			value.WriteRune('"')
			s.pos += 2
			continue
		case r == '"':
			s.pos++
			return value.String(), true
		case interpolated && (r == '{' || r == '}') && s.at(1) == r:
			value.WriteRune(r)
			s.pos += 2
			continue
		case interpolated && r == '{':
			depth = 1
		}

		value.WriteRune(r)
		s.pos++
	}

	return "", false
}

// template scans a JavaScript `...` literal.
func (s *scanner) template(start int) {
	s.pos = start + 1
	var value strings.Builder
	depth := 0
	holes := false

	for s.pos < len(s.src) {
		r := s.src[s.pos]

		if depth > 0 {
			depth += holeDelta(r)
			value.WriteRune(r)
			s.pos++
			continue
		}

		switch {
		case r == '`':
			s.pos++
			s.emit(start, value.String(), false, holes)
			return
		case r == '\\':
			decoded, width := s.escape()
			value.WriteString(decoded)
			s.pos += width
			continue
		case r == '$' && s.at(1) == '{':
			value.WriteString("${")
			s.pos += 2
			depth = 1
			holes = true
			continue
		}

		value.WriteRune(r)
		s.pos++
	}

	s.noLoc = false
}

func (s *scanner) charLiteral() {
	s.pos++
	for steps := 0; s.pos < len(s.src) && steps < 10; steps++ {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '\'':
			s.pos++
			s.noLoc = false
			return
		case '\n':
			return
		}
		s.pos++
	}

	s.noLoc = false
}

// escape decodes the backslash sequence at the current position and
// returns the text and the number of characters consumed.
func (s *scanner) escape() (string, int) {
	next := s.at(1)

	switch next {
	case 0:
		return `\`, 1
	case 'n':
		return "\n", 2
	case 't':
		return "\t", 2
	case 'r':
		return "\r", 2
	case '0':
		return "\x00", 2
	case 'a':
		return "\a", 2
	case 'b':
		return "\b", 2
	case 'f':
		return "\f", 2
	case 'v':
		return "\v", 2
	case 'u', 'x':
		width := 0
		for width < 4 && isHex(s.at(2+width)) {
			width++
		}
		if width == 0 || (next == 'u' && width != 4) {
			return string(next), 2
		}

		code, err := strconv.ParseUint(string(s.src[s.pos+2:s.pos+2+width]), 16, 32)
		if err != nil {
			return string(next), 2
		}

		return string(rune(code)), 2 + width
	default:
		return string(next), 2
	}
}

func holeDelta(r rune) int {
	switch r {
	case '{':
		return 1
	case '}':
		return -1
	default:
		return 0
	}
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
