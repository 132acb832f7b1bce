package aspx

type attrState int

const (
	attrIdle attrState = iota
	attrName
	attrAfterName
	attrBeforeValue
	attrValue
	attrUnquoted
	attrStray
)

// attrScanner collects name="value" pairs inside an opening tag or a
// directive. Only quoted values are recorded. Bare names and unquoted
// values are skipped.
type attrScanner struct {
	state     attrState
	nameStart int
	nameEnd   int
	quote     rune
	value     spanBuilder
	aspTags   bool
	attrs     []AttributeInfo
}

// inValue reports whether the scanner is between the quotes of a value.
func (s *attrScanner) inValue() bool {
	return s.state == attrValue
}

// markAspTags flags the value being scanned as containing an ASP tag.
func (s *attrScanner) markAspTags() {
	if s.state == attrValue {
		s.aspTags = true
	}
}

// step consumes the current character.
func (s *attrScanner) step(p *Parser) {
	s.classify(p, p.peek(0))
	p.advance(1)
}

func (s *attrScanner) classify(p *Parser, r rune) {
	switch s.state {
	case attrIdle:
		switch {
		case isIdentifierStart(r):
			s.nameStart = p.cur.offset
			s.nameEnd = p.cur.offset + 1
			s.state = attrName
		case isQuote(r):
			s.quote = r
			s.state = attrStray
		}

	case attrName:
		if isNamePart(r) || r == ':' {
			s.nameEnd = p.cur.offset + 1
			return
		}

		s.state = attrAfterName
		s.classify(p, r)

	case attrAfterName:
		switch {
		case r == '=':
			s.state = attrBeforeValue
		case !isSpace(r):
			s.state = attrIdle
			s.classify(p, r)
		}

	case attrBeforeValue:
		switch {
		case isQuote(r):
			s.quote = r
			s.aspTags = false
			s.value.hitStart(p.cur, lenQuote)
			s.state = attrValue
		case !isSpace(r):
			s.state = attrUnquoted
		}

	case attrValue:
		if r != s.quote {
			return
		}

		span := s.value.hitEnd(p.cur, 0)
		s.attrs = append(s.attrs, AttributeInfo{
			Name:            string(p.text[s.nameStart:s.nameEnd]),
			Value:           span.Text(p.text),
			BlockSpan:       span,
			ContainsAspTags: s.aspTags,
		})
		s.aspTags = false
		s.state = attrIdle

	case attrUnquoted:
		if isSpace(r) {
			s.state = attrIdle
		}

	case attrStray:
		if r == s.quote {
			s.state = attrIdle
		}
	}
}
