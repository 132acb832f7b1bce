package aspx

import (
	"strings"
	"unicode"
)

// Delimiters recognized by the parser.
const (
	delimAspOpen            = "<%"
	delimAspClose           = "%>"
	delimServerCommentOpen  = "<%--"
	delimServerCommentClose = "--%>"
	delimClientCommentOpen  = "<!--"
	delimClientCommentClose = "-->"
	delimEndTagOpen         = "</"
	delimScriptEnd          = "</script>"
)

// Span corrections. A construct is recognized once its delimiter has been
// consumed, so spans that exclude the delimiter step back by its length.
const (
	lenAspOpen            = len(delimAspOpen)
	lenAspClose           = len(delimAspClose)
	lenServerCommentOpen  = len(delimServerCommentOpen)
	lenServerCommentClose = len(delimServerCommentClose)
	lenClientCommentOpen  = len(delimClientCommentOpen)
	lenClientCommentClose = len(delimClientCommentClose)
	lenTagOpen            = 1
	lenEndTagOpen         = len(delimEndTagOpen)
	lenScriptEnd          = len(delimScriptEnd)
	lenQuote              = 1
)

const scriptElement = "script"

// Unbounded as maxLine disables the scan limit of NewBoundedParser. As
// maxIndex alone it places the limit just before the start of maxLine.
const Unbounded = -1

// Parser tokenizes one document. A Parser must not be shared between
// goroutines.
type Parser struct {
	text     []rune
	handler  Handler
	maxLine  int
	maxIndex int

	cur       position
	stack     []frame
	inComment bool
	stopping  bool
}

// NewParser returns a parser that scans the whole text.
func NewParser(text string, handler Handler) *Parser {
	return NewBoundedParser(text, handler, Unbounded, Unbounded)
}

// NewBoundedParser returns a parser that stops once it passes the inclusive
// position (maxLine, maxIndex). A negative maxLine disables the bound.
func NewBoundedParser(text string, handler Handler, maxLine, maxIndex int) *Parser {
	if handler == nil {
		handler = BaseHandler{}
	}

	return &Parser{
		text:     []rune(text),
		handler:  handler,
		maxLine:  maxLine,
		maxIndex: maxIndex,
	}
}

// Process scans the text and reports every construct to the handler.
func (p *Parser) Process() {
	p.cur = position{}
	p.inComment = false
	p.stopping = false
	p.stack = []frame{&textFrame{}}

	for p.cur.offset < len(p.text) {
		if !p.stopping && p.shouldStop() {
			p.stopping = true
		}

		// Constructs are never abandoned halfway.
		if p.stopping && len(p.stack) == 1 {
			break
		}

		p.top().step(p)
	}

	if text, ok := p.top().(*textFrame); ok {
		text.flush(p, 0)
	}

	p.stack = nil
}

func (p *Parser) shouldStop() bool {
	if p.maxLine >= 0 && p.cur.after(p.maxLine, p.maxIndex) {
		return true
	}

	return p.handler.StopRequested()
}

func (p *Parser) top() frame {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(f frame) {
	p.stack = append(p.stack, f)
}

func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

// peek returns the character n positions ahead, or 0 past the end.
func (p *Parser) peek(n int) rune {
	idx := p.cur.offset + n
	if idx < 0 || idx >= len(p.text) {
		return 0
	}

	return p.text[idx]
}

func (p *Parser) hasPrefix(delim string) bool {
	idx := p.cur.offset
	for _, r := range delim {
		if idx >= len(p.text) || p.text[idx] != r {
			return false
		}
		idx++
	}

	return true
}

func (p *Parser) hasPrefixFold(delim string) bool {
	idx := p.cur.offset
	for _, r := range delim {
		if idx >= len(p.text) || unicode.ToLower(p.text[idx]) != r {
			return false
		}
		idx++
	}

	return true
}

// advance consumes n characters.
func (p *Parser) advance(n int) {
	for ; n > 0 && p.cur.offset < len(p.text); n-- {
		if p.text[p.cur.offset] == '\n' {
			p.cur.line++
			p.cur.col = 0
		} else {
			p.cur.col++
		}
		p.cur.offset++
	}
}

// enterNested handles server comments and ASP tags that interrupt an
// element or a script body. It reports whether it consumed anything.
func (p *Parser) enterNested(owner *elementFrame) bool {
	switch {
	case p.hasPrefix(delimServerCommentOpen):
		p.advance(lenServerCommentOpen)
		p.push(&serverCommentFrame{})
	case p.hasPrefix(delimAspOpen):
		p.advance(lenAspOpen)
		p.push(newAspFrame(p, owner))
	default:
		return false
	}

	return true
}

// frame is one state of the parser. The frame on top of the stack consumes
// input; the frames below it are suspended until it is popped.
type frame interface {
	step(p *Parser)
}

// textFrame accumulates plain text between constructs.
type textFrame struct {
	span spanBuilder
}

func (f *textFrame) step(p *Parser) {
	switch {
	case p.hasPrefix(delimServerCommentOpen):
		p.advance(lenServerCommentOpen)
		f.flush(p, -lenServerCommentOpen)
		p.push(&serverCommentFrame{})

	case p.hasPrefix(delimAspOpen):
		p.advance(lenAspOpen)
		f.flush(p, -lenAspOpen)
		p.push(newAspFrame(p, nil))

	case p.hasPrefix(delimClientCommentOpen):
		p.advance(lenClientCommentOpen)
		f.flush(p, -lenClientCommentOpen)
		p.inComment = true

	case p.inComment && p.hasPrefix(delimClientCommentClose):
		p.advance(lenClientCommentClose)
		f.flush(p, -lenClientCommentClose)
		p.inComment = false

	case p.hasPrefix(delimEndTagOpen):
		p.advance(lenEndTagOpen)
		f.flush(p, -lenEndTagOpen)
		p.push(newElementFrame(p, -lenEndTagOpen, true))

	case p.peek(0) == '<' && (isIdentifierStart(p.peek(1)) || p.peek(1) == '!'):
		p.advance(lenTagOpen)
		f.flush(p, -lenTagOpen)
		p.push(newElementFrame(p, -lenTagOpen, false))

	default:
		if !f.span.open {
			f.span.hitStart(p.cur, 0)
		}
		p.advance(1)
	}
}

// flush reports the pending text run, ending correction characters away
// from the current position.
func (f *textFrame) flush(p *Parser, correction int) {
	if !f.span.open {
		return
	}

	span := f.span.hitEnd(p.cur, correction)
	text := span.Text(p.text)
	if isBlank(text) {
		return
	}

	p.handler.OnPlainText(&PlainTextContext{
		Text:                    text,
		BlockSpan:               span,
		WithinClientSideComment: p.inComment,
	})
}

// serverCommentFrame swallows everything up to --%>.
type serverCommentFrame struct{}

func (f *serverCommentFrame) step(p *Parser) {
	if p.hasPrefix(delimServerCommentClose) {
		p.advance(lenServerCommentClose)
		p.pop()
		return
	}

	p.advance(1)
}

type nameState int

const (
	nameStart nameState = iota
	nameBody
	nameDone
)

// elementFrame scans an opening or closing tag up to its '>'.
type elementFrame struct {
	span    spanBuilder
	closing bool

	naming    nameState
	prefix    string
	nameBegin int
	nameEnd   int

	attrs  attrScanner
	quotes int
	slash  bool
}

func newElementFrame(p *Parser, correction int, closing bool) *elementFrame {
	f := &elementFrame{closing: closing}
	f.span.hitStart(p.cur, correction)
	f.nameBegin = p.cur.offset
	f.nameEnd = p.cur.offset

	return f
}

func (f *elementFrame) step(p *Parser) {
	if p.enterNested(f) {
		return
	}

	r := p.peek(0)

	// A '>' inside an odd number of double quotes belongs to a value.
	if r == '>' && f.quotes%2 == 0 {
		p.advance(1)
		f.close(p)
		return
	}

	if r == '"' {
		f.quotes++
	}

	if f.naming != nameDone && f.scanName(p, r) {
		p.advance(1)
		return
	}

	switch {
	case r == '/' && !f.attrs.inValue():
		f.slash = true
	case !isSpace(r):
		f.slash = false
	}

	f.attrs.step(p)
}

// scanName consumes r if it belongs to the tag name.
func (f *elementFrame) scanName(p *Parser, r rune) bool {
	switch f.naming {
	case nameStart:
		if isIdentifierStart(r) || (r == '!' && !f.closing) {
			f.nameEnd = p.cur.offset + 1
			f.naming = nameBody
			return true
		}
	case nameBody:
		if isNamePart(r) {
			f.nameEnd = p.cur.offset + 1
			return true
		}
		if r == ':' && f.prefix == "" {
			f.prefix = string(p.text[f.nameBegin:f.nameEnd])
			f.nameBegin = p.cur.offset + 1
			f.nameEnd = f.nameBegin
			return true
		}
	}

	f.naming = nameDone

	return false
}

func (f *elementFrame) name(p *Parser) string {
	return string(p.text[f.nameBegin:f.nameEnd])
}

func (f *elementFrame) close(p *Parser) {
	p.pop()
	name := f.name(p)

	if !f.closing && !f.slash && f.prefix == "" && strings.EqualFold(name, scriptElement) {
		script := &scriptFrame{outer: f.span}
		script.inner.hitStart(p.cur, 0)
		p.push(script)
		return
	}

	span := f.span.hitEnd(p.cur, 0)

	if f.closing {
		p.handler.OnElementEnd(&EndElementContext{
			Prefix:                  f.prefix,
			ElementName:             name,
			BlockSpan:               span,
			WithinClientSideComment: p.inComment,
		})
		return
	}

	p.handler.OnElementBegin(&ElementContext{
		Prefix:                  f.prefix,
		ElementName:             name,
		Attributes:              f.attrs.attrs,
		BlockSpan:               span,
		IsEmpty:                 f.slash,
		WithinClientSideComment: p.inComment,
	})
}

// scriptFrame collects a <script> body up to </script>.
type scriptFrame struct {
	outer spanBuilder
	inner spanBuilder
}

func (f *scriptFrame) step(p *Parser) {
	if !p.hasPrefixFold(delimScriptEnd) {
		if !p.enterNested(nil) {
			p.advance(1)
		}
		return
	}

	p.advance(lenScriptEnd)
	inner := f.inner.hitEnd(p.cur, -lenScriptEnd)
	outer := f.outer.hitEnd(p.cur, 0)
	p.pop()

	p.handler.OnCodeBlock(&CodeBlockContext{
		BlockText:               inner.Text(p.text),
		InnerBlockSpan:          inner,
		OuterBlockSpan:          outer,
		WithinClientSideComment: p.inComment,
	})
}

type aspMode int

const (
	aspMarker aspMode = iota
	aspCode
	aspOutput
	aspDirective
)

// aspFrame scans a <% %> region. The opening delimiter has already been
// consumed when the frame is pushed.
type aspFrame struct {
	mode  aspMode
	kind  OutputElementKind
	owner *elementFrame

	outer    spanBuilder
	inner    spanBuilder
	innerEnd position

	directive directiveScanner
}

func newAspFrame(p *Parser, owner *elementFrame) *aspFrame {
	f := &aspFrame{}
	f.outer.hitStart(p.cur, -lenAspOpen)

	if owner != nil && owner.attrs.inValue() {
		f.owner = owner
	}

	return f
}

func (f *aspFrame) step(p *Parser) {
	if p.hasPrefix(delimAspClose) {
		p.advance(lenAspClose)
		f.close(p)
		return
	}

	r := p.peek(0)

	switch f.mode {
	case aspMarker:
		if isSpace(r) {
			p.advance(1)
			return
		}

		if kind, ok := outputKind(r); ok {
			f.mode = aspOutput
			f.kind = kind
			p.advance(1)
			return
		}

		if r == '@' {
			f.mode = aspDirective
			p.advance(1)
			return
		}

		f.mode = aspCode

	case aspDirective:
		f.directive.step(p)
		return
	}

	if !isSpace(r) && !f.inner.open {
		f.inner.hitStart(p.cur, 0)
	}

	p.advance(1)

	if !isSpace(r) {
		f.innerEnd = p.cur
	}
}

func (f *aspFrame) close(p *Parser) {
	outer := f.outer.hitEnd(p.cur, 0)

	if !f.inner.open {
		f.inner.hitStart(p.cur, -lenAspClose)
		f.innerEnd = p.cur.shift(-lenAspClose)
	}
	inner := f.inner.hitEnd(f.innerEnd, 0)

	p.pop()

	switch f.mode {
	case aspOutput:
		if f.owner != nil {
			f.owner.attrs.markAspTags()
		}

		p.handler.OnOutputElement(&OutputElementContext{
			Kind:                    f.kind,
			InnerText:               inner.Text(p.text),
			InnerBlockSpan:          inner,
			OuterBlockSpan:          outer,
			WithinElementsAttribute: f.owner != nil,
			WithinClientSideComment: p.inComment,
		})

	case aspDirective:
		p.handler.OnPageDirective(&DirectiveContext{
			DirectiveName:           f.directive.name(p),
			Attributes:              f.directive.attrs.attrs,
			BlockSpan:               outer,
			WithinClientSideComment: p.inComment,
		})

	default:
		p.handler.OnCodeBlock(&CodeBlockContext{
			BlockText:               inner.Text(p.text),
			InnerBlockSpan:          inner,
			OuterBlockSpan:          outer,
			WithinClientSideComment: p.inComment,
		})
	}
}

func outputKind(r rune) (OutputElementKind, bool) {
	switch r {
	case '=':
		return OutputPlain, true
	case ':':
		return OutputHTMLEscaped, true
	case '$':
		return OutputExpression, true
	default:
		return 0, false
	}
}

// directiveScanner reads the directive name followed by its attributes.
type directiveScanner struct {
	naming    nameState
	nameBegin int
	nameEnd   int
	attrs     attrScanner
}

func (d *directiveScanner) step(p *Parser) {
	r := p.peek(0)

	switch d.naming {
	case nameStart:
		if isSpace(r) {
			p.advance(1)
			return
		}
		if isIdentifierStart(r) {
			d.nameBegin = p.cur.offset
			d.nameEnd = p.cur.offset + 1
			d.naming = nameBody
			p.advance(1)
			return
		}
		d.naming = nameDone

	case nameBody:
		if isIdentifierPart(r) {
			d.nameEnd = p.cur.offset + 1
			p.advance(1)
			return
		}
		d.naming = nameDone
	}

	d.attrs.step(p)
}

func (d *directiveScanner) name(p *Parser) string {
	return string(p.text[d.nameBegin:d.nameEnd])
}
