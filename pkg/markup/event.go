package markup

import "github.com/yaklabco/aspxloc/pkg/aspx"

// EventKind classifies a parser event.
type EventKind uint8

// Event kinds, one per parser callback.
const (
	EventCodeBlock EventKind = iota
	EventDirective
	EventOutput
	EventElementBegin
	EventElementEnd
	EventPlainText
)

func (k EventKind) String() string {
	switch k {
	case EventCodeBlock:
		return "CodeBlock"
	case EventDirective:
		return "Directive"
	case EventOutput:
		return "Output"
	case EventElementBegin:
		return "ElementBegin"
	case EventElementEnd:
		return "ElementEnd"
	case EventPlainText:
		return "PlainText"
	default:
		return "Unknown"
	}
}

// Event is one parser callback. Exactly one of the context pointers is set,
// matching Kind.
type Event struct {
	Kind EventKind

	// Index is the position of the event in FileSnapshot.Events.
	Index int

	// Parent is the index of the enclosing ElementBegin event, or -1.
	Parent int

	// Depth is the number of open elements enclosing the event.
	Depth int

	// NoLoc is set on the element or text that follows a no-localize marker.
	NoLoc bool

	CodeBlock  *aspx.CodeBlockContext
	Directive  *aspx.DirectiveContext
	Output     *aspx.OutputElementContext
	Element    *aspx.ElementContext
	EndElement *aspx.EndElementContext
	Text       *aspx.PlainTextContext
}

// Span returns the outer span of the construct.
func (e *Event) Span() aspx.BlockSpan {
	switch e.Kind {
	case EventCodeBlock:
		return e.CodeBlock.OuterBlockSpan
	case EventDirective:
		return e.Directive.BlockSpan
	case EventOutput:
		return e.Output.OuterBlockSpan
	case EventElementBegin:
		return e.Element.BlockSpan
	case EventElementEnd:
		return e.EndElement.BlockSpan
	case EventPlainText:
		return e.Text.BlockSpan
	default:
		return aspx.BlockSpan{}
	}
}

// InClientComment reports whether the construct sits inside <!-- -->.
func (e *Event) InClientComment() bool {
	switch e.Kind {
	case EventCodeBlock:
		return e.CodeBlock.WithinClientSideComment
	case EventDirective:
		return e.Directive.WithinClientSideComment
	case EventOutput:
		return e.Output.WithinClientSideComment
	case EventElementBegin:
		return e.Element.WithinClientSideComment
	case EventElementEnd:
		return e.EndElement.WithinClientSideComment
	case EventPlainText:
		return e.Text.WithinClientSideComment
	default:
		return false
	}
}

// Code returns the server code carried by a code block or output element.
func (e *Event) Code() (string, aspx.BlockSpan, bool) {
	switch e.Kind {
	case EventCodeBlock:
		return e.CodeBlock.BlockText, e.CodeBlock.InnerBlockSpan, true
	case EventOutput:
		return e.Output.InnerText, e.Output.InnerBlockSpan, true
	default:
		return "", aspx.BlockSpan{}, false
	}
}
