package aspx

// Handler receives parser events in document order.
//
// StopRequested is polled before every character. Once it returns true the
// parser finishes the construct it is inside of and returns.
type Handler interface {
	StopRequested() bool
	OnCodeBlock(ctx *CodeBlockContext)
	OnPageDirective(ctx *DirectiveContext)
	OnOutputElement(ctx *OutputElementContext)
	OnElementBegin(ctx *ElementContext)
	OnElementEnd(ctx *EndElementContext)
	OnPlainText(ctx *PlainTextContext)
}

// BaseHandler ignores every event. Embed it to implement only the
// callbacks a handler cares about.
type BaseHandler struct{}

// StopRequested always returns false.
func (BaseHandler) StopRequested() bool { return false }

// OnCodeBlock does nothing.
func (BaseHandler) OnCodeBlock(*CodeBlockContext) {}

// OnPageDirective does nothing.
func (BaseHandler) OnPageDirective(*DirectiveContext) {}

// OnOutputElement does nothing.
func (BaseHandler) OnOutputElement(*OutputElementContext) {}

// OnElementBegin does nothing.
func (BaseHandler) OnElementBegin(*ElementContext) {}

// OnElementEnd does nothing.
func (BaseHandler) OnElementEnd(*EndElementContext) {}

// OnPlainText does nothing.
func (BaseHandler) OnPlainText(*PlainTextContext) {}

var _ Handler = BaseHandler{}
