package markup

import (
	"context"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/literal"
)

// voidElements never have an end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsVoidElement reports whether an unprefixed element never has content.
func IsVoidElement(prefix, name string) bool {
	if prefix != "" {
		return false
	}

	// Declarations such as <!DOCTYPE html> never have content.
	if strings.HasPrefix(name, "!") {
		return true
	}

	return voidElements[atom.Lookup([]byte(strings.ToLower(name)))]
}

// Builder records parser events and tracks element nesting.
// It stops the parser when its context is cancelled.
type Builder struct {
	ctx    context.Context
	events []Event
	open   []int

	pendingNoLoc bool
}

var _ aspx.Handler = (*Builder)(nil)

// NewBuilder creates a Builder bound to ctx.
func NewBuilder(ctx context.Context) *Builder {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Builder{ctx: ctx}
}

// Events returns the recorded events.
func (b *Builder) Events() []Event {
	return b.events
}

// StopRequested reports whether the context has been cancelled.
func (b *Builder) StopRequested() bool {
	return b.ctx.Err() != nil
}

// OnCodeBlock records a code block. A block holding only a no-localize
// marker flags the next element or text run.
func (b *Builder) OnCodeBlock(ctx *aspx.CodeBlockContext) {
	if literal.IsNoLocComment(ctx.BlockText) {
		b.pendingNoLoc = true
	}

	b.add(Event{Kind: EventCodeBlock, CodeBlock: ctx})
}

// OnPageDirective records a directive.
func (b *Builder) OnPageDirective(ctx *aspx.DirectiveContext) {
	b.add(Event{Kind: EventDirective, Directive: ctx})
}

// OnOutputElement records an output element.
func (b *Builder) OnOutputElement(ctx *aspx.OutputElementContext) {
	if !ctx.WithinElementsAttribute && literal.IsNoLocComment(ctx.InnerText) {
		b.pendingNoLoc = true
	}

	b.add(Event{Kind: EventOutput, Output: ctx})
}

// OnElementBegin records an opening tag and, unless it is empty or void,
// opens a nesting level.
func (b *Builder) OnElementBegin(ctx *aspx.ElementContext) {
	ev := Event{Kind: EventElementBegin, Element: ctx}

	if b.pendingNoLoc {
		b.pendingNoLoc = false
		ev.NoLoc = true
		for idx := range ctx.Attributes {
			ctx.Attributes[idx].IsMarkedWithUnlocalizableComment = true
		}
	}

	idx := b.add(ev)
	if !ctx.IsEmpty && !IsVoidElement(ctx.Prefix, ctx.ElementName) {
		b.open = append(b.open, idx)
	}
}

// OnElementEnd records a closing tag and closes the nearest matching open
// element. Unmatched closing tags leave the nesting untouched.
func (b *Builder) OnElementEnd(ctx *aspx.EndElementContext) {
	name := ctx.QualifiedName()

	for level := len(b.open) - 1; level >= 0; level-- {
		begin := b.events[b.open[level]].Element
		if strings.EqualFold(begin.QualifiedName(), name) {
			b.open = b.open[:level]
			break
		}
	}

	b.add(Event{Kind: EventElementEnd, EndElement: ctx})
}

// OnPlainText records a text run.
func (b *Builder) OnPlainText(ctx *aspx.PlainTextContext) {
	ev := Event{Kind: EventPlainText, Text: ctx}
	if b.pendingNoLoc {
		b.pendingNoLoc = false
		ev.NoLoc = true
	}

	b.add(ev)
}

func (b *Builder) add(ev Event) int {
	ev.Index = len(b.events)
	ev.Parent = -1
	ev.Depth = len(b.open)
	if ev.Depth > 0 {
		ev.Parent = b.open[ev.Depth-1]
	}

	b.events = append(b.events, ev)

	return ev.Index
}

// Parse runs the parser over text and returns a populated snapshot.
func Parse(ctx context.Context, path string, content []byte, text string) *FileSnapshot {
	return ParseBounded(ctx, path, content, text, aspx.Unbounded, 0)
}

// ParseBounded is Parse with the parser stopping after the construct that
// crosses (maxLine, maxIndex). A negative maxLine parses everything.
func ParseBounded(ctx context.Context, path string, content []byte, text string, maxLine, maxIndex int) *FileSnapshot {
	snapshot := NewFileSnapshot(path, content, text)
	builder := NewBuilder(ctx)

	aspx.NewBoundedParser(text, builder, maxLine, maxIndex).Process()
	snapshot.Events = builder.Events()

	return snapshot
}
