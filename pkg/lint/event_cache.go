package lint

import "github.com/yaklabco/aspxloc/pkg/markup"

// EventCache holds the snapshot events grouped by kind.
//
// Rules run sequentially against one file, and most of them want one
// kind of event. Grouping once per file avoids a full scan per rule.
//
// The slices are shared by every rule of the file. Do not sort, append to,
// or filter them in place; copy first.
//
// EventCache is not safe for concurrent use. Each RuleContext gets its own.
type EventCache struct {
	elements   []*markup.Event
	endings    []*markup.Event
	textRuns   []*markup.Event
	codeBlocks []*markup.Event
	outputs    []*markup.Event
	directives []*markup.Event

	built bool
}

func newEventCache() *EventCache {
	return &EventCache{}
}

// build sorts the snapshot events by kind in one pass.
func (ec *EventCache) build(file *markup.FileSnapshot) {
	if ec.built || file == nil {
		return
	}

	//nolint:errcheck // visitor never returns an error
	file.Walk(func(ev *markup.Event) error {
		switch ev.Kind {
		case markup.EventElementBegin:
			ec.elements = append(ec.elements, ev)
		case markup.EventElementEnd:
			ec.endings = append(ec.endings, ev)
		case markup.EventPlainText:
			ec.textRuns = append(ec.textRuns, ev)
		case markup.EventCodeBlock:
			ec.codeBlocks = append(ec.codeBlocks, ev)
		case markup.EventOutput:
			ec.outputs = append(ec.outputs, ev)
		case markup.EventDirective:
			ec.directives = append(ec.directives, ev)
		}
		return nil
	})

	ec.built = true
}

// Elements returns all opening tags. Do not mutate the returned slice.
func (ec *EventCache) Elements() []*markup.Event {
	return ec.elements
}

// EndElements returns all closing tags. Do not mutate the returned slice.
func (ec *EventCache) EndElements() []*markup.Event {
	return ec.endings
}

// TextRuns returns all plain text runs. Do not mutate the returned slice.
func (ec *EventCache) TextRuns() []*markup.Event {
	return ec.textRuns
}

// CodeBlocks returns all code blocks, including server script bodies.
// Do not mutate the returned slice.
func (ec *EventCache) CodeBlocks() []*markup.Event {
	return ec.codeBlocks
}

// Outputs returns all output elements. Do not mutate the returned slice.
func (ec *EventCache) Outputs() []*markup.Event {
	return ec.outputs
}

// Directives returns all page directives. Do not mutate the returned slice.
func (ec *EventCache) Directives() []*markup.Event {
	return ec.directives
}
