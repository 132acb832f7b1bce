package markup

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(ev *Event) error

// Walk visits every event in document order. If walkFunc returns a non-nil
// error, the walk stops immediately and returns that error.
func (f *FileSnapshot) Walk(walkFunc WalkFunc) error {
	for idx := range f.Events {
		if err := walkFunc(&f.Events[idx]); err != nil {
			return err
		}
	}

	return nil
}

// Filter returns the events of the given kinds in document order.
func (f *FileSnapshot) Filter(kinds ...EventKind) []*Event {
	var result []*Event

	for idx := range f.Events {
		ev := &f.Events[idx]
		for _, kind := range kinds {
			if ev.Kind == kind {
				result = append(result, ev)
				break
			}
		}
	}

	return result
}

// Elements returns all opening tags.
func (f *FileSnapshot) Elements() []*Event {
	return f.Filter(EventElementBegin)
}

// TextRuns returns all plain text events.
func (f *FileSnapshot) TextRuns() []*Event {
	return f.Filter(EventPlainText)
}

// CodeEvents returns code blocks and output elements.
func (f *FileSnapshot) CodeEvents() []*Event {
	return f.Filter(EventCodeBlock, EventOutput)
}
