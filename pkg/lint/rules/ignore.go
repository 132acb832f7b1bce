package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"

	"github.com/yaklabco/aspxloc/pkg/lint"
)

// maxQuoteLen bounds the text quoted in a diagnostic message.
const maxQuoteLen = 40

// textFilter skips text that matches one of the configured ignore globs.
type textFilter struct {
	globs []glob.Glob
}

// newTextFilter compiles the "ignore" option of a rule.
// Patterns are matched against the trimmed text.
func newTextFilter(ctx *lint.RuleContext) (*textFilter, error) {
	patterns := ctx.OptionStringSlice("ignore", nil)

	filter := &textFilter{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		filter.globs = append(filter.globs, compiled)
	}

	return filter, nil
}

// skip reports whether text is excluded from checking.
func (f *textFilter) skip(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, g := range f.globs {
		if g.Match(trimmed) {
			return true
		}
	}
	return false
}

// quote shortens text for use in a message.
func quote(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxQuoteLen {
		return fmt.Sprintf("%q", text)
	}

	runes := []rune(text)
	return fmt.Sprintf("%q", string(runes[:maxQuoteLen])+"...")
}
