package rules

import (
	"fmt"
	"unicode"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

// HardcodedTextRule reports visible text written directly into the markup.
type HardcodedTextRule struct {
	lint.BaseRule
}

// NewHardcodedTextRule creates a new hardcoded text rule.
func NewHardcodedTextRule() *HardcodedTextRule {
	return &HardcodedTextRule{
		BaseRule: lint.NewBaseRule(
			"LOC001",
			"hardcoded-text",
			"Visible text should come from a resource instead of the markup",
			[]string{"text", "markup"},
		),
	}
}

// defaultSkipElements holds elements whose content is never displayed as text.
func defaultSkipElements() []string {
	return []string{"style", "script"}
}

// DefaultOptions returns the configurable options and their defaults.
func (r *HardcodedTextRule) DefaultOptions() map[string]any {
	return map[string]any{
		"skip_elements": defaultSkipElements(),
		"ignore":        []string{},
	}
}

// Apply checks every text run of the file.
func (r *HardcodedTextRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	filter, err := newTextFilter(ctx)
	if err != nil {
		return nil, err
	}
	skipElements := ctx.OptionStringSlice("skip_elements", defaultSkipElements())

	var diags []lint.Diagnostic

	for _, ev := range ctx.Events().TextRuns() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if ev.NoLoc || ev.InClientComment() {
			continue
		}

		text := ev.Text.Text
		if !lint.HasLetters(text) || filter.skip(text) {
			continue
		}

		if lint.InsideElement(ctx.File, ev, skipElements...) {
			continue
		}

		span := trimSpan(ctx.File, ev.Text.BlockSpan)
		message := "Hardcoded text " + quote(text)
		if parent := ctx.File.Enclosing(ev); parent != nil {
			message += fmt.Sprintf(" in <%s>", parent.Element.QualifiedName())
		}

		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, span, message).
			WithSuggestion("Move the text to a resource file and bind it with <%$ Resources: ... %> or an asp:Localize control").
			Build())
	}

	return diags, nil
}

// trimSpan narrows span to exclude leading and trailing whitespace.
func trimSpan(file *markup.FileSnapshot, span aspx.BlockSpan) aspx.BlockSpan {
	start, end := span.AbsoluteCharOffset, span.End()
	if start < 0 || end > len(file.Text) {
		return span
	}

	for start < end && unicode.IsSpace(file.Text[start]) {
		start++
	}
	for end > start && unicode.IsSpace(file.Text[end-1]) {
		end--
	}

	return file.SpanAt(start, end-start)
}
