package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
)

// PageCultureRule reports Page directives that leave the culture unset.
type PageCultureRule struct {
	lint.BaseRule
}

// NewPageCultureRule creates a new page culture rule.
func NewPageCultureRule() *PageCultureRule {
	return &PageCultureRule{
		BaseRule: lint.NewBaseRule(
			"LOC005",
			"page-culture",
			"Page directives should declare Culture and UICulture",
			[]string{"directives"},
		),
	}
}

// DefaultEnabled returns false; the culture is often set in web.config.
func (r *PageCultureRule) DefaultEnabled() bool {
	return false
}

// DefaultSeverity returns info.
func (r *PageCultureRule) DefaultSeverity() config.Severity {
	return config.SeverityInfo
}

// DefaultOptions returns the configurable options and their defaults.
func (r *PageCultureRule) DefaultOptions() map[string]any {
	return map[string]any{
		"required": []string{"Culture", "UICulture"},
	}
}

// Apply checks the Page directive of the file.
func (r *PageCultureRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	required := ctx.OptionStringSlice("required", []string{"Culture", "UICulture"})

	for _, ev := range ctx.Events().Directives() {
		if ev.InClientComment() || !strings.EqualFold(ev.Directive.DirectiveName, "Page") {
			continue
		}

		var missing []string
		for _, name := range required {
			if attr, ok := ev.Directive.Attribute(name); !ok || strings.TrimSpace(attr.Value) == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) == 0 {
			return nil, nil
		}

		diag := lint.NewDiagnostic(r.ID(), ctx.File, ev.Span(),
			fmt.Sprintf("Page directive does not declare %s", strings.Join(missing, " and "))).
			WithSuggestion(`Add Culture="auto" UICulture="auto" to select the culture from the browser`).
			Build()

		return []lint.Diagnostic{diag}, nil
	}

	return nil, nil
}
