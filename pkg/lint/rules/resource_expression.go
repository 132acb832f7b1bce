package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

const resourcesPrefix = "resources"

// ResourceExpressionRule validates <%$ Resources: ... %> expressions.
type ResourceExpressionRule struct {
	lint.BaseRule
}

// NewResourceExpressionRule creates a new resource expression rule.
func NewResourceExpressionRule() *ResourceExpressionRule {
	return &ResourceExpressionRule{
		BaseRule: lint.NewBaseRule(
			"LOC004",
			"resource-expression",
			"Resource expressions must name a key and sit in a server control attribute",
			[]string{"resources", "expressions"},
		),
	}
}

// DefaultSeverity returns error; a malformed expression fails page compilation.
func (r *ResourceExpressionRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Apply checks every expression output element.
func (r *ResourceExpressionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for _, ev := range ctx.Events().Outputs() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if ev.Output.Kind != aspx.OutputExpression || ev.InClientComment() {
			continue
		}

		body, ok := resourceBody(ev.Output.InnerText)
		if !ok {
			continue
		}

		if problem := checkResourceBody(body); problem != "" {
			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, ev.Span(), problem).
				WithSuggestion("Use <%$ Resources: ClassName, Key %> or <%$ Resources: Key %>").
				Build())
			continue
		}

		if problem := checkPlacement(ctx.File, ev); problem != "" {
			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, ev.Span(), problem).
				WithSuggestion(`Set the expression on a control property, e.g. <asp:Literal runat="server" Text="<%$ Resources: Key %>" />`).
				Build())
		}
	}

	return diags, nil
}

// resourceBody returns the text after "Resources". ok is false for other
// expression prefixes such as AppSettings.
func resourceBody(expr string) (string, bool) {
	text := strings.TrimSpace(expr)
	if len(text) < len(resourcesPrefix) || !strings.EqualFold(text[:len(resourcesPrefix)], resourcesPrefix) {
		return "", false
	}

	rest := text[len(resourcesPrefix):]
	if rest != "" && isKeyRune([]rune(rest)[0]) && rest[0] != '.' {
		// A longer prefix such as ResourcesEx names another builder.
		return "", false
	}

	return rest, true
}

// checkResourceBody validates ": Class, Key" and returns a problem
// description, or "" when the expression is well formed.
func checkResourceBody(body string) string {
	rest, found := strings.CutPrefix(strings.TrimSpace(body), ":")
	if !found {
		return "Resource expression is missing ':' after Resources"
	}

	if strings.TrimSpace(rest) == "" {
		return "Resource expression does not name a resource key"
	}

	parts := strings.Split(rest, ",")
	if len(parts) > 2 {
		return fmt.Sprintf("Resource expression has %d parts; expected ClassName, Key or Key", len(parts))
	}

	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return "Resource expression has an empty class name or key"
		}
		for _, r := range name {
			if !isKeyRune(r) {
				return fmt.Sprintf("Resource name %q contains %q", name, r)
			}
		}
	}

	return ""
}

func isKeyRune(r rune) bool {
	return r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// checkPlacement reports expressions that are not set on an attribute of a
// server control, which the page compiler rejects.
func checkPlacement(file *markup.FileSnapshot, ev *markup.Event) string {
	if !ev.Output.WithinElementsAttribute {
		return "Resource expression is only allowed in a server control attribute"
	}

	owner := owningElement(file, ev)
	if owner == nil || lint.IsServerControl(owner) {
		return ""
	}

	return fmt.Sprintf("Resource expression on <%s> requires runat=\"server\"", owner.Element.QualifiedName())
}

// owningElement finds the opening tag whose attributes contain ev.
// Tags are reported when they close, so the owner follows ev.
func owningElement(file *markup.FileSnapshot, ev *markup.Event) *markup.Event {
	span := ev.Span()
	for idx := ev.Index + 1; idx < len(file.Events); idx++ {
		next := &file.Events[idx]
		if next.Kind != markup.EventElementBegin {
			continue
		}
		if next.Element.BlockSpan.Contains(span) {
			return next
		}
		if next.Element.BlockSpan.AbsoluteCharOffset > span.AbsoluteCharOffset {
			return nil
		}
	}

	return nil
}
