package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

// implicitResourceKey is the attribute that binds a control to implicit
// resource expressions.
const implicitResourceKey = "meta:resourcekey"

// HardcodedAttributeRule reports localizable attribute values written as
// literal text.
type HardcodedAttributeRule struct {
	lint.BaseRule
}

// NewHardcodedAttributeRule creates a new hardcoded attribute rule.
func NewHardcodedAttributeRule() *HardcodedAttributeRule {
	return &HardcodedAttributeRule{
		BaseRule: lint.NewBaseRule(
			"LOC002",
			"hardcoded-attribute",
			"Localizable attribute values should come from a resource",
			[]string{"attributes", "markup"},
		),
	}
}

// defaultLocalizableAttributes returns the attributes that carry visible
// text on HTML elements and Web Forms controls.
func defaultLocalizableAttributes() []string {
	return []string{
		"Text",
		"ToolTip",
		"title",
		"alt",
		"placeholder",
		"aria-label",
		"summary",
		"AlternateText",
		"Caption",
		"HeaderText",
		"FooterText",
		"EmptyDataText",
		"ErrorMessage",
		"NullDisplayText",
		"InsertText",
		"EditText",
		"UpdateText",
		"CancelText",
		"DeleteText",
		"SelectText",
		"NewText",
	}
}

// DefaultOptions returns the configurable options and their defaults.
func (r *HardcodedAttributeRule) DefaultOptions() map[string]any {
	return map[string]any{
		"attributes":           defaultLocalizableAttributes(),
		"server_controls_only": false,
		"ignore":               []string{},
	}
}

// Apply checks the attributes of every opening tag.
func (r *HardcodedAttributeRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	filter, err := newTextFilter(ctx)
	if err != nil {
		return nil, err
	}

	localizable := make(map[string]bool)
	for _, name := range ctx.OptionStringSlice("attributes", defaultLocalizableAttributes()) {
		localizable[strings.ToLower(name)] = true
	}
	serverOnly := ctx.OptionBool("server_controls_only", false)

	var diags []lint.Diagnostic

	for _, ev := range ctx.Events().Elements() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if ev.InClientComment() {
			continue
		}
		if serverOnly && !lint.IsServerControl(ev) {
			continue
		}
		if _, ok := ev.Element.Attribute(implicitResourceKey); ok {
			continue
		}

		for _, attr := range ev.Element.Attributes {
			if !localizable[strings.ToLower(attr.Name)] && !isButtonValue(ev, attr) {
				continue
			}
			if !hardcodedValue(attr) || filter.skip(attr.Value) {
				continue
			}

			diags = append(diags, r.diagnostic(ctx.File, ev, attr))
		}
	}

	return diags, nil
}

func (r *HardcodedAttributeRule) diagnostic(
	file *markup.FileSnapshot,
	ev *markup.Event,
	attr aspx.AttributeInfo,
) lint.Diagnostic {
	message := fmt.Sprintf("Hardcoded %s %s on <%s>",
		attr.Name, quote(attr.Value), ev.Element.QualifiedName())

	suggestion := fmt.Sprintf(`Use %s="<%%$ Resources: ClassName, Key %%>"`, attr.Name)
	if lint.IsServerControl(ev) {
		suggestion += " or add meta:resourcekey to the control"
	}

	return lint.NewDiagnostic(r.ID(), file, attr.BlockSpan, message).
		WithSuggestion(suggestion).
		Build()
}

// hardcodedValue reports whether an attribute value is literal text that
// needs translation.
func hardcodedValue(attr aspx.AttributeInfo) bool {
	if attr.ContainsAspTags || attr.IsMarkedWithUnlocalizableComment {
		return false
	}
	if strings.Contains(attr.Value, "<%") {
		return false
	}
	return lint.HasLetters(attr.Value)
}

// isButtonValue reports whether attr is the caption of an HTML button input.
func isButtonValue(ev *markup.Event, attr aspx.AttributeInfo) bool {
	if !strings.EqualFold(attr.Name, "value") || ev.Element.Prefix != "" ||
		!strings.EqualFold(ev.Element.ElementName, "input") {
		return false
	}

	kind, ok := ev.Element.Attribute("type")
	if !ok {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(kind.Value)) {
	case "submit", "button", "reset":
		return true
	default:
		return false
	}
}
