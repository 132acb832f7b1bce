package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/literal"
)

// CodeStringRule reports string literals with visible text in server code.
type CodeStringRule struct {
	lint.BaseRule
}

// NewCodeStringRule creates a new code string rule.
func NewCodeStringRule() *CodeStringRule {
	return &CodeStringRule{
		BaseRule: lint.NewBaseRule(
			"LOC003",
			"hardcoded-code-string",
			"String literals in embedded code should come from a resource",
			[]string{"code"},
		),
	}
}

// DefaultSeverity returns info; many literals in code are identifiers.
func (r *CodeStringRule) DefaultSeverity() config.Severity {
	return config.SeverityInfo
}

// defaultIgnoreCalls returns methods whose string arguments are keys, paths
// or field names rather than text.
func defaultIgnoreCalls() []string {
	return []string{
		"Eval",
		"Bind",
		"XPath",
		"FindControl",
		"ResolveUrl",
		"ResolveClientUrl",
		"GetGlobalResourceObject",
		"GetLocalResourceObject",
		"GetRouteUrl",
		"Redirect",
	}
}

// DefaultOptions returns the configurable options and their defaults.
func (r *CodeStringRule) DefaultOptions() map[string]any {
	return map[string]any{
		"ignore_calls":           defaultIgnoreCalls(),
		"include_client_scripts": false,
		"ignore":                 []string{},
	}
}

// codeSource is a piece of code with the span of its text in the file.
type codeSource struct {
	code string
	span aspx.BlockSpan
	lang literal.Language
}

// Apply extracts the literals of every code block, output element and
// server script.
func (r *CodeStringRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	filter, err := newTextFilter(ctx)
	if err != nil {
		return nil, err
	}

	ignoreCalls := make(map[string]bool)
	for _, name := range ctx.OptionStringSlice("ignore_calls", defaultIgnoreCalls()) {
		ignoreCalls[strings.ToLower(name)] = true
	}

	var diags []lint.Diagnostic

	for _, src := range r.sources(ctx) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		code := []rune(src.code)
		for _, lit := range literal.Extract(src.code, src.lang) {
			if lit.NoLoc || !lint.HasLetters(lit.Value) || filter.skip(lit.Value) {
				continue
			}
			if isKeyArgument(code, lit.Offset, ignoreCalls) {
				continue
			}

			span := ctx.File.SpanAt(src.span.AbsoluteCharOffset+lit.Offset, lit.Length)
			if span.IsEmpty() {
				continue
			}

			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, span,
				"Hardcoded string "+quote(lit.Value)+" in code").
				WithSuggestion("Load the text with GetLocalResourceObject or GetGlobalResourceObject").
				Build())
		}
	}

	return diags, nil
}

// sources collects the code the rule scans, in document order of kind.
func (r *CodeStringRule) sources(ctx *lint.RuleContext) []codeSource {
	includeClient := ctx.OptionBool("include_client_scripts", false)
	pageLang := ctx.Language()

	var out []codeSource

	for _, ev := range ctx.Events().CodeBlocks() {
		if ev.InClientComment() {
			continue
		}

		lang := pageLang
		if tag, ok := lint.ScriptTag(ctx.File, ev); ok {
			var keep bool
			lang, keep = scriptLanguage(tag, pageLang, includeClient)
			if !keep {
				continue
			}
		}

		out = append(out, codeSource{
			code: ev.CodeBlock.BlockText,
			span: ev.CodeBlock.InnerBlockSpan,
			lang: lang,
		})
	}

	for _, ev := range ctx.Events().Outputs() {
		if ev.InClientComment() || ev.Output.Kind == aspx.OutputExpression {
			continue
		}

		out = append(out, codeSource{
			code: ev.Output.InnerText,
			span: ev.Output.InnerBlockSpan,
			lang: pageLang,
		})
	}

	return out
}

// scriptLanguage picks the language of a script body. keep is false for
// client scripts unless they are included.
func scriptLanguage(tag string, pageLang literal.Language, includeClient bool) (literal.Language, bool) {
	declared := literal.ParseLanguage(lint.ScriptLanguage(tag))

	if lint.IsServerScript(tag) {
		if declared == literal.LanguageUnknown {
			return pageLang, true
		}
		return declared, true
	}

	return literal.LanguageJavaScript, includeClient
}

// isKeyArgument reports whether the literal at offset is an indexer key or
// the first argument of an ignored call, such as Session["id"] or
// Eval("Name").
func isKeyArgument(code []rune, offset int, ignoreCalls map[string]bool) bool {
	pos := skipSpaceBack(code, offset-1)
	if pos < 0 {
		return false
	}

	switch code[pos] {
	case '[':
		return true
	case '(':
	default:
		return false
	}

	end := skipSpaceBack(code, pos-1) + 1
	start := end
	for start > 0 && isCallNamePart(code[start-1]) {
		start--
	}
	if start == end {
		return false
	}

	name := string(code[start:end])
	if ignoreCalls[strings.ToLower(name)] {
		return true
	}

	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		return ignoreCalls[strings.ToLower(name[dot+1:])]
	}

	return false
}

func skipSpaceBack(code []rune, pos int) int {
	for pos >= 0 && unicode.IsSpace(code[pos]) {
		pos--
	}
	return pos
}

func isCallNamePart(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
