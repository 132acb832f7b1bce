package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

const testRuleIDDiag = "LOC001"

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	file := parseSnapshot("<p>\n  Hello</p>")
	text := file.TextRuns()[0]

	diag := lint.NewDiagnostic(testRuleIDDiag, file, text.Span(), "test message").Build()

	assert.Equal(t, testRuleIDDiag, diag.RuleID)
	assert.Equal(t, "test message", diag.Message)
	assert.Equal(t, "test.aspx", diag.FilePath)
	assert.Equal(t, "\n  Hello", diag.Text)
	assert.Equal(t, 1, diag.StartLine)
	assert.Equal(t, 4, diag.StartColumn)
	assert.Equal(t, 2, diag.EndLine)
	assert.Equal(t, 8, diag.EndColumn)
	assert.Equal(t, 3, diag.Offset)
	assert.Equal(t, 8, diag.Length)
}

func TestNewDiagnostic_NilFile(t *testing.T) {
	t.Parallel()

	file := parseSnapshot("<b>x</b>")
	diag := lint.NewDiagnostic(testRuleIDDiag, nil, file.TextRuns()[0].Span(), "m").Build()

	assert.Empty(t, diag.FilePath)
	assert.Empty(t, diag.Text)
	assert.Equal(t, 1, diag.StartLine)
}

func TestNewDiagnosticAt(t *testing.T) {
	t.Parallel()

	pos := markup.SourcePosition{StartLine: 5, StartColumn: 10, EndLine: 5, EndColumn: 20}
	diag := lint.NewDiagnosticAt(testRuleIDDiag, "x.aspx", pos, "msg").Build()

	assert.Equal(t, "x.aspx", diag.FilePath)
	assert.Equal(t, pos, diag.SourcePosition())
	assert.Empty(t, diag.RuleName)
}

func TestNewDiagnosticAtWithRegistry(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newTestRule(testRuleIDDiag))

	pos := markup.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 2}

	diag := lint.NewDiagnosticAtWithRegistry(testRuleIDDiag, "x.aspx", pos, "msg", reg).Build()
	assert.Equal(t, testRuleIDDiag+"-name", diag.RuleName)

	unknown := lint.NewDiagnosticAtWithRegistry("LOC999", "x.aspx", pos, "msg", reg).Build()
	assert.Empty(t, unknown.RuleName)

	noReg := lint.NewDiagnosticAtWithRegistry(testRuleIDDiag, "x.aspx", pos, "msg", nil).Build()
	assert.Empty(t, noReg.RuleName)
}

func TestDiagnosticBuilder_Chaining(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnosticAt(testRuleIDDiag, "", markup.SourcePosition{}, "msg").
		WithSeverity(config.SeverityError).
		WithSuggestion("use a resource").
		WithText("Hello").
		Build()

	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, "use a resource", diag.Suggestion)
	assert.Equal(t, "Hello", diag.Text)
}
