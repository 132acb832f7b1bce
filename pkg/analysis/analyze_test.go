package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/markup"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

func outcome(path, language string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path: path,
			FileResult: &lint.FileResult{
				Snapshot:    &markup.FileSnapshot{Path: path, Language: language},
				Diagnostics: diags,
			},
		},
	}
}

var (
	hardcodedText = lint.Diagnostic{RuleID: "LOC001", RuleName: "hardcoded-text", Severity: config.SeverityWarning}
	hardcodedAttr = lint.Diagnostic{RuleID: "LOC002", RuleName: "hardcoded-attribute", Severity: config.SeverityWarning}
	badResource   = lint.Diagnostic{RuleID: "LOC004", RuleName: "resource-expression", Severity: config.SeverityError}
	codeString    = lint.Diagnostic{RuleID: "LOC003", RuleName: "hardcoded-code-string", Severity: config.SeverityInfo}
)

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
	assert.Nil(t, report.Totals.Languages)

	assert.NotNil(t, Analyze(nil, DefaultOptions()))
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("Default.aspx", "csharp", badResource, badResource, hardcodedText),
			outcome("Site.Master", "vb", hardcodedText, codeString),
			outcome("Clean.ascx", ""),
			{Path: "Broken.aspx", Error: errors.New("read failed")},
		},
	}

	report := Analyze(result, DefaultOptions())

	assert.Equal(t, Totals{
		Counts:          Counts{Issues: 5, Errors: 2, Warnings: 2, Infos: 1},
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Languages:       map[string]int{"csharp": 1, "vb": 1, "unknown": 1},
	}, report.Totals)
	assert.True(t, report.Totals.HasErrors())
}

func TestAnalyze_DefaultsMissingSeverity(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{Files: []runner.FileOutcome{
		outcome("a.aspx", "csharp", lint.Diagnostic{RuleID: "LOC001"}),
	}}, DefaultOptions())

	assert.Equal(t, 1, report.Totals.Warnings)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "warning", report.Diagnostics[0].Severity)
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("Default.aspx", "csharp", badResource, hardcodedAttr),
			outcome("About.aspx", "csharp", hardcodedAttr),
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByRule, 2)

	// Sorted by count descending.
	assert.Equal(t, "LOC002", report.ByRule[0].RuleID)
	assert.Equal(t, "hardcoded-attribute", report.ByRule[0].RuleName)
	assert.Equal(t, 2, report.ByRule[0].Issues)
	assert.Equal(t, []string{"About.aspx", "Default.aspx"}, report.ByRule[0].Files)

	assert.Equal(t, "LOC004", report.ByRule[1].RuleID)
	assert.Equal(t, 1, report.ByRule[1].Errors)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("a.aspx", "csharp", badResource),
			outcome("b.aspx", "vb", badResource, hardcodedText, hardcodedAttr),
			outcome("c.aspx", "vb"),
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByFile, 2, "files without issues are omitted")

	assert.Equal(t, "b.aspx", report.ByFile[0].Path)
	assert.Equal(t, "vb", report.ByFile[0].Language)
	assert.Equal(t, 3, report.ByFile[0].Issues)
	assert.Equal(t, 1, report.ByFile[0].Errors)
	assert.Equal(t, 2, report.ByFile[0].Warnings)
	assert.Equal(t, []string{"LOC001", "LOC002", "LOC004"}, report.ByFile[0].Rules)

	assert.Equal(t, "a.aspx", report.ByFile[1].Path)
	assert.Equal(t, 1, report.ByFile[1].Issues)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("z.aspx", "csharp", hardcodedText, hardcodedText, hardcodedText),
			outcome("a.aspx", "csharp", hardcodedText),
			outcome("m.aspx", "csharp", badResource),
		},
	}

	tests := []struct {
		name   string
		sortBy SortField
		desc   bool
		want   []string
	}{
		{"count descending", SortByCount, true, []string{"z.aspx", "a.aspx", "m.aspx"}},
		{"count ascending", SortByCount, false, []string{"a.aspx", "m.aspx", "z.aspx"}},
		{"alpha", SortByAlpha, true, []string{"a.aspx", "m.aspx", "z.aspx"}},
		{"severity", SortBySeverity, false, []string{"m.aspx", "z.aspx", "a.aspx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc

			report := Analyze(result, opts)

			paths := make([]string, 0, len(report.ByFile))
			for _, fa := range report.ByFile {
				paths = append(paths, fa.Path)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestAnalyze_DiagnosticEntries(t *testing.T) {
	t.Parallel()

	diag := lint.Diagnostic{
		RuleID:      "LOC001",
		RuleName:    "hardcoded-text",
		Severity:    config.SeverityWarning,
		Message:     `Hardcoded text "Welcome" in <h1>`,
		Text:        "Welcome",
		StartLine:   3,
		StartColumn: 5,
		EndLine:     3,
		EndColumn:   12,
		Offset:      40,
		Length:      7,
		Suggestion:  "Move the text into a resource file",
	}

	opts := DefaultOptions()
	opts.WorkingDir = "/src/site"

	report := Analyze(&runner.Result{Files: []runner.FileOutcome{
		outcome("/src/site/Pages/Home.aspx", "csharp", diag),
	}}, opts)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, DiagnosticEntry{
		FilePath:    "Pages/Home.aspx",
		RuleID:      "LOC001",
		RuleName:    "hardcoded-text",
		Severity:    "warning",
		Message:     `Hardcoded text "Welcome" in <h1>`,
		Text:        "Welcome",
		StartLine:   3,
		StartColumn: 5,
		EndLine:     3,
		EndColumn:   12,
		Offset:      40,
		Length:      7,
		Suggestion:  "Move the text into a resource file",
	}, report.Diagnostics[0])
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{outcome("file.aspx", "csharp", hardcodedText)}}

	opts := Options{
		IncludeDiagnostics: false,
		IncludeByFile:      false,
		IncludeByRule:      true,
		IncludeByText:      false,
		SortBy:             SortByCount,
		SortDesc:           true,
	}

	report := Analyze(result, opts)

	assert.Empty(t, report.Diagnostics, "diagnostics should be excluded")
	assert.Empty(t, report.ByFile, "byFile should be excluded")
	assert.Empty(t, report.ByText, "byText should be excluded")
	assert.NotEmpty(t, report.ByRule, "byRule should be included")
	assert.Equal(t, 1, report.Totals.Issues, "totals always computed")
}

func TestAnalyze_GroupsByText(t *testing.T) {
	t.Parallel()

	at := func(diag lint.Diagnostic, text string, line, col int) lint.Diagnostic {
		diag.Text = text
		diag.StartLine = line
		diag.StartColumn = col
		return diag
	}

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("Site.Master", "csharp",
				at(hardcodedText, "Sign in", 12, 3),
				at(hardcodedAttr, "Search", 4, 20),
			),
			outcome("Login.aspx", "csharp",
				at(hardcodedAttr, " Sign in ", 9, 7),
				at(hardcodedText, "Sign in", 2, 1),
				badResource,
			),
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByText, 2, "findings without text are not grouped")

	signIn := report.ByText[0]
	assert.Equal(t, "Sign in", signIn.Text)
	assert.Equal(t, Counts{Issues: 3, Warnings: 3}, signIn.Counts)
	assert.Equal(t, []string{"Login.aspx", "Site.Master"}, signIn.Files)
	assert.Equal(t, []TextLocation{
		{FilePath: "Login.aspx", Line: 2, Column: 1, RuleID: "LOC001"},
		{FilePath: "Login.aspx", Line: 9, Column: 7, RuleID: "LOC002"},
		{FilePath: "Site.Master", Line: 12, Column: 3, RuleID: "LOC001"},
	}, signIn.Locations)

	assert.Equal(t, "Search", report.ByText[1].Text)
	assert.Len(t, report.ByText[1].Locations, 1)
}
