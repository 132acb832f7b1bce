package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

// mockParser implements lint.Parser for testing.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*markup.FileSnapshot, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*markup.FileSnapshot, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}
	return markup.Parse(ctx, path, content, string(content)), nil
}

// diagnosticRule is a test rule that produces fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	return r.diags, r.err
}

// cacheRule records the event cache it was handed.
type cacheRule struct {
	lint.BaseRule
	seen *[]*lint.EventCache
}

func (r *cacheRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	*r.seen = append(*r.seen, ctx.Events())
	return nil, nil
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	engine := lint.NewEngine(parser, registry)

	if engine.Parser != parser {
		t.Error("Parser mismatch")
	}
	if engine.Registry != registry {
		t.Error("Registry mismatch")
	}
}

func TestEngine_LintFile_Basic(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(&mockParser{}, lint.NewRegistry())

	result, err := engine.LintFile(context.Background(), "test.aspx", []byte("<p>Hello</p>"), config.NewConfig())
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	if result.Snapshot == nil {
		t.Fatal("expected Snapshot to be set")
	}
	if result.Snapshot.Path != "test.aspx" {
		t.Errorf("Path = %q, want test.aspx", result.Snapshot.Path)
	}
	if result.HasIssues() {
		t.Error("expected no issues without rules")
	}
}

func TestEngine_LintFile_ParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parse failed")
	parser := &mockParser{
		parseFunc: func(_ context.Context, _ string, _ []byte) (*markup.FileSnapshot, error) {
			return nil, parseErr
		},
	}
	engine := lint.NewEngine(parser, lint.NewRegistry())

	_, err := engine.LintFile(context.Background(), "test.aspx", []byte("<p/>"), config.NewConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, parseErr) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEngine_LintFile_WithDiagnostics(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("TEST001", "test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "TEST001", Message: "test issue", StartLine: 1, StartColumn: 1},
		},
	})

	engine := lint.NewEngine(&mockParser{}, registry)

	result, err := engine.LintFile(context.Background(), "test.aspx", []byte("Hello"), config.NewConfig())
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	if result.IssueCount() != 1 {
		t.Fatalf("expected 1 issue, got %d", result.IssueCount())
	}
	if result.Diagnostics[0].Message != "test issue" {
		t.Errorf("Message = %q, want test issue", result.Diagnostics[0].Message)
	}
	if result.Diagnostics[0].RuleName != "test-rule" {
		t.Errorf("RuleName = %q, want test-rule", result.Diagnostics[0].RuleName)
	}
	if result.CountBySeverity(config.SeverityWarning) != 1 {
		t.Errorf("expected 1 warning, got %d", result.CountBySeverity(config.SeverityWarning))
	}
}

func TestEngine_LintFile_SeverityOverride(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("TEST001", "test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "TEST001", Message: "test", Severity: config.SeverityInfo},
		},
	})

	engine := lint.NewEngine(&mockParser{}, registry)
	cfg := config.NewConfig()
	severity := string(config.SeverityError)
	cfg.Rules["TEST001"] = config.RuleConfig{Severity: &severity}

	result, err := engine.LintFile(context.Background(), "test.aspx", []byte("x"), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	if result.Diagnostics[0].Severity != config.SeverityError {
		t.Errorf("Severity = %v, want error", result.Diagnostics[0].Severity)
	}
}

func TestEngine_LintFile_RuleError(t *testing.T) {
	t.Parallel()

	ruleErr := errors.New("rule failed")
	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("TEST001", "test-rule", "", nil),
		err:      ruleErr,
	})

	engine := lint.NewEngine(&mockParser{}, registry)

	result, err := engine.LintFile(context.Background(), "test.aspx", []byte("x"), config.NewConfig())
	if err != nil {
		t.Fatalf("LintFile should not return error for rule errors: %v", err)
	}

	if !errors.Is(result.RuleErrors["TEST001"], ruleErr) {
		t.Errorf("expected rule error to be recorded")
	}
}

func TestEngine_LintFile_ContextCancellation(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{BaseRule: lint.NewBaseRule("TEST001", "test-rule", "", nil)})

	engine := lint.NewEngine(&mockParser{}, registry)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.LintFile(ctx, "test.aspx", []byte("<p>x</p>"), config.NewConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Error("expected partial result")
	}
}

func TestEngine_LintFile_SharesEventCache(t *testing.T) {
	t.Parallel()

	var seen []*lint.EventCache
	registry := lint.NewRegistry()
	registry.Register(&cacheRule{BaseRule: lint.NewBaseRule("TEST001", "a", "", nil), seen: &seen})
	registry.Register(&cacheRule{BaseRule: lint.NewBaseRule("TEST002", "b", "", nil), seen: &seen})

	engine := lint.NewEngine(&mockParser{}, registry)

	if _, err := engine.LintFile(context.Background(), "test.aspx", []byte("<p>x</p>"), nil); err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 rule runs, got %d", len(seen))
	}
	if seen[0] != seen[1] {
		t.Error("rules should share one event cache per file")
	}
	if len(seen[0].TextRuns()) != 1 {
		t.Errorf("expected 1 text run, got %d", len(seen[0].TextRuns()))
	}
}

func TestEngine_LintFile_SortsDiagnostics(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("TEST001", "late", "", nil),
		diags:    []lint.Diagnostic{{RuleID: "TEST001", StartLine: 3, StartColumn: 1}},
	})
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("TEST002", "early", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "TEST002", StartLine: 1, StartColumn: 9},
			{RuleID: "TEST002", StartLine: 1, StartColumn: 2},
		},
	})

	engine := lint.NewEngine(&mockParser{}, registry)

	result, err := engine.LintFile(context.Background(), "test.aspx", []byte("x"), nil)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	got := []int{}
	for _, d := range result.Diagnostics {
		got = append(got, d.StartLine*100+d.StartColumn)
	}
	want := []int{102, 109, 301}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestEngine_LintFile_FilePathSet(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("TEST001", "test-rule", "", nil),
		diags:    []lint.Diagnostic{{RuleID: "TEST001", Message: "test issue"}},
	})

	engine := lint.NewEngine(&mockParser{}, registry)

	result, err := engine.LintFile(context.Background(), "path/to/file.aspx", []byte("x"), config.NewConfig())
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	if result.Diagnostics[0].FilePath != "path/to/file.aspx" {
		t.Errorf("FilePath = %q, want path/to/file.aspx", result.Diagnostics[0].FilePath)
	}
}

func TestFileResult_Methods(t *testing.T) {
	t.Parallel()

	t.Run("HasIssues", func(t *testing.T) {
		t.Parallel()

		result := &lint.FileResult{}
		if result.HasIssues() {
			t.Error("expected no issues")
		}

		result.Diagnostics = []lint.Diagnostic{{}}
		if !result.HasIssues() {
			t.Error("expected issues")
		}
	})

	t.Run("IssueCount", func(t *testing.T) {
		t.Parallel()

		result := &lint.FileResult{}
		if result.IssueCount() != 0 {
			t.Error("expected 0")
		}

		result.Diagnostics = []lint.Diagnostic{{}, {}}
		if result.IssueCount() != 2 {
			t.Errorf("expected 2, got %d", result.IssueCount())
		}
	})

	t.Run("CountBySeverity", func(t *testing.T) {
		t.Parallel()

		result := &lint.FileResult{
			Diagnostics: []lint.Diagnostic{
				{Severity: config.SeverityError},
				{Severity: config.SeverityInfo},
				{Severity: config.SeverityError},
			},
		}

		if got := result.CountBySeverity(config.SeverityError); got != 2 {
			t.Errorf("expected 2 errors, got %d", got)
		}
	})
}
