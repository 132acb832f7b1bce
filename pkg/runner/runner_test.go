package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/lint/rules"
	"github.com/yaklabco/aspxloc/pkg/markup"
	"github.com/yaklabco/aspxloc/pkg/parser/webforms"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

var errBroken = errors.New("broken page")

// failingParser rejects files whose name contains "Broken".
type failingParser struct {
	inner lint.Parser
}

func (p *failingParser) Parse(ctx context.Context, path string, content []byte) (*markup.FileSnapshot, error) {
	if strings.Contains(filepath.Base(path), "Broken") {
		return nil, errBroken
	}
	return p.inner.Parse(ctx, path, content)
}

// countingRule counts the files it is applied to.
type countingRule struct {
	lint.BaseRule
	calls atomic.Int64
}

func (r *countingRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	r.calls.Add(1)
	return nil, nil
}

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterAliases(registry)

	parser := &failingParser{inner: webforms.New()}
	return runner.New(lint.NewPipeline(lint.NewEngine(parser, registry)))
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(webforms.New(), lint.NewRegistry()))
	lintRunner := runner.New(pipeline)

	if lintRunner.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"readme.txt": "Hello"})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Files) != 0 {
		t.Errorf("expected no files, got %d", len(result.Files))
	}
	if result.HasIssues() || result.HasFailures() {
		t.Error("expected no issues")
	}
}

func TestRunner_Run_WithDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Default.aspx": `<%@ Page Language="C#" %>
<h1>Welcome</h1>
<asp:Label runat="server" Text="<%$ Resources: Site, Home, Title %>" />`,
		"Clean.aspx": `<%@ Page Language="C#" %>
<h1><asp:Localize runat="server" Text="<%$ Resources: Site, Title %>" /></h1>`,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesDiscovered != 2 || stats.FilesProcessed != 2 {
		t.Errorf("expected 2 files discovered and processed, got %d/%d", stats.FilesDiscovered, stats.FilesProcessed)
	}
	if stats.FilesWithIssues != 1 {
		t.Errorf("expected 1 file with issues, got %d", stats.FilesWithIssues)
	}
	if stats.DiagnosticsTotal != 2 {
		t.Errorf("expected 2 diagnostics, got %d", stats.DiagnosticsTotal)
	}
	if stats.DiagnosticsByRule["LOC001"] != 1 || stats.DiagnosticsByRule["LOC004"] != 1 {
		t.Errorf("unexpected rule counts: %v", stats.DiagnosticsByRule)
	}
	if stats.Errors() != 1 || stats.Warnings() != 1 || stats.Infos() != 0 {
		t.Errorf("unexpected severity counts: %v", stats.DiagnosticsBySeverity)
	}
	if stats.Languages["csharp"] != 2 {
		t.Errorf("expected 2 csharp files, got %v", stats.Languages)
	}
	if !result.HasFailures() {
		t.Error("expected failures from the malformed resource expression")
	}

	// Files are reported in path order.
	if filepath.Base(result.Files[0].Path) != "Clean.aspx" {
		t.Errorf("expected Clean.aspx first, got %s", result.Files[0].Path)
	}
}

func TestRunner_Run_ConfigDisablesRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"Default.aspx": "<p>Hello</p>"})

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"text"}

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.HasIssues() {
		t.Errorf("expected no diagnostics, got %v", result.Stats.DiagnosticsByRule)
	}
}

func TestRunner_Run_FileErrorDoesNotStopRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"A.aspx":      "<p>One</p>",
		"Broken.aspx": "<p>Two</p>",
		"C.aspx":      "<p>Three</p>",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesErrored != 1 || result.Stats.FilesProcessed != 2 {
		t.Errorf("expected 1 errored and 2 processed, got %d/%d",
			result.Stats.FilesErrored, result.Stats.FilesProcessed)
	}

	broken := result.Files[1]
	if !errors.Is(broken.Error, lint.ErrParseFailure) || !errors.Is(broken.Error, errBroken) {
		t.Errorf("expected parse failure, got %v", broken.Error)
	}
	if broken.Result != nil {
		t.Error("expected no result for failed file")
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["Pages/"+name+".aspx"] = "<div>Text " + name + "</div>\n<img alt=\"Logo " + name + "\" />"
	}
	writeTree(t, dir, files)

	serial, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	if err != nil {
		t.Fatalf("serial Run() error = %v", err)
	}
	parallel, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	if err != nil {
		t.Fatalf("parallel Run() error = %v", err)
	}

	if len(serial.Files) != len(parallel.Files) {
		t.Fatalf("file count mismatch: %d vs %d", len(serial.Files), len(parallel.Files))
	}
	for i := range serial.Files {
		if serial.Files[i].Path != parallel.Files[i].Path {
			t.Errorf("order mismatch at %d: %s vs %s", i, serial.Files[i].Path, parallel.Files[i].Path)
		}
		if len(serial.Files[i].Result.Diagnostics) != len(parallel.Files[i].Result.Diagnostics) {
			t.Errorf("diagnostic mismatch for %s", serial.Files[i].Path)
		}
	}
	if serial.Stats.DiagnosticsTotal != 16 || parallel.Stats.DiagnosticsTotal != 16 {
		t.Errorf("expected 16 diagnostics, got %d and %d",
			serial.Stats.DiagnosticsTotal, parallel.Stats.DiagnosticsTotal)
	}
}

func TestRunner_Run_ConcurrentProcessing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 20 {
		files[filepath.Join("Pages", string(rune('a'+i))+".ascx")] = "<span></span>"
	}
	writeTree(t, dir, files)

	rule := &countingRule{BaseRule: lint.NewBaseRule("TEST001", "counting", "Counts files", nil)}
	registry := lint.NewRegistry()
	registry.Register(rule)

	lintRunner := runner.New(lint.NewPipeline(lint.NewEngine(webforms.New(), registry)))
	result, err := lintRunner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 4})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := rule.calls.Load(); got != 20 {
		t.Errorf("expected rule to run on 20 files, got %d", got)
	}
	if result.Stats.FilesProcessed != 20 {
		t.Errorf("expected 20 processed files, got %d", result.Stats.FilesProcessed)
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"Default.aspx": "<p>Hi</p>"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	if result.HasIssues() || result.HasFailures() {
		t.Error("nil result should report no issues")
	}
}
