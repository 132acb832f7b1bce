package runner

import (
	"cmp"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
)

// FileOutcome is the result of checking one file. Exactly one of Result
// and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	DiagnosticsTotal      int
	DiagnosticsBySeverity map[string]int // keyed by config.Severity; missing severity counts as warning
	DiagnosticsByRule     map[string]int // keyed by rule ID

	// Languages counts processed files by detected server language.
	Languages map[string]int

	// RuleErrors counts rules that failed rather than reported.
	RuleErrors int
}

// Errors returns the number of error-level diagnostics.
func (s Stats) Errors() int { return s.DiagnosticsBySeverity[string(config.SeverityError)] }

// Warnings returns the number of warning-level diagnostics.
func (s Stats) Warnings() int { return s.DiagnosticsBySeverity[string(config.SeverityWarning)] }

// Infos returns the number of info-level diagnostics.
func (s Stats) Infos() int { return s.DiagnosticsBySeverity[string(config.SeverityInfo)] }

// Result is the outcome of a run, with Files sorted by path.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether any error-level diagnostic was produced.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.Errors() > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByRule:     make(map[string]int),
		Languages:             make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Result == nil || outcome.Result.FileResult == nil:
		return
	}

	stats := &r.Stats
	stats.FilesProcessed++
	stats.RuleErrors += len(outcome.Result.RuleErrors)

	if snap := outcome.Result.Snapshot; snap != nil {
		stats.Languages[cmp.Or(snap.Language, "unknown")]++
	}

	diags := outcome.Result.Diagnostics
	if len(diags) > 0 {
		stats.FilesWithIssues++
	}
	stats.DiagnosticsTotal += len(diags)

	for _, diag := range diags {
		severity := cmp.Or(diag.Severity, config.SeverityWarning)
		stats.DiagnosticsBySeverity[string(severity)]++
		stats.DiagnosticsByRule[diag.RuleID]++
	}
}
