// Package analysis turns runner results into the grouped views used by the
// reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.1.0"

const (
	severityError   = "error"
	severityWarning = "warning"
	severityInfo    = "info"
)

const unknownLanguage = "unknown"

// displayPath returns path relative to workDir in slash form, or path
// unchanged when that is not possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// set is a string set.
type set map[string]struct{}

func (s set) sorted() []string {
	keys := lo.Keys(s)
	slices.Sort(keys)
	return keys
}

type fileAcc struct {
	FileAnalysis
	rules set
}

type ruleAcc struct {
	RuleAnalysis
	files set
}

type textAcc struct {
	TextAnalysis
	files set
}

// collector accumulates the grouped views in a single pass.
type collector struct {
	files map[string]*fileAcc
	rules map[string]*ruleAcc
	texts map[string]*textAcc
}

func newCollector() *collector {
	return &collector{
		files: make(map[string]*fileAcc),
		rules: make(map[string]*ruleAcc),
		texts: make(map[string]*textAcc),
	}
}

func (c *collector) file(path, language string) *fileAcc {
	acc, ok := c.files[path]
	if !ok {
		acc = &fileAcc{FileAnalysis: FileAnalysis{Path: path, Language: language}, rules: set{}}
		c.files[path] = acc
	}
	return acc
}

func (c *collector) record(path, severity string, diag *lint.Diagnostic) {
	rule, ok := c.rules[diag.RuleID]
	if !ok {
		rule = &ruleAcc{RuleAnalysis: RuleAnalysis{RuleID: diag.RuleID, RuleName: diag.RuleName}, files: set{}}
		c.rules[diag.RuleID] = rule
	}
	rule.add(severity)
	rule.files[path] = struct{}{}

	text := strings.TrimSpace(diag.Text)
	if text == "" {
		return
	}

	acc, ok := c.texts[text]
	if !ok {
		acc = &textAcc{TextAnalysis: TextAnalysis{Text: text}, files: set{}}
		c.texts[text] = acc
	}
	acc.add(severity)
	acc.files[path] = struct{}{}
	acc.Locations = append(acc.Locations, TextLocation{
		FilePath: path,
		Line:     diag.StartLine,
		Column:   diag.StartColumn,
		RuleID:   diag.RuleID,
	})
}

func (c *collector) byFile(opts Options) []FileAnalysis {
	out := make([]FileAnalysis, 0, len(c.files))
	for _, acc := range c.files {
		if acc.Issues == 0 {
			continue
		}
		acc.Rules = acc.rules.sorted()
		out = append(out, acc.FileAnalysis)
	}
	sortViews(out, opts, func(fa FileAnalysis) string { return fa.Path })
	return out
}

func (c *collector) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(c.rules))
	for _, acc := range c.rules {
		acc.Files = acc.files.sorted()
		out = append(out, acc.RuleAnalysis)
	}
	sortViews(out, opts, func(ra RuleAnalysis) string { return ra.RuleID })
	return out
}

func (c *collector) byText(opts Options) []TextAnalysis {
	out := make([]TextAnalysis, 0, len(c.texts))
	for _, acc := range c.texts {
		acc.Files = acc.files.sorted()
		slices.SortFunc(acc.Locations, func(a, b TextLocation) int {
			return cmp.Or(
				cmp.Compare(a.FilePath, b.FilePath),
				cmp.Compare(a.Line, b.Line),
				cmp.Compare(a.Column, b.Column),
			)
		})
		out = append(out, acc.TextAnalysis)
	}
	sortViews(out, opts, func(ta TextAnalysis) string { return ta.Text })
	return out
}

// Analyze computes a Report from a run in one pass over its diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	coll := newCollector()
	languages := make([]string, 0, len(result.Files))

	for _, outcome := range result.Files {
		report.Totals.Files++
		if outcome.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if outcome.Result == nil || outcome.Result.FileResult == nil {
			continue
		}

		diags := outcome.Result.Diagnostics
		if len(diags) > 0 {
			report.Totals.FilesWithIssues++
		}

		language := ""
		if outcome.Result.Snapshot != nil {
			language = outcome.Result.Snapshot.Language
		}
		languages = append(languages, cmp.Or(language, unknownLanguage))

		path := displayPath(outcome.Path, opts.WorkingDir)
		file := coll.file(path, language)

		for idx := range diags {
			diag := &diags[idx]
			severity := cmp.Or(string(diag.Severity), severityWarning)

			report.Totals.add(severity)
			file.add(severity)
			file.rules[diag.RuleID] = struct{}{}
			coll.record(path, severity, diag)

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath:    path,
					RuleID:      diag.RuleID,
					RuleName:    diag.RuleName,
					Severity:    severity,
					Message:     diag.Message,
					Text:        diag.Text,
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
					Offset:      diag.Offset,
					Length:      diag.Length,
					Suggestion:  diag.Suggestion,
				})
			}
		}
	}

	if len(languages) > 0 {
		report.Totals.Languages = lo.CountValues(languages)
	}
	if opts.IncludeByRule {
		report.ByRule = coll.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = coll.byFile(opts)
	}
	if opts.IncludeByText {
		report.ByText = coll.byText(opts)
	}

	return report
}

type counted interface {
	counts() Counts
}

// sortViews orders a grouped view. key breaks ties and drives SortByAlpha.
func sortViews[T counted](items []T, opts Options, key func(T) string) {
	slices.SortFunc(items, func(left, right T) int {
		lc, rc := left.counts(), right.counts()
		var result int

		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = cmp.Or(
				cmp.Compare(rc.Errors, lc.Errors),
				cmp.Compare(rc.Warnings, lc.Warnings),
				cmp.Compare(rc.Issues, lc.Issues),
			)
		default:
			result = cmp.Compare(lc.Issues, rc.Issues)
			if opts.SortDesc {
				result = -result
			}
		}

		return cmp.Or(result, cmp.Compare(key(left), key(right)))
	})
}
