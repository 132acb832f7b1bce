package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/aspxloc/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryValueColumn  = 21
)

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return singular
	}
	return pluralForm
}

func files(count int) string {
	return fmt.Sprintf("%d %s", count, plural(count, "file", "files"))
}

// severityCounts renders the non-zero severity counts of stats, most severe
// first, each in its severity color.
func (s *Styles) severityCounts(stats runner.Stats) []string {
	var parts []string
	if n := stats.Errors(); n > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.Warnings(); n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.Infos(); n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return parts
}

// FormatSummaryOneLine formats run statistics as a single line, such as
// "12 issues (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(" ("+files(stats.FilesProcessed)+" checked)"))
	} else {
		issues := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if counts := s.severityCounts(stats); len(counts) > 0 {
			issues += " (" + strings.Join(counts, ", ") + ")"
		}
		parts = append(parts, issues+" in "+files(stats.FilesWithIssues))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(files(stats.FilesErrored)+" could not be checked"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a labelled block ending in a
// pass or fail verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	row := func(indent int, label, value string) {
		fmt.Fprintf(&b, "%s%-*s%s\n", strings.Repeat(" ", indent), summaryValueColumn-indent, label+":", value)
	}

	b.WriteString("\n" + s.Bold.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row(2, "Files checked", s.Message.Render(fmt.Sprint(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row(2, "Files with issues", s.Failure.Render(fmt.Sprint(stats.FilesWithIssues)))
	}
	if stats.FilesErrored > 0 {
		row(2, "Files errored", s.Failure.Render(fmt.Sprint(stats.FilesErrored)))
	}
	if len(stats.Languages) > 0 {
		langs := make([]string, 0, len(stats.Languages))
		for _, lang := range slices.Sorted(maps.Keys(stats.Languages)) {
			langs = append(langs, fmt.Sprintf("%s %d", lang, stats.Languages[lang]))
		}
		row(2, "Languages", s.Dim.Render(strings.Join(langs, ", ")))
	}

	b.WriteString("\n")
	row(2, "Total issues", s.Message.Render(fmt.Sprint(stats.DiagnosticsTotal)))
	for _, sev := range []struct {
		label string
		n     int
		style func(...string) string
	}{
		{"Errors", stats.Errors(), s.Error.Render},
		{"Warnings", stats.Warnings(), s.Warning.Render},
		{"Info", stats.Infos(), s.Info.Render},
		{"Rule failures", stats.RuleErrors, s.Failure.Render},
	} {
		if sev.n > 0 {
			row(4, sev.label, sev.style(fmt.Sprint(sev.n)))
		}
	}

	b.WriteString("\n")
	switch {
	case stats.Errors() > 0:
		b.WriteString(s.Failure.Render("Localization check failed with errors"))
	case stats.DiagnosticsTotal > 0:
		b.WriteString(s.Warning.Render("Localization check completed with findings"))
	default:
		b.WriteString(s.Success.Render("Localization check passed"))
	}
	b.WriteString("\n")

	return b.String()
}
