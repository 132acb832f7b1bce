package analysis

import "github.com/yaklabco/aspxloc/pkg/config"

// SortField selects the ordering of the grouped views.
type SortField string

const (
	SortByCount    SortField = "count"    // most findings first unless SortDesc is false
	SortByAlpha    SortField = "alpha"    // by path, rule ID or text; always ascending
	SortBySeverity SortField = "severity" // errors, then warnings, then total
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// Options selects which views Analyze builds.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool
	IncludeByText      bool

	SortBy   SortField
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions builds every view, most frequent first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		IncludeByText:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
