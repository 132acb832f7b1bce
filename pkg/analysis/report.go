package analysis

import "time"

// Report holds the views computed from one run. Analyze builds it once and
// every renderer reads from it.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`

	// ByText lists each distinct flagged string once, with every place it
	// occurs. A string found in several pages usually needs a single
	// resource key.
	ByText []TextAnalysis `json:"byText,omitempty"`

	Totals    Totals    `json:"summary"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one finding with its path made display-relative.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Text        string `json:"text,omitempty"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// Counts tallies findings by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(severity string) {
	c.Issues++
	switch severity {
	case severityError:
		c.Errors++
	case severityWarning:
		c.Warnings++
	case severityInfo:
		c.Infos++
	}
}

func (c Counts) counts() Counts { return c }

// Totals aggregates the whole run.
type Totals struct {
	Counts

	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`

	// Languages counts checked files by server code language.
	Languages map[string]int `json:"languages,omitempty"`
}

// HasIssues reports whether any finding was recorded.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-level finding was recorded.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis aggregates the findings of one file.
type FileAnalysis struct {
	Counts

	Path     string   `json:"path"`
	Language string   `json:"language,omitempty"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the findings of one rule.
type RuleAnalysis struct {
	Counts

	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Files    []string `json:"files,omitempty"`
}

// TextAnalysis aggregates the findings that flagged the same string.
type TextAnalysis struct {
	Counts

	Text      string         `json:"text"`
	Files     []string       `json:"files"`
	Locations []TextLocation `json:"locations"`
}

// TextLocation is one occurrence of a flagged string.
type TextLocation struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	RuleID   string `json:"ruleId"`
}
