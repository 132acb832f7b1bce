package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/aspxloc/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior. Fields that do not apply to the
// selected Format are ignored.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// Text format.
	ShowContext bool // print the source line under each finding
	ShowSummary bool // print the totals line
	GroupByFile bool // print a file header before its findings

	// Table format.
	PerFile bool

	// JSON and SARIF.
	Compact bool

	// Summary format.
	SummaryOrder config.SummaryOrder

	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string

	// Rules and ToolVersion describe the tool in SARIF output.
	Rules       []config.RuleInfo
	ToolVersion string
}

// DefaultOptions returns text output to stdout with context and summary.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
	}
}
