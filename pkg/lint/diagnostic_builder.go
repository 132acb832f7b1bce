package lint

import (
	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the text covered by span.
// The flagged text is taken from file.
func NewDiagnostic(ruleID string, file *markup.FileSnapshot, span aspx.BlockSpan, message string) *DiagnosticBuilder {
	pos := markup.FromSpan(span)

	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
			Offset:      span.AbsoluteCharOffset,
			Length:      span.AbsoluteCharLength,
		},
	}

	if file != nil {
		b.diag.FilePath = file.Path
		b.diag.Text = file.Slice(span)
	}

	return b
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos markup.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// NewDiagnosticAtWithRegistry creates a DiagnosticBuilder with rule name lookup.
func NewDiagnosticAtWithRegistry(
	ruleID string,
	filePath string,
	pos markup.SourcePosition,
	message string,
	reg *Registry,
) *DiagnosticBuilder {
	b := NewDiagnosticAt(ruleID, filePath, pos, message)
	if reg != nil {
		if rule, ok := reg.GetByID(ruleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithText overrides the flagged text.
func (b *DiagnosticBuilder) WithText(text string) *DiagnosticBuilder {
	b.diag.Text = text
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
