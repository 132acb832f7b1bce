package configloader

import (
	"errors"
	"testing"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
)

func asValidationError(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cfg          *config.Config
		wantErrors   int
		wantWarnings int
	}{
		{name: "nil", cfg: nil},
		{name: "defaults", cfg: config.NewConfig()},
		{name: "severity case-insensitive", cfg: &config.Config{SeverityDefault: "Error"}},
		{name: "bad severity", cfg: &config.Config{SeverityDefault: "fatal"}, wantErrors: 1},
		{name: "bad format", cfg: &config.Config{Format: "diff"}, wantErrors: 1},
		{name: "bad rule format", cfg: &config.Config{RuleFormat: "short"}, wantErrors: 1},
		{name: "negative jobs", cfg: &config.Config{Jobs: -1}, wantErrors: 1},
		{name: "extension without dot", cfg: &config.Config{Extensions: []string{"aspx", "."}}, wantErrors: 2},
		{name: "bad glob", cfg: &config.Config{Ignore: []string{"**/bin/**", "[unclosed"}}, wantErrors: 1},
		{
			name: "rules",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"LOC001": {Severity: strPtr("info")},
				"text":   {},
				"LOC999": {},
				"LOC002": {Severity: strPtr("nope")},
			}},
			wantErrors:   1,
			wantWarnings: 1,
		},
		{
			name:         "enable and disable lists",
			cfg:          &config.Config{EnableRules: []string{"culture"}, DisableRules: []string{"MD013"}},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg, lint.DefaultRegistry)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", result.Errors, tt.wantErrors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", result.Warnings, tt.wantWarnings)
			}
			if result.Valid() != (tt.wantErrors == 0) {
				t.Errorf("Valid() = %v", result.Valid())
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "rules.LOC001.severity", Message: "invalid severity", FilePath: ".aspxloc.yml"}
	if got, want := err.Error(), ".aspxloc.yml: rules.LOC001.severity: invalid severity"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := (&ValidationError{Message: "bad"}).Error(); got != "bad" {
		t.Errorf("Error() = %q, want %q", got, "bad")
	}
}

func TestValidate_NilRegistrySkipsRuleLookup(t *testing.T) {
	t.Parallel()

	result := Validate(&config.Config{Rules: map[string]config.RuleConfig{"LOC999": {}}}, nil)
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}
}

func TestIsValidFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []config.OutputFormat{config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSARIF, config.FormatSummary} {
		if !IsValidFormat(format) {
			t.Errorf("IsValidFormat(%q) = false, want true", format)
		}
	}
	for _, format := range []config.OutputFormat{"diff", "TEXT", ""} {
		if IsValidFormat(format) {
			t.Errorf("IsValidFormat(%q) = true, want false", format)
		}
	}
}
