package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aspxloc/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "LOC001", "hardcoded-text", "hardcoded-text"},
		{"id format", config.RuleFormatID, "LOC001", "hardcoded-text", "LOC001"},
		{"combined format", config.RuleFormatCombined, "LOC001", "hardcoded-text", "LOC001/hardcoded-text"},
		{"name format empty name", config.RuleFormatName, "LOC001", "", "LOC001"},
		{"default to name", config.RuleFormat(""), "LOC001", "hardcoded-text", "hardcoded-text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]config.Severity{
		"error":     config.SeverityError,
		" Warning ": config.SeverityWarning,
		"INFO":      config.SeverityInfo,
	} {
		got, err := config.ParseSeverity(input)
		if err != nil {
			t.Errorf("ParseSeverity(%q) error: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := config.ParseSeverity("fatal"); !errors.Is(err, config.ErrInvalidSeverity) {
		t.Errorf("ParseSeverity(fatal) error = %v, want ErrInvalidSeverity", err)
	}
}
