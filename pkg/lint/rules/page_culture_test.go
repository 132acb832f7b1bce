package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCultureRule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    map[string]any
		wantMsg string
	}{
		{
			name:    "no culture",
			input:   `<%@ Page Language="C#" %>`,
			wantMsg: "Page directive does not declare Culture and UICulture",
		},
		{
			name:    "missing ui culture",
			input:   `<%@ Page Language="C#" Culture="auto" %>`,
			wantMsg: "Page directive does not declare UICulture",
		},
		{
			name:  "both declared",
			input: `<%@ Page Language="C#" culture="auto" uiculture="auto" %>`,
		},
		{
			name:    "empty value",
			input:   `<%@ Page Culture="" UICulture="en-US" %>`,
			wantMsg: "Page directive does not declare Culture",
		},
		{
			name:  "user control",
			input: `<%@ Control Language="C#" %>`,
		},
		{
			name:  "no directive",
			input: `<p>x</p>`,
		},
		{
			name:  "custom requirement",
			input: `<%@ Page UICulture="auto" %>`,
			opts:  map[string]any{"required": []any{"UICulture"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := applyRule(t, NewPageCultureRule(), tt.input, tt.opts)

			if tt.wantMsg == "" {
				assert.Empty(t, diags)
				return
			}

			require.Len(t, diags, 1)
			assert.Equal(t, tt.wantMsg, diags[0].Message)
			assert.Equal(t, 1, diags[0].StartLine)
			assert.Equal(t, 1, diags[0].StartColumn)
		})
	}
}

func TestPageCultureRule_Defaults(t *testing.T) {
	rule := NewPageCultureRule()

	assert.False(t, rule.DefaultEnabled())
	assert.Equal(t, "info", string(rule.DefaultSeverity()))
	assert.Equal(t, []string{"Culture", "UICulture"}, rule.DefaultOptions()["required"])
}
