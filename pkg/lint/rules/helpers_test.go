package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/parser/webforms"
)

func newTestRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterAliases(registry)
	return registry
}

// applyRule parses input as an .aspx page and runs rule with the given
// options against it.
func applyRule(t *testing.T, rule lint.Rule, input string, opts map[string]any) []lint.Diagnostic {
	t.Helper()

	diags, err := tryApplyRule(t, rule, input, opts)
	require.NoError(t, err)

	return diags
}

func tryApplyRule(t *testing.T, rule lint.Rule, input string, opts map[string]any) ([]lint.Diagnostic, error) {
	t.Helper()

	snapshot, err := webforms.New().Parse(context.Background(), "test.aspx", []byte(input))
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if opts != nil {
		ruleCfg = &config.RuleConfig{Options: opts}
	}

	ctx := lint.NewRuleContext(context.Background(), snapshot, config.NewConfig(), ruleCfg)

	return rule.Apply(ctx)
}

func diagTexts(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Text)
	}
	return out
}
