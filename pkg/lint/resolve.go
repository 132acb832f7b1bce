package lint

import (
	"strings"

	"github.com/yaklabco/aspxloc/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	if cfg != nil && (len(cfg.EnableRules) > 0 || len(cfg.DisableRules) > 0) {
		local := *cfg
		local.EnableRules = canonicalRuleKeys(registry, cfg.EnableRules)
		local.DisableRules = canonicalRuleKeys(registry, cfg.DisableRules)
		cfg = &local
	}

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		Config:   nil,
	}

	if cfg == nil {
		return rr
	}

	// severity_default replaces the generic warning level only.
	if cfg.SeverityDefault != "" && cfg.SeverityDefault != string(config.SeverityWarning) &&
		rule.DefaultSeverity() == config.SeverityWarning {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	// Apply rule-specific config.
	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	// Explicit enable/disable from the CLI wins over the file.
	if matchesRule(rule, cfg.EnableRules) {
		rr.Enabled = true
	}
	if matchesRule(rule, cfg.DisableRules) {
		rr.Enabled = false
	}

	return rr
}

// matchesRule reports whether keys name rule by ID or name, ignoring case.
func matchesRule(rule Rule, keys []string) bool {
	for _, key := range keys {
		if strings.EqualFold(key, rule.ID()) || strings.EqualFold(key, rule.Name()) {
			return true
		}
	}
	return false
}

// canonicalRuleKeys maps aliases to rule IDs. Unknown keys are kept as is.
func canonicalRuleKeys(registry *Registry, keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok {
			out = append(out, id)
			continue
		}
		out = append(out, key)
	}
	return out
}
