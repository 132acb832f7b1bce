package rules

import (
	"sort"

	"github.com/yaklabco/aspxloc/pkg/config"
)

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .aspxloc.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "core", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// CorePack returns the core pack for pages that are being localized.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Visible markup text and attributes, plus resource expression checks",
		Rules: map[string]config.RuleConfig{
			"LOC001": enabled("warning"), // hardcoded-text
			"LOC002": enabled("warning"), // hardcoded-attribute
			"LOC004": enabled("error"),   // resource-expression
		},
	}
}

// StrictPack returns the strict pack with every rule enabled as an error,
// for pages that are expected to be fully localized.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule enabled as an error, including code strings and page culture",
		Rules: map[string]config.RuleConfig{
			"LOC001": enabled("error"), // hardcoded-text
			"LOC002": enabled("error"), // hardcoded-attribute
			"LOC003": enabled("error"), // hardcoded-code-string
			"LOC004": enabled("error"), // resource-expression
			"LOC005": enabled("error"), // page-culture
		},
	}
}

// RelaxedPack returns a minimal pack that only catches broken resource
// expressions and reports attributes as information.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: only broken resource expressions are errors",
		Rules: map[string]config.RuleConfig{
			"LOC002": enabled("info"),  // hardcoded-attribute
			"LOC004": enabled("error"), // resource-expression
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		CorePack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// RuleIDs returns the IDs of the rules the pack enables, sorted.
func (p Pack) RuleIDs() []string {
	ids := make([]string, 0, len(p.Rules))
	for id, rc := range p.Rules {
		if rc.Enabled == nil || *rc.Enabled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Apply copies the pack's rule settings into cfg, replacing existing
// settings for the same rules. Rules outside the pack are disabled.
func (p Pack) Apply(cfg *config.Config, ruleIDs []string) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}

	for _, id := range ruleIDs {
		if rc, ok := p.Rules[id]; ok {
			cfg.Rules[id] = rc
			continue
		}
		cfg.Rules[id] = disabled()
	}
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
