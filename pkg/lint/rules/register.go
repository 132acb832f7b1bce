package rules

import (
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Markup rules
	registry.Register(NewHardcodedTextRule())      // LOC001
	registry.Register(NewHardcodedAttributeRule()) // LOC002

	// Code rules
	registry.Register(NewCodeStringRule()) // LOC003

	// Resource rules
	registry.Register(NewResourceExpressionRule()) // LOC004
	registry.Register(NewPageCultureRule())        // LOC005
}

// RegisterAliases registers short keys that can be used in place of a rule
// ID or name in configuration files and on the command line.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("text", "LOC001")
	registry.RegisterAlias("attributes", "LOC002")
	registry.RegisterAlias("code", "LOC003")
	registry.RegisterAlias("resources", "LOC004")
	registry.RegisterAlias("culture", "LOC005")
}

// RuleInfos describes the rules of registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	all := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(all))

	for _, rule := range all {
		info := config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			Aliases:     registry.AliasesFor(rule.ID()),
		}
		if describer, ok := rule.(lint.OptionDescriber); ok {
			info.Options = describer.DefaultOptions()
		}
		infos = append(infos, info)
	}

	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
