package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/aspxloc/pkg/config"
)

// envVarPrefix is the prefix for all aspxloc environment variables.
const envVarPrefix = "ASPXLOC_"

// dotEnvFile is read from the working directory.
const dotEnvFile = ".env"

// LookupFunc returns the value of an environment variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// envVar binds one variable suffix to a config field.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"SEVERITY_DEFAULT": {
		description: "Default severity: error, warning, or info",
		apply: func(cfg *config.Config, value string) error {
			cfg.SeverityDefault = value
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: text, table, json, sarif, or summary",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(strings.ToLower(value))
			return nil
		},
	},
	"RULE_FORMAT": {
		description: "Rule identifier style: name, id, or combined",
		apply: func(cfg *config.Config, value string) error {
			cfg.RuleFormat = config.RuleFormat(strings.ToLower(value))
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
	"EXTENSIONS": {
		description: "Comma-separated list of markup file extensions",
		apply: func(cfg *config.Config, value string) error {
			cfg.Extensions = parseSliceValue(value)
			return nil
		},
	},
	"ENABLE_RULES": {
		description: "Comma-separated rules to enable",
		apply: func(cfg *config.Config, value string) error {
			cfg.EnableRules = parseSliceValue(value)
			return nil
		},
	},
	"DISABLE_RULES": {
		description: "Comma-separated rules to disable",
		apply: func(cfg *config.Config, value string) error {
			cfg.DisableRules = parseSliceValue(value)
			return nil
		},
	},
}

// LoadFromEnvLookup applies ASPXLOC_* variables resolved through lookup.
// Empty values are ignored. All invalid values are reported together.
func LoadFromEnvLookup(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	for _, suffix := range envSuffixes() {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}

		if err := envVars[suffix].apply(cfg, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// readDotEnv parses the .env file in dir without modifying the process
// environment. A missing file yields an empty path and no error.
func readDotEnv(dir string) (string, map[string]string, error) {
	path := filepath.Join(dir, dotEnvFile)
	if !fileExists(path) {
		return "", nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return path, values, nil
}

// withFallback consults primary first and then the values map, so the
// process environment overrides a .env file.
func withFallback(primary LookupFunc, values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if value, ok := primary(key); ok {
			return value, true
		}
		value, ok := values[key]
		return value, ok
	}
}

// parseSliceValue splits a comma-separated value and trims each element.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		vars[envVarPrefix+suffix] = v.description
	}
	return vars
}
