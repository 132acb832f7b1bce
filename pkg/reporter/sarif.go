package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "aspxloc"
	toolInformationURI = "https://github.com/yaklabco/aspxloc"
	defaultToolVersion = "dev"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string                `json:"id"`
	Name             string                `json:"name,omitempty"`
	ShortDescription *SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig      `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any        `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Character offsets count
// characters of the decoded file.
type SARIFRegion struct {
	StartLine   int                   `json:"startLine"`
	StartColumn int                   `json:"startColumn,omitempty"`
	EndLine     int                   `json:"endLine,omitempty"`
	EndColumn   int                   `json:"endColumn,omitempty"`
	CharOffset  int                   `json:"charOffset"`
	CharLength  int                   `json:"charLength"`
	Snippet     *SARIFMultiformatText `json:"snippet,omitempty"`
}

// SARIFInvocation records files that could not be analyzed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a tool execution problem tied to a file.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = defaultToolVersion
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           toolName,
				Version:        version,
				InformationURI: toolInformationURI,
				Rules:          make([]SARIFRule, 0, len(r.opts.Rules)),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	ruleIndex := make(map[string]int, len(r.opts.Rules))
	for _, info := range r.opts.Rules {
		ruleIndex[info.ID] = len(run.Tool.Driver.Rules)
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRuleFromInfo(info))
	}

	output := &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion}

	if result == nil {
		output.Runs = []SARIFRun{run}
		return output
	}

	invocation := SARIFInvocation{ExecutionSuccessful: true}

	for _, file := range result.Files {
		uri := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			invocation.ExecutionSuccessful = false
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
				Level:   "error",
				Message: SARIFMessage{Text: file.Error.Error()},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}},
				}},
			})
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for _, diag := range file.Result.Diagnostics {
			idx, known := ruleIndex[diag.RuleID]
			if !known {
				idx = len(run.Tool.Driver.Rules)
				ruleIndex[diag.RuleID] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
					ID:   diag.RuleID,
					Name: diag.RuleName,
				})
			}

			message := diag.Message
			if diag.Suggestion != "" {
				message += ". " + diag.Suggestion
			}

			region := SARIFRegion{
				StartLine:   diag.StartLine,
				StartColumn: diag.StartColumn,
				EndLine:     diag.EndLine,
				EndColumn:   diag.EndColumn,
				CharOffset:  diag.Offset,
				CharLength:  diag.Length,
			}
			if diag.Text != "" {
				region.Snippet = &SARIFMultiformatText{Text: diag.Text}
			}

			run.Results = append(run.Results, SARIFResult{
				RuleID:    diag.RuleID,
				RuleIndex: idx,
				Level:     severityToSARIFLevel(diag.Severity),
				Message:   SARIFMessage{Text: message},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: uri},
						Region:           region,
					},
				}},
			})
		}
	}

	run.Invocations = []SARIFInvocation{invocation}
	output.Runs = []SARIFRun{run}

	return output
}

func sarifRuleFromInfo(info config.RuleInfo) SARIFRule {
	rule := SARIFRule{
		ID:   info.ID,
		Name: info.Name,
		DefaultConfig: &SARIFRuleConfig{
			Enabled: info.Enabled,
			Level:   severityToSARIFLevel(info.Severity),
		},
	}
	if info.Description != "" {
		rule.ShortDescription = &SARIFMultiformatText{Text: info.Description}
	}
	if len(info.Tags) > 0 {
		rule.Properties = map[string]any{"tags": info.Tags}
	}
	return rule
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
