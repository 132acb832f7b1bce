package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxloc/internal/cli"
	"github.com/yaklabco/aspxloc/pkg/reporter"
)

// pageWithIssues has hardcoded heading text (LOC001, warning) and a resource
// expression without a key (LOC004, error).
const pageWithIssues = `<%@ Page Language="C#" %>
<html>
<body>
<h1>Welcome to the site</h1>
<asp:Literal Text="<%$ Resources: %>" runat="server" />
</body>
</html>
`

// pageWithWarnings only has hardcoded text.
const pageWithWarnings = `<%@ Control Language="C#" %>
<p>Please sign in</p>
`

// cleanPage takes all of its text from resources.
const cleanPage = `<%@ Page Language="C#" %>
<asp:Literal Text="<%$ Resources: Strings, Welcome %>" runat="server" />
`

type cliRun struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with an isolated configuration file.
func runCLI(t *testing.T, args ...string) cliRun {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".aspxloc.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("ignore: []\n"), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.0.0-test", Commit: "abc", Date: "today"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()

	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writePage creates a markup file in a fresh directory and returns its path.
func writePage(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_ScanReportsIssues(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Default.aspx", pageWithIssues)

	run := runCLI(t, "scan", page)

	require.ErrorIs(t, run.err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(run.err))
	assert.True(t, cli.IsFindingsError(run.err))

	assert.Contains(t, run.stdout, "Default.aspx")
	assert.Contains(t, run.stdout, "hardcoded-text")
	assert.Contains(t, run.stdout, "resource-expression")
	assert.Contains(t, run.stdout, "Welcome to the site")
}

func TestIntegration_ScanCleanFile(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Clean.aspx", cleanPage)

	run := runCLI(t, "scan", page)

	require.NoError(t, run.err)
	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(run.err))
}

func TestIntegration_StrictMode(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Login.ascx", pageWithWarnings)

	t.Run("warnings pass without strict", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, "scan", page)
		require.NoError(t, run.err)
		assert.Contains(t, run.stdout, "Please sign in")
	})

	t.Run("warnings fail with strict", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, "scan", "--strict", page)
		require.ErrorIs(t, run.err, cli.ErrWarningsFound)
		assert.Equal(t, cli.ExitLintWarnings, cli.ExitCode(run.err))
	})
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Login.ascx", pageWithWarnings)

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"hardcoded-text"},
			wantNotContain: []string{"LOC001"},
		},
		{
			name:           "format id shows rule ID only",
			ruleFormat:     "id",
			wantContains:   []string{"LOC001"},
			wantNotContain: []string{"hardcoded-text"},
		},
		{
			name:         "format combined shows both ID and name",
			ruleFormat:   "combined",
			wantContains: []string{"LOC001/hardcoded-text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := runCLI(t, "scan", "--rule-format", tt.ruleFormat, page)
			require.NoError(t, run.err)

			for _, want := range tt.wantContains {
				assert.Contains(t, run.stdout, want)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, run.stdout, notWant)
			}
		})
	}
}

func TestIntegration_DisableByAlias(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Default.aspx", pageWithIssues)

	run := runCLI(t, "scan", "--disable", "resources", "--format", "json", page)
	require.NoError(t, run.err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &output))

	assert.Zero(t, output.Summary.ByRule["LOC004"])
	assert.Positive(t, output.Summary.ByRule["LOC001"])
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Default.aspx", pageWithIssues)

	run := runCLI(t, "scan", "--format", "json", page)
	require.ErrorIs(t, run.err, cli.ErrIssuesFound)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &output), run.stdout)

	require.Len(t, output.Files, 1)
	assert.Equal(t, "csharp", output.Files[0].Language)
	assert.Equal(t, 1, output.Summary.FilesChecked)
	assert.Positive(t, output.Summary.BySeverity["error"])

	var found bool
	for _, diag := range output.Files[0].Diagnostics {
		if diag.RuleID == "LOC001" {
			found = true
			assert.Equal(t, 4, diag.StartLine)
			assert.Equal(t, "hardcoded-text", diag.RuleName)
		}
	}
	assert.True(t, found, "expected a LOC001 diagnostic")
}

func TestIntegration_OutputFile(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Default.aspx", pageWithIssues)
	outPath := filepath.Join(t.TempDir(), "reports", "loc.sarif")

	run := runCLI(t, "scan", "--format", "sarif", "--output", outPath, page)
	require.ErrorIs(t, run.err, cli.ErrIssuesFound)
	assert.NotContains(t, run.stdout, `"$schema"`)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var sarif map[string]any
	require.NoError(t, json.Unmarshal(data, &sarif))
	assert.Equal(t, "2.1.0", sarif["version"])

	runs, ok := sarif["runs"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)

	driver := runs[0].(map[string]any)["tool"].(map[string]any)["driver"].(map[string]any)
	assert.Equal(t, "aspxloc", driver["name"])
	assert.Equal(t, "1.0.0-test", driver["version"])
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	page := writePage(t, "Default.aspx", pageWithIssues)

	run := runCLI(t, "scan", "--format", "summary", page)
	require.ErrorIs(t, run.err, cli.ErrIssuesFound)
	assert.Contains(t, run.stdout, "Languages: csharp 1")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	run := runCLI(t, "scan", "--format", "diff", writePage(t, "Default.aspx", cleanPage))

	require.ErrorIs(t, run.err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(run.err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("severity_default: loud\n"), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"scan", "--config", cfgFile, writePage(t, "Default.aspx", cleanPage)})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "loud")
}

func TestIntegration_DirectoryScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Pages"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Pages", "About.aspx"), []byte(pageWithWarnings), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Site.master"), []byte(cleanPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "Copy.aspx"), []byte(pageWithIssues), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("Hello there"), 0o644))

	run := runCLI(t, "scan", "--format", "json", root)
	require.NoError(t, run.err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &output))

	assert.Equal(t, 2, output.Summary.FilesChecked)
	for _, file := range output.Files {
		assert.NotContains(t, file.Path, "bin/")
		assert.NotContains(t, file.Path, "notes.txt")
	}
}
