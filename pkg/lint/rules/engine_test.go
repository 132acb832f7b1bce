package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/parser/webforms"
)

const samplePage = `<%@ Page Language="C#" AutoEventWireup="true" CodeBehind="Default.aspx.cs" Inherits="Web.Default" %>
<!DOCTYPE html>
<html>
<head runat="server">
    <title><%$ Resources: Strings, PageTitle %></title>
    <style>h1 { color: navy; }</style>
</head>
<body>
    <h1>Welcome</h1>
    <asp:Label ID="lblUser" Text="User name" runat="server" />
    <asp:Label ID="lblHint" Text="<%$ Resources: Strings, Hint %>" runat="server" />
    <%-- reviewed --%>
    <% if (IsAdmin) { Response.Write("Admin mode"); } %>
</body>
</html>
`

func TestEngine_SamplePage(t *testing.T) {
	engine := lint.NewEngine(webforms.New(), newTestRegistry())

	result, err := engine.LintFile(context.Background(), "Default.aspx", []byte(samplePage), config.NewConfig())
	require.NoError(t, err)
	require.Empty(t, result.RuleErrors)

	type found struct {
		rule string
		line int
		text string
	}

	var got []found
	for _, d := range result.Diagnostics {
		got = append(got, found{d.RuleID, d.StartLine, d.Text})
	}

	assert.Equal(t, []found{
		{"LOC004", 5, "<%$ Resources: Strings, PageTitle %>"},
		{"LOC001", 9, "Welcome"},
		{"LOC002", 10, "User name"},
		{"LOC003", 13, `"Admin mode"`},
	}, got)

	assert.Equal(t, "csharp", result.Snapshot.Language)
	assert.Equal(t, 1, result.CountBySeverity(config.SeverityError))
	assert.Equal(t, 1, result.CountBySeverity(config.SeverityInfo))
}

func TestEngine_EnableDisable(t *testing.T) {
	engine := lint.NewEngine(webforms.New(), newTestRegistry())

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"culture"}
	cfg.DisableRules = []string{"text", "LOC002", "hardcoded-code-string"}

	result, err := engine.LintFile(context.Background(), "Default.aspx", []byte(samplePage), cfg)
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		ids = append(ids, d.RuleID)
	}
	assert.Equal(t, []string{"LOC005", "LOC004"}, ids)
}
