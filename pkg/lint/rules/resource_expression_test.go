package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceExpressionRule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg []string
	}{
		{
			name:    "class and key",
			input:   `<asp:Literal Text="<%$ Resources: Strings, Welcome %>" runat="server" />`,
			wantMsg: []string{},
		},
		{
			name:    "key only",
			input:   `<asp:Literal Text="<%$ Resources:Welcome %>" runat="server" />`,
			wantMsg: []string{},
		},
		{
			name:    "dotted names",
			input:   `<asp:Literal Text="<%$ Resources: App.Strings, Page.Title %>" runat="server" />`,
			wantMsg: []string{},
		},
		{
			name:    "missing colon",
			input:   `<asp:Literal Text="<%$ Resources Strings.Welcome %>" runat="server" />`,
			wantMsg: []string{"Resource expression is missing ':' after Resources"},
		},
		{
			name:    "missing key",
			input:   `<asp:Literal Text="<%$ Resources: %>" runat="server" />`,
			wantMsg: []string{"Resource expression does not name a resource key"},
		},
		{
			name:    "too many parts",
			input:   `<asp:Literal Text="<%$ Resources: A, B, C %>" runat="server" />`,
			wantMsg: []string{"Resource expression has 3 parts; expected ClassName, Key or Key"},
		},
		{
			name:    "empty class",
			input:   `<asp:Literal Text="<%$ Resources: , Welcome %>" runat="server" />`,
			wantMsg: []string{"Resource expression has an empty class name or key"},
		},
		{
			name:    "space in key",
			input:   `<asp:Literal Text="<%$ Resources: Strings, Welcome Back %>" runat="server" />`,
			wantMsg: []string{`Resource name "Welcome Back" contains ' '`},
		},
		{
			name:    "prefix is case-insensitive",
			input:   `<asp:Literal Text="<%$ resources: %>" runat="server" />`,
			wantMsg: []string{"Resource expression does not name a resource key"},
		},
		{
			name:    "other expression builders",
			input:   `<asp:Literal Text="<%$ AppSettings: Title %>" runat="server" /><asp:Literal Text="<%$ ResourcesEx: x y %>" runat="server" />`,
			wantMsg: []string{},
		},
		{
			name:    "outside an attribute",
			input:   `<p><%$ Resources: Strings, Welcome %></p>`,
			wantMsg: []string{"Resource expression is only allowed in a server control attribute"},
		},
		{
			name:    "attribute of a client element",
			input:   `<a href="#" title="<%$ Resources: Strings, Tip %>">x</a>`,
			wantMsg: []string{`Resource expression on <a> requires runat="server"`},
		},
		{
			name:    "client comment",
			input:   `<!-- <%$ Resources: %> -->`,
			wantMsg: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := applyRule(t, NewResourceExpressionRule(), tt.input, nil)

			msgs := make([]string, 0, len(diags))
			for _, d := range diags {
				msgs = append(msgs, d.Message)
			}
			assert.Equal(t, tt.wantMsg, msgs)
		})
	}
}

func TestResourceExpressionRule_Span(t *testing.T) {
	input := `<asp:Literal Text="<%$ Resources: %>" runat="server" />`
	diags := applyRule(t, NewResourceExpressionRule(), input, nil)
	require.Len(t, diags, 1)

	assert.Equal(t, "<%$ Resources: %>", diags[0].Text)
	assert.Equal(t, 20, diags[0].StartColumn)
	assert.NotEmpty(t, diags[0].Suggestion)
}

func TestCheckResourceBody(t *testing.T) {
	assert.Empty(t, checkResourceBody(": Key"))
	assert.Empty(t, checkResourceBody(" : Class , Key "))
	assert.NotEmpty(t, checkResourceBody("Key"))
	assert.NotEmpty(t, checkResourceBody(":,"))
}

func TestResourceBody(t *testing.T) {
	tests := []struct {
		expr string
		body string
		ok   bool
	}{
		{"Resources: A", ": A", true},
		{"RESOURCES:A", ":A", true},
		{"Resources.A", ".A", true},
		{"Resources", "", true},
		{"ResourcesEx: A", "", false},
		{"AppSettings: A", "", false},
		{"Res", "", false},
	}

	for _, tt := range tests {
		body, ok := resourceBody(tt.expr)
		assert.Equal(t, tt.ok, ok, tt.expr)
		assert.Equal(t, tt.body, body, tt.expr)
	}
}
