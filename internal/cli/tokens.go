package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/fsutil"
	"github.com/yaklabco/aspxloc/pkg/markup"
	"github.com/yaklabco/aspxloc/pkg/parser/webforms"
)

// tokenSnippetWidth caps the source excerpt printed per event.
const tokenSnippetWidth = 48

type tokensFlags struct {
	format   string
	maxLine  int
	maxIndex int
}

// tokenInfo is the JSON form of a parser event.
type tokenInfo struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Depth  int    `json:"depth"`
	NoLoc  bool   `json:"noLoc,omitempty"`
	InHTML bool   `json:"inClientComment,omitempty"`
	Text   string `json:"text"`
}

type tokensOutput struct {
	Path     string      `json:"path"`
	Language string      `json:"language,omitempty"`
	Events   []tokenInfo `json:"events"`
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the parser events of a markup file",
		Long: `Print the sequence of constructs the markup parser reports for a file:
directives, code blocks, output elements, element tags and text runs,
each with its position and nesting depth.

Use --max-line and --max-index (0-based) to stop at a position, the way
an editor asks what surrounds the cursor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runTokens(ctx, cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flags.maxLine, "max-line", aspx.Unbounded, "Stop after the construct crossing this 0-based line")
	cmd.Flags().IntVar(&flags.maxIndex, "max-index", 0, "0-based column paired with --max-line")

	return cmd
}

func runTokens(ctx context.Context, out io.Writer, path string, flags *tokensFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesFailed, err)
	}

	parser := webforms.New(webforms.WithLimit(flags.maxLine, flags.maxIndex))
	snapshot, err := parser.Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesFailed, err)
	}

	result := tokensOutput{
		Path:     path,
		Language: snapshot.Language,
		Events:   make([]tokenInfo, 0, len(snapshot.Events)),
	}
	for idx := range snapshot.Events {
		result.Events = append(result.Events, describeEvent(snapshot, &snapshot.Events[idx]))
	}

	if flags.format == formatJSON {
		return encodeJSON(out, result)
	}

	return writeTokensText(out, result)
}

func describeEvent(snapshot *markup.FileSnapshot, ev *markup.Event) tokenInfo {
	span := ev.Span()
	line, col := snapshot.LineAt(span.AbsoluteCharOffset)

	info := tokenInfo{
		Kind:   ev.Kind.String(),
		Line:   line,
		Column: col,
		Offset: span.AbsoluteCharOffset,
		Length: span.AbsoluteCharLength,
		Depth:  ev.Depth,
		NoLoc:  ev.NoLoc,
		InHTML: ev.InClientComment(),
		Text:   snapshot.Slice(span),
	}

	switch ev.Kind {
	case markup.EventDirective:
		info.Name = ev.Directive.DirectiveName
	case markup.EventOutput:
		info.Name = ev.Output.Kind.String()
	case markup.EventElementBegin:
		info.Name = ev.Element.QualifiedName()
	case markup.EventElementEnd:
		info.Name = ev.EndElement.QualifiedName()
	case markup.EventCodeBlock, markup.EventPlainText:
	}

	return info
}

func writeTokensText(out io.Writer, result tokensOutput) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	if result.Language != "" {
		fmt.Fprintf(w, "%s (%s)\n", result.Path, result.Language)
	} else {
		fmt.Fprintf(w, "%s\n", result.Path)
	}

	for _, tok := range result.Events {
		kind := tok.Kind
		if tok.Name != "" {
			kind += " " + tok.Name
		}
		flags := ""
		if tok.NoLoc {
			flags += " noloc"
		}
		if tok.InHTML {
			flags += " comment"
		}

		fmt.Fprintf(w, "%4d:%-4d %s%-24s %q%s\n",
			tok.Line, tok.Column, strings.Repeat("  ", tok.Depth), kind, snippet(tok.Text), flags)
	}

	fmt.Fprintf(w, "%d events\n", len(result.Events))

	return nil
}

func snippet(text string) string {
	if utf8.RuneCountInString(text) <= tokenSnippetWidth {
		return text
	}
	runes := []rune(text)
	return string(runes[:tokenSnippetWidth-3]) + "..."
}
