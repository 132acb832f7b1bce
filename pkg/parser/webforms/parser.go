// Package webforms provides the lint.Parser implementation for ASP.NET
// Web Forms markup (.aspx, .ascx, .master).
package webforms

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yaklabco/aspxloc/pkg/aspx"
	"github.com/yaklabco/aspxloc/pkg/langdetect"
	"github.com/yaklabco/aspxloc/pkg/literal"
	"github.com/yaklabco/aspxloc/pkg/markup"
)

// Directives that declare the page language.
var languageDirectives = []string{"Page", "Control", "Master"}

// Parser implements lint.Parser for Web Forms markup.
// It is safe for concurrent use.
type Parser struct {
	maxLine  int
	maxIndex int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLimit stops parsing after the construct that crosses the 0-based
// position (maxLine, maxIndex).
func WithLimit(maxLine, maxIndex int) Option {
	return func(p *Parser) {
		p.maxLine = maxLine
		p.maxIndex = maxIndex
	}
}

// New creates a Web Forms parser.
func New(opts ...Option) *Parser {
	p := &Parser{maxLine: aspx.Unbounded}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes content and converts it into a FileSnapshot.
//
// The method:
//  1. Checks for context cancellation.
//  2. Decodes the bytes, honouring a byte order mark.
//  3. Runs the markup tokenizer, which stops early if ctx is cancelled.
//  4. Determines the server code language of the page.
//
// Returns nil and an error if decoding fails or context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*markup.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	text, err := Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	snapshot := markup.ParseBounded(ctx, path, bytes.Clone(content), text, p.maxLine, p.maxIndex)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Language = DetectLanguage(snapshot)

	return snapshot, nil
}

// Decode converts file bytes to text. UTF-8 and UTF-16 byte order marks are
// honoured and stripped. Content without a BOM that is not valid UTF-8 is
// decoded with the charset named by a <meta> tag in its first kilobyte,
// else as Windows-1252, the default encoding of legacy Web Forms projects.
func Decode(content []byte) (string, error) {
	if hasBOM(content) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
		if err != nil {
			return "", fmt.Errorf("decode: %w", err)
		}
		return string(decoded), nil
	}

	if utf8.Valid(content) {
		return string(content), nil
	}

	enc, name := legacyEncoding(content)
	decoded, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}

	return string(decoded), nil
}

// legacyEncoding picks the decoder for content that is not valid UTF-8.
func legacyEncoding(content []byte) (encoding.Encoding, string) {
	enc, name, _ := charset.DetermineEncoding(content, "text/html")
	if enc == nil || name == "utf-8" {
		return charmap.Windows1252, "windows-1252"
	}

	return enc, name
}

func hasBOM(content []byte) bool {
	return bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(content, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(content, []byte{0xFF, 0xFE})
}

// DetectLanguage returns the server code language of a page: the Language
// attribute of its Page, Control or Master directive, else the language of
// its code-behind file, else a guess from its inline code. Returns "" when
// none applies.
func DetectLanguage(snapshot *markup.FileSnapshot) string {
	for _, name := range languageDirectives {
		directive := snapshot.Directive(name)
		if directive == nil {
			continue
		}

		if attr, ok := directive.Attribute("Language"); ok {
			if lang := literal.ParseLanguage(attr.Value); lang != literal.LanguageUnknown {
				return lang.String()
			}
		}

		for _, key := range []string{"CodeFile", "CodeBehind", "Src"} {
			if attr, ok := directive.Attribute(key); ok {
				if lang := serverLanguage(langdetect.FromFilename(attr.Value)); lang != "" {
					return lang
				}
			}
		}
	}

	var code bytes.Buffer
	for _, ev := range snapshot.Filter(markup.EventCodeBlock) {
		if !strings.HasPrefix(snapshot.Slice(ev.Span()), "<%") {
			continue
		}
		code.WriteString(ev.CodeBlock.BlockText)
		code.WriteByte('\n')
	}

	return serverLanguage(langdetect.Detect(code.Bytes()))
}

// serverLanguage keeps the languages a page can be compiled in.
func serverLanguage(lang string) string {
	switch lang {
	case langdetect.LangCSharp, langdetect.LangVB:
		return lang
	default:
		return ""
	}
}
