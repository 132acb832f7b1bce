package aspx

// OutputElementKind identifies the flavor of an inline output element.
type OutputElementKind int

const (
	// OutputPlain is <%= expr %>.
	OutputPlain OutputElementKind = iota
	// OutputHTMLEscaped is <%: expr %>.
	OutputHTMLEscaped
	// OutputExpression is <%$ expr %>.
	OutputExpression
	// OutputBind is <%# expr %>. It is never reported; <%# %> is a code block.
	OutputBind
)

func (k OutputElementKind) String() string {
	switch k {
	case OutputPlain:
		return "PLAIN"
	case OutputHTMLEscaped:
		return "HTML_ESCAPED"
	case OutputExpression:
		return "EXPRESSION"
	case OutputBind:
		return "BIND"
	default:
		return "UNKNOWN"
	}
}

// AttributeInfo is a name="value" pair of an element or directive.
type AttributeInfo struct {
	Name string

	// Value is the raw text between the quotes.
	Value string

	// BlockSpan covers Value, excluding the quotes.
	BlockSpan BlockSpan

	// ContainsAspTags is set when an output element occurs inside the value.
	ContainsAspTags bool

	// IsMarkedWithUnlocalizableComment is never set by the parser.
	// Consumers use it to flag attributes preceded by a no-localize marker.
	IsMarkedWithUnlocalizableComment bool
}

// CodeBlockContext describes a <% %> block or a <script> body.
type CodeBlockContext struct {
	BlockText               string
	InnerBlockSpan          BlockSpan
	OuterBlockSpan          BlockSpan
	WithinClientSideComment bool
}

// DirectiveContext describes a <%@ Name attr="value" %> directive.
type DirectiveContext struct {
	DirectiveName           string
	Attributes              []AttributeInfo
	BlockSpan               BlockSpan
	WithinClientSideComment bool
}

// Attribute returns the first attribute whose name matches case-insensitively.
func (d *DirectiveContext) Attribute(name string) (AttributeInfo, bool) {
	return findAttribute(d.Attributes, name)
}

// OutputElementContext describes an inline output element.
type OutputElementContext struct {
	Kind           OutputElementKind
	InnerText      string
	InnerBlockSpan BlockSpan
	OuterBlockSpan BlockSpan

	// WithinElementsAttribute is set when the output element sits inside a
	// quoted attribute value of an element.
	WithinElementsAttribute bool
	WithinClientSideComment bool
}

// ElementContext describes an opening tag.
type ElementContext struct {
	Prefix      string
	ElementName string
	Attributes  []AttributeInfo
	BlockSpan   BlockSpan

	// IsEmpty is set for self-closing tags such as <br/>.
	IsEmpty                 bool
	WithinClientSideComment bool
}

// Attribute returns the first attribute whose name matches case-insensitively.
func (e *ElementContext) Attribute(name string) (AttributeInfo, bool) {
	return findAttribute(e.Attributes, name)
}

// QualifiedName returns Prefix:ElementName, or ElementName without a prefix.
func (e *ElementContext) QualifiedName() string {
	return qualify(e.Prefix, e.ElementName)
}

// EndElementContext describes a closing tag.
type EndElementContext struct {
	Prefix                  string
	ElementName             string
	BlockSpan               BlockSpan
	WithinClientSideComment bool
}

// QualifiedName returns Prefix:ElementName, or ElementName without a prefix.
func (e *EndElementContext) QualifiedName() string {
	return qualify(e.Prefix, e.ElementName)
}

// PlainTextContext describes a run of text between constructs.
// Text is never whitespace only.
type PlainTextContext struct {
	Text                    string
	BlockSpan               BlockSpan
	WithinClientSideComment bool
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + ":" + name
}
