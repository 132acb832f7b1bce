// Package rules provides the built-in localization rules for aspxloc.
//
// # Rule Domains
//
//   - Markup:
//
//   - LOC001: hardcoded-text - Visible text written directly into the page
//
//   - LOC002: hardcoded-attribute - Literal values of localizable attributes
//     such as Text, ToolTip, alt and title
//
//   - Code:
//
//   - LOC003: hardcoded-code-string - String literals in <% %> blocks,
//     output elements and server scripts
//
//   - Resources:
//
//   - LOC004: resource-expression - Malformed or misplaced
//     <%$ Resources: ... %> expressions
//
//   - LOC005: page-culture - Page directives without Culture and UICulture
//     (disabled by default)
//
// # Suppression
//
// A code block or output element holding only the VL_NO_LOC marker comment,
// such as <%/*VL_NO_LOC*/%> or <%'VL_NO_LOC%>, exempts the next element's
// attributes or the next text run. Inside code, /*VL_NO_LOC*/ directly
// before a literal exempts that literal. Controls with meta:resourcekey use
// implicit localization and are skipped by LOC002.
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - core: markup text, attributes and resource expressions
//   - strict: every rule as an error
//   - relaxed: only broken resource expressions
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll, and short
// aliases ("text", "attributes", "code", "resources", "culture") via
// RegisterAliases.
package rules
