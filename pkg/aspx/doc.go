// Package aspx tokenizes ASP.NET Web Forms markup in a single forward pass.
//
// The parser recognizes HTML-like elements and their quoted attributes,
// <% %> code blocks, <%@ %> directives, <%= %>, <%: %> and <%$ %> output
// elements, server-side <%-- --%> comments, client-side <!-- --> comments,
// and <script> bodies. Every recognized construct is reported to a Handler
// together with a BlockSpan locating it in the input by line, column and
// absolute character offset.
//
// The parser never fails. Malformed or unterminated constructs are skipped
// without producing events.
package aspx
