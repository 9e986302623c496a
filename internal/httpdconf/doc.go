// Package httpdconf parses Apache-style site configuration files.
//
// The package understands exactly one block grammar: top-level
// <VirtualHost ...> blocks containing directive lines, comments, line
// continuations, and nested sub-blocks of other names (FilesMatch,
// Directory, ...). It is not a general configuration-language parser.
//
// Extraction works on byte offsets rather than greedy regular expressions
// so that one block's closing tag can never match across an unrelated
// later block, and so callers can splice blocks out of the original file
// text without disturbing surrounding bytes.
//
// Directive lookup is deliberately permissive: directives found inside
// nested sub-blocks are merged into the same map as top-level directives,
// matching how the server resolves most per-host settings.
package httpdconf
