package bsdl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes BSDL (a VHDL subset). Keywords are case-insensitive and
// must precede Ident.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},

	{Name: "KwEntity", Pattern: `(?i)\bENTITY\b`},
	{Name: "KwIs", Pattern: `(?i)\bIS\b`},
	{Name: "KwEnd", Pattern: `(?i)\bEND\b`},
	{Name: "KwGeneric", Pattern: `(?i)\bGENERIC\b`},
	{Name: "KwPort", Pattern: `(?i)\bPORT\b`},
	{Name: "KwUse", Pattern: `(?i)\bUSE\b`},
	{Name: "KwAll", Pattern: `(?i)\bALL\b`},
	{Name: "KwAttribute", Pattern: `(?i)\bATTRIBUTE\b`},
	{Name: "KwOf", Pattern: `(?i)\bOF\b`},
	{Name: "KwConstant", Pattern: `(?i)\bCONSTANT\b`},

	{Name: "KwMode", Pattern: `(?i)\b(?:INOUT|IN|OUT|BUFFER|LINKAGE)\b`},
	{Name: "KwBitVector", Pattern: `(?i)\bBIT_VECTOR\b`},
	{Name: "KwBit", Pattern: `(?i)\bBIT\b`},
	{Name: "KwBool", Pattern: `(?i)\b(?:TRUE|FALSE)\b`},

	{Name: "Assign", Pattern: `:=`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Concat", Pattern: `&`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Real", Pattern: `[-+]?[0-9]+\.[0-9]+(?:[eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Asterisk", Pattern: `\*`},
})
