package bsdl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenises the VHDL subset used by BSDL files. Keywords are
// case-insensitive and must precede Ident.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},

	{Name: "KwEntity", Pattern: `(?i)\bentity\b`},
	{Name: "KwIs", Pattern: `(?i)\bis\b`},
	{Name: "KwEnd", Pattern: `(?i)\bend\b`},
	{Name: "KwGeneric", Pattern: `(?i)\bgeneric\b`},
	{Name: "KwPort", Pattern: `(?i)\bport\b`},
	{Name: "KwUse", Pattern: `(?i)\buse\b`},
	{Name: "KwAll", Pattern: `(?i)\ball\b`},
	{Name: "KwAttribute", Pattern: `(?i)\battribute\b`},
	{Name: "KwOf", Pattern: `(?i)\bof\b`},
	{Name: "KwConstant", Pattern: `(?i)\bconstant\b`},
	{Name: "KwSignal", Pattern: `(?i)\bsignal\b`},

	// Port modes. inout must be tried before in.
	{Name: "KwInout", Pattern: `(?i)\binout\b`},
	{Name: "KwIn", Pattern: `(?i)\bin\b`},
	{Name: "KwOut", Pattern: `(?i)\bout\b`},
	{Name: "KwBuffer", Pattern: `(?i)\bbuffer\b`},
	{Name: "KwLinkage", Pattern: `(?i)\blinkage\b`},

	{Name: "KwBitVector", Pattern: `(?i)\bbit_vector\b`},
	{Name: "KwBit", Pattern: `(?i)\bbit\b`},
	{Name: "KwTrue", Pattern: `(?i)\btrue\b`},
	{Name: "KwFalse", Pattern: `(?i)\bfalse\b`},

	{Name: "Assign", Pattern: `:=`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Concat", Pattern: `&`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Real", Pattern: `[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Asterisk", Pattern: `\*`},
})
