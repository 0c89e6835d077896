package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// A bracket expression is lexed as a single Class token so the grammar never
// has to track whether it is inside [...].
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Class", Pattern: `\[\^?\]?(?:\\(?s:.)|\[:\^?[a-z]+:\]|[^\]\\])*\]`},
	{Name: "Backref", Pattern: `\\[1-9][0-9]*`},
	{Name: "Anchor", Pattern: `\\[AzZbBGK]|\^|\$`},
	{Name: "CharType", Pattern: `\\[dDwWsShH]|\.`},
	{Name: "Escape", Pattern: `\\(?:x[0-9A-Fa-f]{2}|0[0-7]{0,2}|c[A-Za-z]|(?s:.))`},
	{Name: "GroupOpen", Pattern: `\((?:\?(?:[:=!>]|<[=!]|[imx]*(?:-[imx]+)?:))?`},
	{Name: "GroupClose", Pattern: `\)`},
	{Name: "Brace", Pattern: `\{(?:[0-9]+(?:,[0-9]*)?|,[0-9]+)\}`},
	{Name: "Op", Pattern: `[*+?|]`},
	{Name: "Char", Pattern: `(?s:.)`},
})

// Alternation bars are kept as items of a flat list and split afterwards,
// which keeps empty branches ("a|", "(|b)") out of the grammar.
type regex struct {
	Items []*item `parser:"@@*"`
}

type item struct {
	Bar   bool   `parser:"  @'|'"`
	Piece *piece `parser:"| @@"`
}

type piece struct {
	Atom  *atom       `parser:"@@"`
	Quant *quantifier `parser:"@@?"`
}

type atom struct {
	Group    *group  `parser:"  @@"`
	Class    *string `parser:"| @Class"`
	Backref  *string `parser:"| @Backref"`
	Anchor   *string `parser:"| @Anchor"`
	CharType *string `parser:"| @CharType"`
	Escape   *string `parser:"| @Escape"`
	Char     *string `parser:"| @Char"`
}

type group struct {
	Open  string  `parser:"@GroupOpen"`
	Items []*item `parser:"@@* GroupClose"`
}

type quantifier struct {
	Op   string `parser:"( @('*' | '+' | '?') | @Brace )"`
	Mode string `parser:"@('?' | '+')?"`
}

var parser = participle.MustBuild[regex](participle.Lexer(patternLexer))
