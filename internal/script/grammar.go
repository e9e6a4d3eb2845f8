// Package script implements a small textual front-end over the
// neopath builder: one MATCH/CONNECTED/TO/BY/WITH/WHERE call per line.
// It exists so the CLI and the HTTP compile service can share exactly
// one interpreter instead of each reimplementing line parsing.
package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var stmtLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(MATCH|CONNECTED|TO|BY|WITH|AS|HOPS)\b`},
	{Name: "DotDot", Pattern: `\.\.`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Statement is one non-WHERE line: a single Match/ConnectedThrough/
// To/By/With call. WHERE lines are handled separately, as a raw
// fragment, before reaching this grammar.
type Statement struct {
	Match     *LabeledStmt   `parser:"  \"MATCH\" @@"`
	Connected *ConnectedStmt `parser:"| \"CONNECTED\" @@"`
	To        *LabeledStmt   `parser:"| \"TO\" @@"`
	By        *LabeledStmt   `parser:"| \"BY\" @@"`
	With      *LabeledStmt   `parser:"| \"WITH\" @@"`
}

// LabeledStmt: <label> [AS <var>].
type LabeledStmt struct {
	Label string  `parser:"@Ident"`
	Var   *string `parser:"( \"AS\" @Ident )?"`
}

// ConnectedStmt: <label> [HOPS <hops>] [AS <var>].
type ConnectedStmt struct {
	Label string      `parser:"@Ident"`
	Hops  *HopsClause `parser:"( \"HOPS\" @@ )?"`
	Var   *string     `parser:"( \"AS\" @Ident )?"`
}

// HopsClause: [<min>]..[<max>].
type HopsClause struct {
	Min *int `parser:"@Int?"`
	Max *int `parser:"\"..\" @Int?"`
}

var stmtParser = participle.MustBuild[Statement](
	participle.Lexer(stmtLexer),
	participle.Unquote(),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
)

func parseStatement(line string) (*Statement, error) {
	return stmtParser.ParseString("", line)
}
