package netlist

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ModelDirective opens a section in the vendor library.
const ModelDirective = ".model"

// Declaration is a parsed binned model line:
//
//	.model sky130_fd_pr__nfet_01v8__model.0 nmos (
type Declaration struct {
	Directive string   `parser:"@Directive"`
	Prefix    string   `parser:"@Ident"`
	Bin       int      `parser:"\".\" @Int"`
	Kind      string   `parser:"@Ident"`
	Open      bool     `parser:"@\"(\"?"`
	Rest      []string `parser:"@( Ident | Int | Punct | Other )*"`
}

// Name is "<prefix>.<bin>".
func (d Declaration) Name() string {
	return fmt.Sprintf("%s.%d", d.Prefix, d.Bin)
}

// Matches reports whether d declares bin of the given prefix and kind.
func (d Declaration) Matches(prefix, kind string, bin int) bool {
	return d.MatchesFamily(prefix, kind) && d.Bin == bin
}

// MatchesFamily ignores the bin number.
func (d Declaration) MatchesFamily(prefix, kind string) bool {
	return strings.EqualFold(d.Directive, ModelDirective) &&
		d.Prefix == prefix &&
		strings.EqualFold(d.Kind, kind)
}

var declLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Directive", Pattern: `\.[A-Za-z]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[.()]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Other", Pattern: `[^ \t\r.()]+`},
})

var declParser = participle.MustBuild[Declaration](
	participle.Lexer(declLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// IsDeclaration reports whether the first field of line is the .model
// directive. Such lines close any open section even when they do not parse
// as a binned declaration.
func IsDeclaration(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && strings.EqualFold(fields[0], ModelDirective)
}

// ParseDeclaration parses a binned .model line.
func ParseDeclaration(line string) (Declaration, error) {
	decl, err := declParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return Declaration{}, fmt.Errorf("netlist: invalid declaration %q: %w", line, err)
	}
	return *decl, nil
}
