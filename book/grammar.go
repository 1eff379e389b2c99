// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package book

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var bookLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?://|#)[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[!&|^=;,(){}\[\]]`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(bookLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// File is a parsed component book.
//
type File struct {
	Gates []*GateDef `@@*`
}

// GateDef is a gate definition:
//
//	gate NAME (inputs) -> (outputs) { assignments }
//
type GateDef struct {
	Pos lexer.Position

	Name    string     `"gate" @Ident`
	Inputs  []*PinDecl `"(" ( @@ ( "," @@ )* )? ")"`
	Outputs []*PinDecl `"->" "(" @@ ( "," @@ )* ")"`
	Body    []*Assign  `"{" @@* "}"`
}

// PinDecl declares a single pin, or a bus of Width pins when Width is set.
//
type PinDecl struct {
	Pos lexer.Position

	Name  string `@Ident`
	Width *int   `( "[" @Int "]" )?`
}

// Assign sets an output pin.
//
type Assign struct {
	Pos lexer.Position

	Dest *Ref  `@@ "="`
	Expr *Expr `@@ ";"`
}

// Ref references a pin or a bit of a bus.
//
type Ref struct {
	Pos lexer.Position

	Name string `@Ident`
	Bit  *int   `( "[" @Int "]" )?`
}

// Expr is an OR of XOR terms. Operator precedence, from lowest to highest, is
// |, ^, & and !.
//
type Expr struct {
	Left  *XorExpr   `@@`
	Right []*XorExpr `( "|" @@ )*`
}

// XorExpr is a XOR of AND terms.
type XorExpr struct {
	Left  *AndExpr   `@@`
	Right []*AndExpr `( "^" @@ )*`
}

// AndExpr is an AND of unary terms.
type AndExpr struct {
	Left  *Unary   `@@`
	Right []*Unary `( "&" @@ )*`
}

// Unary is an optionally negated primary.
type Unary struct {
	Not     *Unary   `  "!" @@`
	Primary *Primary `| @@`
}

// Primary is a constant, a pin reference or a parenthesized expression.
type Primary struct {
	Pos lexer.Position

	Const *int  `  @Int`
	Ref   *Ref  `| @@`
	Sub   *Expr `| "(" @@ ")"`
}
