package ast

import (
	"testing"

	"github.com/ion-lang/ionc/internal/source"
)

func TestProgramString(t *testing.T) {
	prog := &Program{
		Kind: KindScript,
		Name: "demo",
		Decls: []Decl{
			&FunctionDecl{
				Name:   &Identifier{Value: "main"},
				Return: &NamedTypeExpr{Name: "u64"},
				Body: &BlockStatement{
					Statements: []Statement{
						&ReturnStatement{Value: &IntegerLiteral{Value: 42}},
					},
				},
			},
		},
	}

	out := prog.String()
	if out == "" {
		t.Fatal("expected non-empty program text")
	}
}

func TestLetStatementString(t *testing.T) {
	stmt := &LetStatement{
		Mutable: true,
		Name:    &Identifier{Value: "x"},
		Type:    &NamedTypeExpr{Name: "u64"},
		Value:   &IntegerLiteral{Value: 7},
	}
	want := "let mut x: u64 = 7;"
	if got := stmt.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBinaryExpressionString(t *testing.T) {
	expr := &BinaryExpression{
		Left:     &Identifier{Value: "a"},
		Operator: "+",
		Right:    &IntegerLiteral{Value: 1},
	}
	want := "(a + 1)"
	if got := expr.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSpanPosition(t *testing.T) {
	pos := source.Position{Line: 3, Column: 5}
	ident := &Identifier{Position: pos, Value: "y"}
	if ident.Pos() != pos {
		t.Fatalf("expected Pos() to return the stored position")
	}
}
