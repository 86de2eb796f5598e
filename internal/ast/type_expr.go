package ast

import (
	"bytes"
	"strconv"

	"github.com/ion-lang/ionc/internal/source"
)

// TypeExpression is the syntactic (unresolved) spelling of a type
// annotation, before the type system resolves it to a *types.TypeInfo.
// Kept distinct from types.TypeInfo (typed AST nodes wrap
// a resolved TypeInfo alongside the syntactic TypeExpression the source
// actually wrote).
type TypeExpression interface {
	Node
	typeExprNode()
}

// NamedTypeExpr spells a primitive or nominal type by name, with optional
// generic arguments (e.g. `Option<u64>`).
type NamedTypeExpr struct {
	Position source.Position
	Name string
	Args []TypeExpression
}

func (t *NamedTypeExpr) typeExprNode() {}
func (t *NamedTypeExpr) TokenLiteral() string { return t.Name }
func (t *NamedTypeExpr) Pos() source.Position { return t.Position }
func (t *NamedTypeExpr) String() string {
	var out bytes.Buffer
	out.WriteString(t.Name)
	if len(t.Args) > 0 {
		out.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(a.String())
		}
		out.WriteByte('>')
	}
	return out.String()
}

// ArrayTypeExpr spells a fixed-length array type `[T; N]`.
type ArrayTypeExpr struct {
	Position source.Position
	Elem TypeExpression
	Length int
}

func (t *ArrayTypeExpr) typeExprNode() {}
func (t *ArrayTypeExpr) TokenLiteral() string { return "[" }
func (t *ArrayTypeExpr) Pos() source.Position { return t.Position }
func (t *ArrayTypeExpr) String() string {
	var out bytes.Buffer
	out.WriteByte('[')
	out.WriteString(t.Elem.String())
	out.WriteString("; ")
	out.WriteString(strconv.Itoa(t.Length))
	out.WriteByte(']')
	return out.String()
}

// TupleTypeExpr spells a tuple type `(T1, T2, ...)`.
type TupleTypeExpr struct {
	Position source.Position
	Elems []TypeExpression
}

func (t *TupleTypeExpr) typeExprNode() {}
func (t *TupleTypeExpr) TokenLiteral() string { return "(" }
func (t *TupleTypeExpr) Pos() source.Position { return t.Position }
func (t *TupleTypeExpr) String() string {
	var out bytes.Buffer
	out.WriteByte('(')
	for i, e := range t.Elems {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.String())
	}
	out.WriteByte(')')
	return out.String()
}

// RefTypeExpr spells a reference type `&T` / `&mut T`.
type RefTypeExpr struct {
	Position source.Position
	Mutable bool
	Inner TypeExpression
}

func (t *RefTypeExpr) typeExprNode() {}
func (t *RefTypeExpr) TokenLiteral() string { return "&" }
func (t *RefTypeExpr) Pos() source.Position { return t.Position }
func (t *RefTypeExpr) String() string {
	if t.Mutable {
		return "&mut " + t.Inner.String()
	}
	return "&" + t.Inner.String()
}
