package ast

import (
	"bytes"
	"strconv"

	"github.com/ion-lang/ionc/internal/source"
)

// IntegerLiteral is an un-suffixed or suffixed integer literal; its
// un-annotated type is Numeric until the analyzer defaults or constrains
// it ( numeric defaulting).
type IntegerLiteral struct {
	Position source.Position
	Value uint64
}

func (i *IntegerLiteral) expressionNode() {}
func (i *IntegerLiteral) TokenLiteral() string { return strconv.FormatUint(i.Value, 10) }
func (i *IntegerLiteral) Pos() source.Position { return i.Position }
func (i *IntegerLiteral) String() string { return strconv.FormatUint(i.Value, 10) }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Position source.Position
	Value bool
}

func (b *BoolLiteral) expressionNode() {}
func (b *BoolLiteral) TokenLiteral() string { return strconv.FormatBool(b.Value) }
func (b *BoolLiteral) Pos() source.Position { return b.Position }
func (b *BoolLiteral) String() string { return strconv.FormatBool(b.Value) }

// StringLiteral is a `str` literal.
type StringLiteral struct {
	Position source.Position
	Value string
}

func (s *StringLiteral) expressionNode() {}
func (s *StringLiteral) TokenLiteral() string { return s.Value }
func (s *StringLiteral) Pos() source.Position { return s.Position }
func (s *StringLiteral) String() string { return "\"" + s.Value + "\"" }

// BinaryExpression is a binary operator application.
type BinaryExpression struct {
	Position source.Position
	Left Expression
	Operator string
	Right Expression
}

func (b *BinaryExpression) expressionNode() {}
func (b *BinaryExpression) TokenLiteral() string { return b.Operator }
func (b *BinaryExpression) Pos() source.Position { return b.Position }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteByte('(')
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteByte(')')
	return out.String()
}

// UnaryExpression is a unary operator application.
type UnaryExpression struct {
	Position source.Position
	Operator string
	Right Expression
}

func (u *UnaryExpression) expressionNode() {}
func (u *UnaryExpression) TokenLiteral() string { return u.Operator }
func (u *UnaryExpression) Pos() source.Position { return u.Position }
func (u *UnaryExpression) String() string {
	return "(" + u.Operator + u.Right.String() + ")"
}

// CallExpression calls a free function or an already-resolved method
// value: `callee(args...)`.
type CallExpression struct {
	Position source.Position
	Callee Expression
	Args []Expression
}

func (c *CallExpression) expressionNode() {}
func (c *CallExpression) TokenLiteral() string { return "(" }
func (c *CallExpression) Pos() source.Position { return c.Position }
func (c *CallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(c.Callee.String())
	out.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteByte(')')
	return out.String()
}

// MethodCallExpression calls a method through trait/inherent-impl
// resolution: `receiver.method(args...)`.
type MethodCallExpression struct {
	Position source.Position
	Receiver Expression
	Method string
	Args []Expression
}

func (m *MethodCallExpression) expressionNode() {}
func (m *MethodCallExpression) TokenLiteral() string { return m.Method }
func (m *MethodCallExpression) Pos() source.Position { return m.Position }
func (m *MethodCallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(m.Receiver.String())
	out.WriteByte('.')
	out.WriteString(m.Method)
	out.WriteByte('(')
	for i, a := range m.Args {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteByte(')')
	return out.String()
}

// FieldAccessExpression reads a struct field: `receiver.field`.
type FieldAccessExpression struct {
	Position source.Position
	Receiver Expression
	Field string
}

func (f *FieldAccessExpression) expressionNode() {}
func (f *FieldAccessExpression) TokenLiteral() string { return f.Field }
func (f *FieldAccessExpression) Pos() source.Position { return f.Position }
func (f *FieldAccessExpression) String() string {
	return f.Receiver.String() + "." + f.Field
}

// StructLiteralField is one field initializer in a StructLiteral.
type StructLiteralField struct {
	Name string
	Value Expression
}

// StructLiteral constructs a struct value: `Name { field: value, ... }`.
type StructLiteral struct {
	Position source.Position
	Name string
	Fields []StructLiteralField
}

func (s *StructLiteral) expressionNode() {}
func (s *StructLiteral) TokenLiteral() string { return s.Name }
func (s *StructLiteral) Pos() source.Position { return s.Position }
func (s *StructLiteral) String() string {
	var out bytes.Buffer
	out.WriteString(s.Name)
	out.WriteString(" { ")
	for i, f := range s.Fields {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(f.Name)
		out.WriteString(": ")
		out.WriteString(f.Value.String())
	}
	out.WriteString(" }")
	return out.String()
}

// TupleExpression is a tuple constructor `(e1, e2, ...)`.
type TupleExpression struct {
	Position source.Position
	Elems []Expression
}

func (t *TupleExpression) expressionNode() {}
func (t *TupleExpression) TokenLiteral() string { return "(" }
func (t *TupleExpression) Pos() source.Position { return t.Position }
func (t *TupleExpression) String() string {
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

// ArrayExpression is a fixed-length array constructor `[e1, e2, ...]`.
type ArrayExpression struct {
	Position source.Position
	Elems []Expression
}

func (a *ArrayExpression) expressionNode() {}
func (a *ArrayExpression) TokenLiteral() string { return "[" }
func (a *ArrayExpression) Pos() source.Position { return a.Position }
func (a *ArrayExpression) String() string {
	var out bytes.Buffer
	out.WriteByte('[')
	for i, e := range a.Elems {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.String())
	}
	out.WriteByte(']')
	return out.String()
}

// IndexExpression indexes into an array/slice: `receiver[index]`.
type IndexExpression struct {
	Position source.Position
	Receiver Expression
	Index Expression
}

func (e *IndexExpression) expressionNode() {}
func (e *IndexExpression) TokenLiteral() string { return "[" }
func (e *IndexExpression) Pos() source.Position { return e.Position }
func (e *IndexExpression) String() string {
	return e.Receiver.String() + "[" + e.Index.String() + "]"
}
