package ast

import (
	"bytes"

	"github.com/ion-lang/ionc/internal/source"
)

// Param is one function parameter.
type Param struct {
	Name *Identifier
	Type TypeExpression
}

func (p Param) String() string {
	return p.Name.Value + ": " + p.Type.String()
}

// FunctionDecl declares a function, method or trait-method signature.
// Body is nil for a trait-declared method with no default implementation.
type FunctionDecl struct {
	Position source.Position
	Name *Identifier
	Params []Param
	Return TypeExpression // nil means unit/void
	Pure bool // false if the body may touch storage ( purity)
	Body *BlockStatement
}

func (f *FunctionDecl) declNode() {}
func (f *FunctionDecl) statementNode() {}
func (f *FunctionDecl) TokenLiteral() string { return "fn" }
func (f *FunctionDecl) Pos() source.Position { return f.Position }
func (f *FunctionDecl) String() string {
	var out bytes.Buffer
	if f.Pure {
		out.WriteString("pure ")
	}
	out.WriteString("fn ")
	out.WriteString(f.Name.Value)
	out.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteByte(')')
	if f.Return != nil {
		out.WriteString(" -> ")
		out.WriteString(f.Return.String())
	}
	if f.Body != nil {
		out.WriteString(" ")
		out.WriteString(f.Body.String())
	} else {
		out.WriteString(";")
	}
	return out.String()
}

// StructDecl declares a struct type and its fields.
type StructDecl struct {
	Position source.Position
	Name *Identifier
	TypeParams []*Identifier
	Fields []Param
}

func (s *StructDecl) declNode() {}
func (s *StructDecl) statementNode() {}
func (s *StructDecl) TokenLiteral() string { return "struct" }
func (s *StructDecl) Pos() source.Position { return s.Position }
func (s *StructDecl) String() string {
	var out bytes.Buffer
	out.WriteString("struct ")
	out.WriteString(s.Name.Value)
	writeTypeParams(&out, s.TypeParams)
	out.WriteString(" {\n")
	for _, f := range s.Fields {
		out.WriteString(" ")
		out.WriteString(f.String())
		out.WriteString(",\n")
	}
	out.WriteString("}")
	return out.String()
}

// EnumVariant is one variant of an enum declaration; Type is nil for a
// unit variant.
type EnumVariant struct {
	Name *Identifier
	Type TypeExpression
}

// EnumDecl declares an enum type and its variants.
type EnumDecl struct {
	Position source.Position
	Name *Identifier
	TypeParams []*Identifier
	Variants []EnumVariant
}

func (e *EnumDecl) declNode() {}
func (e *EnumDecl) statementNode() {}
func (e *EnumDecl) TokenLiteral() string { return "enum" }
func (e *EnumDecl) Pos() source.Position { return e.Position }
func (e *EnumDecl) String() string {
	var out bytes.Buffer
	out.WriteString("enum ")
	out.WriteString(e.Name.Value)
	writeTypeParams(&out, e.TypeParams)
	out.WriteString(" {\n")
	for _, v := range e.Variants {
		out.WriteString(" ")
		out.WriteString(v.Name.Value)
		if v.Type != nil {
			out.WriteString(": ")
			out.WriteString(v.Type.String())
		}
		out.WriteString(",\n")
	}
	out.WriteString("}")
	return out.String()
}

// TraitDecl declares a trait: a set of method signatures plus optional
// supertraits.
type TraitDecl struct {
	Position source.Position
	Name *Identifier
	Supertraits []*Identifier
	Methods []*FunctionDecl
}

func (t *TraitDecl) declNode() {}
func (t *TraitDecl) statementNode() {}
func (t *TraitDecl) TokenLiteral() string { return "trait" }
func (t *TraitDecl) Pos() source.Position { return t.Position }
func (t *TraitDecl) String() string {
	var out bytes.Buffer
	out.WriteString("trait ")
	out.WriteString(t.Name.Value)
	if len(t.Supertraits) > 0 {
		out.WriteString(": ")
		for i, s := range t.Supertraits {
			if i > 0 {
				out.WriteString(" + ")
			}
			out.WriteString(s.Value)
		}
	}
	out.WriteString(" {\n")
	for _, m := range t.Methods {
		out.WriteString(" ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ImplDecl declares `impl Trait for Type { ... }`, or an inherent
// `impl Type { ... }` when Trait is nil.
type ImplDecl struct {
	Position source.Position
	Trait *Identifier // nil for an inherent impl
	ForType TypeExpression
	Methods []*FunctionDecl
}

func (i *ImplDecl) declNode() {}
func (i *ImplDecl) statementNode() {}
func (i *ImplDecl) TokenLiteral() string { return "impl" }
func (i *ImplDecl) Pos() source.Position { return i.Position }
func (i *ImplDecl) String() string {
	var out bytes.Buffer
	out.WriteString("impl ")
	if i.Trait != nil {
		out.WriteString(i.Trait.Value)
		out.WriteString(" for ")
	}
	out.WriteString(i.ForType.String())
	out.WriteString(" {\n")
	for _, m := range i.Methods {
		out.WriteString(" ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// AbiDecl declares a contract ABI interface: the method signatures a
// contract must implement and expose as entry points.
type AbiDecl struct {
	Position source.Position
	Name *Identifier
	Methods []*FunctionDecl
}

func (a *AbiDecl) declNode() {}
func (a *AbiDecl) statementNode() {}
func (a *AbiDecl) TokenLiteral() string { return "abi" }
func (a *AbiDecl) Pos() source.Position { return a.Position }
func (a *AbiDecl) String() string {
	var out bytes.Buffer
	out.WriteString("abi ")
	out.WriteString(a.Name.Value)
	out.WriteString(" {\n")
	for _, m := range a.Methods {
		out.WriteString(" ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ConstDecl declares a top-level constant.
type ConstDecl struct {
	Position source.Position
	Name *Identifier
	Type TypeExpression
	Value Expression
}

func (c *ConstDecl) declNode() {}
func (c *ConstDecl) statementNode() {}
func (c *ConstDecl) TokenLiteral() string { return "const" }
func (c *ConstDecl) Pos() source.Position { return c.Position }
func (c *ConstDecl) String() string {
	var out bytes.Buffer
	out.WriteString("const ")
	out.WriteString(c.Name.Value)
	out.WriteString(": ")
	out.WriteString(c.Type.String())
	out.WriteString(" = ")
	out.WriteString(c.Value.String())
	out.WriteString(";")
	return out.String()
}

// AliasDecl declares a type alias.
type AliasDecl struct {
	Position source.Position
	Name *Identifier
	Target TypeExpression
}

func (a *AliasDecl) declNode() {}
func (a *AliasDecl) statementNode() {}
func (a *AliasDecl) TokenLiteral() string { return "type" }
func (a *AliasDecl) Pos() source.Position { return a.Position }
func (a *AliasDecl) String() string {
	return "type " + a.Name.Value + " = " + a.Target.String() + ";"
}

func writeTypeParams(out *bytes.Buffer, params []*Identifier) {
	if len(params) == 0 {
		return
	}
	out.WriteByte('<')
	for i, p := range params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.Value)
	}
	out.WriteByte('>')
}
