// Package ast defines the input Abstract Syntax Tree node types this
// compiler consumes. Parsing is out of scope ; production code
// and tests build these nodes directly, the same way
// internal/bytecode/compiler_test.go builds DWScript ast.Program values by
// hand without invoking a parser.
//
// Grounded on internal/ast/ast.go and declarations.go: the Node interface
// shape, buffer-based String printers and expressionNode/
// statementNode marker methods are kept; the object-Pascal class/
// interface/record vocabulary is replaced with this language's struct/
// enum/trait/impl/abi vocabulary.
package ast

import (
	"bytes"

	"github.com/ion-lang/ionc/internal/source"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() source.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Decl is any top-level declaration.
type Decl interface {
	Node
	declNode()
}

// ProgramKind is the program kind a Module declares.
type ProgramKind int

const (
	KindScript ProgramKind = iota
	KindPredicate
	KindContract
	KindLibrary
)

func (k ProgramKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindPredicate:
		return "predicate"
	case KindContract:
		return "contract"
	case KindLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// Program is the root node of the AST: one source module's program-kind
// declaration plus its top-level items.
type Program struct {
	Token source.Position
	Kind ProgramKind
	Name string
	Decls []Decl
}

func (p *Program) TokenLiteral() string { return p.Kind.String() }
func (p *Program) Pos() source.Position { return p.Token }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString(p.Kind.String())
	out.WriteString(" ")
	out.WriteString(p.Name)
	out.WriteString(";\n")
	for _, d := range p.Decls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier names a variable, parameter or field.
type Identifier struct {
	Position source.Position
	Value string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) TokenLiteral() string { return i.Value }
func (i *Identifier) String() string { return i.Value }
func (i *Identifier) Pos() source.Position { return i.Position }
