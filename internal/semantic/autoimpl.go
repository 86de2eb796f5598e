package semantic

import (
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/declengine"
)

// autoImplSynthesized records one auto-generated impl method, so later
// passes (IR lowering) can tell a synthesized body apart from one the
// source actually wrote — tracked here as a side table rather than a
// tagged AST span, since the synthesized bodies never re-enter the parser.
type autoImplSynthesized struct {
	StructName string
	TraitName string
	Method string
}

// autoImpl marks the structs that need an ABI-encoding impl the source did
// not write: every struct named in an ABI method's parameter or return
// type gets ImplementsAbi set and one synthesized entry (AbiEncode trait,
// abi_encode method) recorded. No method body is generated here.
func (a *Analyzer) autoImpl(prog *ast.Program) {
	abiTouchedStructs := map[string]bool{}
	for _, d := range prog.Decls {
		abiDecl, ok := d.(*ast.AbiDecl)
		if !ok {
			continue
		}
		for _, m := range abiDecl.Methods {
			for _, p := range m.Params {
				markStructNames(p.Type, abiTouchedStructs)
			}
			if m.Return != nil {
				markStructNames(m.Return, abiTouchedStructs)
			}
		}
	}

	for name := range abiTouchedStructs {
		refs := a.decls.Lookup(name)
		for _, ref := range refs {
			if ref.Category != declengine.CategoryStruct {
				continue
			}
			decl, ok := a.decls.Struct(ref)
			if !ok {
				continue
			}
			decl.ImplementsAbi = true
			a.decls.ResolveStruct(ref, decl)
			a.synthesized = append(a.synthesized, autoImplSynthesized{StructName: name, TraitName: "AbiEncode", Method: "abi_encode"})
		}
	}
}

func markStructNames(t ast.TypeExpression, out map[string]bool) {
	switch n := t.(type) {
	case *ast.NamedTypeExpr:
		out[n.Name] = true
		for _, a := range n.Args {
			markStructNames(a, out)
		}
	case *ast.ArrayTypeExpr:
		markStructNames(n.Elem, out)
	case *ast.TupleTypeExpr:
		for _, e := range n.Elems {
			markStructNames(e, out)
		}
	case *ast.RefTypeExpr:
		markStructNames(n.Inner, out)
	}
}
