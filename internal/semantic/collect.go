package semantic

import (
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/declengine"
	"github.com/ion-lang/ionc/internal/diagnostics"
	"github.com/ion-lang/ionc/internal/source"
	"github.com/ion-lang/ionc/internal/types"
)

// collect is the collection pass: it reserves a DeclRef for every
// top-level struct up front, then walks the items in source order, filling
// in each struct's reservation and declaring enums, traits, abis,
// functions, constants, aliases and impls as it reaches them. Only struct
// names resolve regardless of declaration order: a type name that refers
// to an enum, trait or alias declared later in the program is reported as
// unresolved.
func (a *Analyzer) collect(prog *ast.Program) {
	forwards := make(map[string]declengine.DeclRef, len(prog.Decls))

	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			forwards[decl.Name.Value] = a.decls.ReserveStruct(decl.Name.Value, spanOf(decl))
		}
	}

	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			fields := make([]declengine.StructField, 0, len(decl.Fields))
			for _, f := range decl.Fields {
				fields = append(fields, declengine.StructField{
					Name: f.Name.Value,
					Type: a.resolveTypeExpr(f.Type),
				})
			}
			ref := forwards[decl.Name.Value]
			a.decls.ResolveStruct(ref, declengine.StructDecl{Name: decl.Name.Value, Fields: fields})

		case *ast.EnumDecl:
			variants := make([]declengine.EnumVariant, 0, len(decl.Variants))
			for _, v := range decl.Variants {
				var vt *types.TypeInfo
				if v.Type != nil {
					vt = a.resolveTypeExpr(v.Type)
				}
				variants = append(variants, declengine.EnumVariant{Name: v.Name.Value, Type: vt})
			}
			a.decls.DeclareEnum(decl.Name.Value, spanOf(decl), declengine.EnumDecl{Name: decl.Name.Value, Variants: variants})

		case *ast.TraitDecl:
			methods := make([]declengine.FunctionDecl, 0, len(decl.Methods))
			for _, m := range decl.Methods {
				methods = append(methods, a.declFromFunctionAST(m))
			}
			a.decls.DeclareTrait(decl.Name.Value, spanOf(decl), declengine.TraitDecl{Name: decl.Name.Value, Methods: methods})

		case *ast.AbiDecl:
			methods := make([]declengine.FunctionDecl, 0, len(decl.Methods))
			for _, m := range decl.Methods {
				methods = append(methods, a.declFromFunctionAST(m))
			}
			a.decls.DeclareAbi(decl.Name.Value, spanOf(decl), declengine.AbiDecl{Name: decl.Name.Value, Methods: methods})

		case *ast.FunctionDecl:
			fd := a.declFromFunctionAST(decl)
			ref := a.decls.DeclareFunction(decl.Name.Value, spanOf(decl), fd)
			a.root.define(decl.Name.Value, symbol{kind: symItemConstant, typ: types.UInt(64), ref: ref})

		case *ast.ConstDecl:
			ct := a.resolveTypeExpr(decl.Type)
			ref := a.decls.DeclareConstant(decl.Name.Value, spanOf(decl), declengine.ConstantDecl{Name: decl.Name.Value, Type: ct})
			if ok := a.root.define(decl.Name.Value, symbol{kind: symItemConstant, typ: ct, ref: ref}); !ok {
				a.diags.Errorf(diagnostics.CodeNameResolution, spanOf(decl), "constant %q redeclared", decl.Name.Value)
			}

		case *ast.AliasDecl:
			a.decls.DeclareAlias(decl.Name.Value, spanOf(decl), declengine.AliasDecl{Name: decl.Name.Value, Target: a.resolveTypeExpr(decl.Target)})

		case *ast.ImplDecl:
			forType := a.resolveTypeExpr(decl.ForType)
			traitName := ""
			if decl.Trait != nil {
				traitName = decl.Trait.Value
			}
			a.decls.DeclareImpl(spanOf(decl), declengine.ImplDecl{TraitName: traitName, ForType: forType})
		}
	}
}

func (a *Analyzer) declFromFunctionAST(f *ast.FunctionDecl) declengine.FunctionDecl {
	params := make([]*types.TypeInfo, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, a.resolveTypeExpr(p.Type))
	}
	var ret *types.TypeInfo
	if f.Return != nil {
		ret = a.resolveTypeExpr(f.Return)
	}
	return declengine.FunctionDecl{Name: f.Name.Value, Params: params, Return: ret, Pure: f.Pure}
}

// resolveTypeExpr turns the syntactic TypeExpression into a *types.TypeInfo.
// Nominal names are resolved against already-collected declarations; an
// unresolved nominal name produces types.ErrorRecovery plus a
// name-resolution diagnostic rather than aborting the whole pass, per
// recoverable-error policy.
func (a *Analyzer) resolveTypeExpr(expr ast.TypeExpression) *types.TypeInfo {
	switch t := expr.(type) {
	case nil:
		return types.Unknown()
	case *ast.NamedTypeExpr:
		return a.resolveNamedType(t)
	case *ast.ArrayTypeExpr:
		return types.ArrayOf(a.resolveTypeExpr(t.Elem), t.Length)
	case *ast.TupleTypeExpr:
		elems := make([]*types.TypeInfo, 0, len(t.Elems))
		for _, e := range t.Elems {
			elems = append(elems, a.resolveTypeExpr(e))
		}
		return types.TupleOf(elems...)
	case *ast.RefTypeExpr:
		return types.RefOf(a.resolveTypeExpr(t.Inner), t.Mutable)
	default:
		return types.ErrorRecovery()
	}
}

func (a *Analyzer) resolveNamedType(t *ast.NamedTypeExpr) *types.TypeInfo {
	switch t.Name {
	case "bool":
		return types.Boolean()
	case "b256":
		return types.B256()
	case "str":
		return types.StringSlice()
	case "raw_ptr":
		return types.RawUntypedPtr()
	case "raw_slice":
		return types.RawUntypedSlice()
	}
	if bits, ok := uintBits(t.Name); ok {
		return types.UInt(bits)
	}

	refs := a.decls.Lookup(t.Name)
	for _, ref := range refs {
		switch ref.Category {
		case declengine.CategoryStruct:
			subst := a.resolveArgs(t.Args)
			return a.mono.Monomorphize(ref.DeclID, subst, func() *types.TypeInfo {
				return types.StructOf(ref.DeclID, t.Name, subst...)
			})
		case declengine.CategoryEnum:
			subst := a.resolveArgs(t.Args)
			return a.mono.Monomorphize(ref.DeclID, subst, func() *types.TypeInfo {
				return types.EnumOf(ref.DeclID, t.Name, subst...)
			})
		case declengine.CategoryTrait:
			return types.TraitOf(ref.DeclID, t.Name)
		case declengine.CategoryAlias:
			aliasDecl, _ := a.decls.Alias(ref)
			return types.AliasOf(ref.DeclID, t.Name, aliasDecl.Target)
		}
	}
	a.diags.Errorf(diagnostics.CodeNameResolution, source.Span{}, "unresolved type name %q", t.Name)
	return types.ErrorRecovery()
}

func (a *Analyzer) resolveArgs(args []ast.TypeExpression) []*types.TypeInfo {
	if len(args) == 0 {
		return nil
	}
	out := make([]*types.TypeInfo, len(args))
	for i, arg := range args {
		out[i] = a.resolveTypeExpr(arg)
	}
	return out
}

func uintBits(name string) (int, bool) {
	switch name {
	case "u8":
		return 8, true
	case "u16":
		return 16, true
	case "u32":
		return 32, true
	case "u64":
		return 64, true
	case "u256":
		return 256, true
	default:
		return 0, false
	}
}

func spanOf(n ast.Node) source.Span {
	return source.Span{Start: n.Pos(), End: n.Pos()}
}
