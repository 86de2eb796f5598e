// Package declengine is the declaration engine: it interns every
// top-level item (function, struct, enum, trait, impl, abi, constant,
// alias) behind a typed DeclRef, and supports replacing a forward
// reference once its body is fully collected.
//
// Grounded on internal/interp/types/function_registry.go (per-name
// overload lists) and class_registry.go's hierarchy lookup, generalized
// from DWScript's class/function registries to this language's item
// categories and to the handle-with-generation scheme internal/engine
// provides.
package declengine

import (
	"fmt"

	"github.com/ion-lang/ionc/internal/engine"
	"github.com/ion-lang/ionc/internal/source"
	"github.com/ion-lang/ionc/internal/types"
)

// Category tags which slab a declaration lives in.
type Category int

const (
	CategoryFunction Category = iota
	CategoryStruct
	CategoryEnum
	CategoryTrait
	CategoryImpl
	CategoryAbi
	CategoryConstant
	CategoryAlias
)

// DeclRef is the typed, interned reference to a declaration, per
// .
type DeclRef struct {
	Name string
	DeclID engine.Handle
	Category Category
	SubstitutionList []*types.TypeInfo
	Span source.Span
}

// FunctionDecl is the declaration-engine record for a function signature.
// The body lives in the (typed) AST; the declaration engine only tracks
// enough shape to let callers resolve overloads and purity.
type FunctionDecl struct {
	Name string
	Params []*types.TypeInfo
	Return *types.TypeInfo
	Pure bool
	TraitOwner engine.Handle // zero Handle if not a trait method
}

// StructDecl is the declaration-engine record for a struct.
type StructDecl struct {
	Name string
	TypeParams []*types.TypeInfo
	Fields []StructField
	ImplementsAbi bool
}

// StructField is one field of a struct declaration.
type StructField struct {
	Name string
	Type *types.TypeInfo
}

// EnumDecl is the declaration-engine record for an enum.
type EnumDecl struct {
	Name string
	TypeParams []*types.TypeInfo
	Variants []EnumVariant
}

// EnumVariant is one variant of an enum declaration.
type EnumVariant struct {
	Name string
	Type *types.TypeInfo
}

// TraitDecl is the declaration-engine record for a trait, including its
// directly-declared supertraits (before closure).
type TraitDecl struct {
	Name string
	Methods []FunctionDecl
	Supertraits []engine.Handle
}

// ImplDecl is the declaration-engine record for an `impl Trait for Type`
// (or an inherent `impl Type`) block.
type ImplDecl struct {
	TraitName string // empty for an inherent impl
	ForType *types.TypeInfo
	Methods []engine.Handle // FunctionDecl handles
}

// AbiDecl is the declaration-engine record for an ABI interface: the set
// of entry points a contract exposes.
type AbiDecl struct {
	Name string
	Methods []FunctionDecl
}

// ConstantDecl is the declaration-engine record for a top-level constant.
type ConstantDecl struct {
	Name string
	Type *types.TypeInfo
}

// AliasDecl is the declaration-engine record for a type alias.
type AliasDecl struct {
	Name string
	Target *types.TypeInfo
}

// Engine owns one Store per declaration category.
type Engine struct {
	functions *engine.Store[FunctionDecl]
	structs *engine.Store[StructDecl]
	enums *engine.Store[EnumDecl]
	traits *engine.Store[TraitDecl]
	impls *engine.Store[ImplDecl]
	abis *engine.Store[AbiDecl]
	constants *engine.Store[ConstantDecl]
	aliases *engine.Store[AliasDecl]

	// byName supports name resolution during the collection pass: several
	// DeclRefs may share a name (function overloads), so each entry is a
	// list.
	byName map[string][]DeclRef
}

// New returns an empty declaration engine.
func New() *Engine {
	return &Engine{
		functions: engine.NewStore[FunctionDecl](),
		structs: engine.NewStore[StructDecl](),
		enums: engine.NewStore[EnumDecl](),
		traits: engine.NewStore[TraitDecl](),
		impls: engine.NewStore[ImplDecl](),
		abis: engine.NewStore[AbiDecl](),
		constants: engine.NewStore[ConstantDecl](),
		aliases: engine.NewStore[AliasDecl](),
		byName: make(map[string][]DeclRef),
	}
}

// DeclareFunction interns a function declaration and returns its DeclRef.
func (e *Engine) DeclareFunction(name string, span source.Span, decl FunctionDecl) DeclRef {
	h := e.functions.Insert(decl)
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryFunction, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// Function dereferences a function DeclRef.
func (e *Engine) Function(ref DeclRef) (FunctionDecl, bool) {
	return e.functions.Get(ref.DeclID)
}

// ReserveStruct reserves a forward-reference slot for a struct so other
// declarations collected before its body can refer to it; ResolveStruct
// closes it later.
func (e *Engine) ReserveStruct(name string, span source.Span) DeclRef {
	h := e.structs.Insert(StructDecl{Name: name})
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryStruct, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// ResolveStruct closes a previously reserved struct forward reference,
// bumping its handle's generation so any earlier copies become stale per
// .
func (e *Engine) ResolveStruct(ref DeclRef, decl StructDecl) DeclRef {
	newHandle := e.structs.Replace(ref.DeclID, decl)
	updated := ref
	updated.DeclID = newHandle
	e.replaceByName(ref.Name, ref, updated)
	return updated
}

// Struct dereferences a struct DeclRef.
func (e *Engine) Struct(ref DeclRef) (StructDecl, bool) {
	return e.structs.Get(ref.DeclID)
}

// DeclareEnum interns an enum declaration.
func (e *Engine) DeclareEnum(name string, span source.Span, decl EnumDecl) DeclRef {
	h := e.enums.Insert(decl)
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryEnum, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// Enum dereferences an enum DeclRef.
func (e *Engine) Enum(ref DeclRef) (EnumDecl, bool) {
	return e.enums.Get(ref.DeclID)
}

// DeclareTrait interns a trait declaration with its directly-declared
// supertraits (before closure — see CloseSupertraits).
func (e *Engine) DeclareTrait(name string, span source.Span, decl TraitDecl) DeclRef {
	h := e.traits.Insert(decl)
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryTrait, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// Trait dereferences a trait DeclRef.
func (e *Engine) Trait(ref DeclRef) (TraitDecl, bool) {
	return e.traits.Get(ref.DeclID)
}

// CloseSupertraits computes the transitive closure of a trait's supertrait
// set and synthesizes a dummy function for each inherited method that the
// trait itself does not redeclare, so that a later `impl` block's method
// set can be checked against one flat list instead of walking the
// supertrait graph at every call site. This generalizes single-parent
// class-hierarchy method-set composition to a DAG of supertraits.
func (e *Engine) CloseSupertraits(ref DeclRef) ([]FunctionDecl, error) {
	decl, ok := e.Trait(ref)
	if !ok {
		return nil, fmt.Errorf("declengine: unknown trait %v", ref)
	}
	seen := map[string]FunctionDecl{}
	for _, m := range decl.Methods {
		seen[m.Name] = m
	}
	visited := map[engine.Handle]bool{ref.DeclID: true}
	var walk func(h engine.Handle) error
	walk = func(h engine.Handle) error {
		superDecl, ok := e.traits.Get(h)
		if !ok {
			return fmt.Errorf("declengine: dangling supertrait handle")
		}
		for _, m := range superDecl.Methods {
			if _, exists := seen[m.Name]; !exists {
				// A method inherited from a supertrait but not overridden
				// by this trait is recorded as a dummy entry: it carries
				// the supertrait's signature and TraitOwner points back at
				// the supertrait that declared it.
				m.TraitOwner = h
				seen[m.Name] = m
			}
		}
		for _, sh := range superDecl.Supertraits {
			if !visited[sh] {
				visited[sh] = true
				if err := walk(sh); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, sh := range decl.Supertraits {
		if err := walk(sh); err != nil {
			return nil, err
		}
	}
	out := make([]FunctionDecl, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	return out, nil
}

// DeclareImpl interns an impl block.
func (e *Engine) DeclareImpl(span source.Span, decl ImplDecl) DeclRef {
	h := e.impls.Insert(decl)
	name := decl.TraitName
	if name == "" {
		name = "<inherent>"
	}
	return DeclRef{Name: name, DeclID: h, Category: CategoryImpl, Span: span}
}

// Impl dereferences an impl DeclRef.
func (e *Engine) Impl(ref DeclRef) (ImplDecl, bool) {
	return e.impls.Get(ref.DeclID)
}

// DeclareAbi interns an ABI interface declaration.
func (e *Engine) DeclareAbi(name string, span source.Span, decl AbiDecl) DeclRef {
	h := e.abis.Insert(decl)
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryAbi, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// Abi dereferences an ABI DeclRef.
func (e *Engine) Abi(ref DeclRef) (AbiDecl, bool) {
	return e.abis.Get(ref.DeclID)
}

// DeclareConstant interns a top-level constant.
func (e *Engine) DeclareConstant(name string, span source.Span, decl ConstantDecl) DeclRef {
	h := e.constants.Insert(decl)
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryConstant, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// Constant dereferences a constant DeclRef.
func (e *Engine) Constant(ref DeclRef) (ConstantDecl, bool) {
	return e.constants.Get(ref.DeclID)
}

// DeclareAlias interns a type alias.
func (e *Engine) DeclareAlias(name string, span source.Span, decl AliasDecl) DeclRef {
	h := e.aliases.Insert(decl)
	ref := DeclRef{Name: name, DeclID: h, Category: CategoryAlias, Span: span}
	e.byName[name] = append(e.byName[name], ref)
	return ref
}

// Alias dereferences an alias DeclRef.
func (e *Engine) Alias(ref DeclRef) (AliasDecl, bool) {
	return e.aliases.Get(ref.DeclID)
}

// Lookup returns every declaration interned under name (multiple entries
// mean overloaded functions).
func (e *Engine) Lookup(name string) []DeclRef {
	return e.byName[name]
}

func (e *Engine) replaceByName(name string, old, updated DeclRef) {
	refs := e.byName[name]
	for i, r := range refs {
		if r.DeclID == old.DeclID && r.Category == old.Category {
			refs[i] = updated
			return
		}
	}
}
