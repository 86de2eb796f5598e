package semantic

import (
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/declengine"
	"github.com/ion-lang/ionc/internal/diagnostics"
	"github.com/ion-lang/ionc/internal/types"
)

// Analyzer threads the state that every analysis pass needs: the
// declaration engine being populated, the current lexical scope, which
// function/impl is currently being checked (for purity and Self-type
// resolution), and the shared diagnostic handler.
//
// Analyzer keeps everything it needs locally rather than importing a
// sibling SemanticInfo type from a separate package, since splitting the
// side-table data across packages buys nothing here.
type Analyzer struct {
	decls *declengine.Engine
	diags *diagnostics.Handler
	mono *types.MonomorphizeCache
	root *scope
	current *scope

	currentFunc *declengine.FunctionDecl
	currentImplTy *types.TypeInfo
	inPureContext bool

	// sawInteraction marks, per function body currently being walked,
	// whether a call that might reach another contract (Interaction) has
	// already been seen; a later storage write then trips CEI (4.4's CEI
	// lint).
	sawInteraction bool

	synthesized []autoImplSynthesized

	// exprTypes records every expression's resolved type so that IR
	// lowering (internal/ir) can consume a typed AST without this package
	// needing a second, parallel node hierarchy — typed AST
	// nodes are represented here as the input AST plus this side table
	// rather than by cloning every node kind into a "Typed*" variant.
	exprTypes map[ast.Expression]*types.TypeInfo
}

// TypeOf returns the type the analyzer resolved for expr, or
// types.Unknown if expr was never visited.
func (a *Analyzer) TypeOf(expr ast.Expression) *types.TypeInfo {
	if t, ok := a.exprTypes[expr]; ok {
		return t
	}
	return types.Unknown()
}

// Synthesized returns the auto-impl entries the analyzer generated, for
// IR lowering to attach forwarding bodies to.
func (a *Analyzer) Synthesized() []autoImplSynthesized {
	return a.synthesized
}

// FunctionReturnType looks up the declared return type of the top-level
// function named name, as recorded by the collection pass. Returns
// types.Unknown if no such function was collected (e.g. a method, or a
// name the collection pass already rejected with a diagnostic).
func (a *Analyzer) FunctionReturnType(name string) *types.TypeInfo {
	for _, ref := range a.decls.Lookup(name) {
		if ref.Category != declengine.CategoryFunction {
			continue
		}
		if fd, ok := a.decls.Function(ref); ok {
			if fd.Return != nil {
				return fd.Return
			}
			return types.Unknown()
		}
	}
	return types.Unknown()
}

// NewAnalyzer returns an analyzer ready to collect and check a single
// Program against decls, reporting diagnostics through diags.
func NewAnalyzer(decls *declengine.Engine, diags *diagnostics.Handler) *Analyzer {
	root := newScope(nil)
	return &Analyzer{
		decls: decls,
		diags: diags,
		mono: types.NewMonomorphizeCache(),
		root: root,
		current: root,
		exprTypes: make(map[ast.Expression]*types.TypeInfo),
	}
}

// Analyze runs the full collection, auto-impl, type-check, CEI and
// program-kind passes over prog in that order.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.collect(prog)
	a.autoImpl(prog)
	a.typeCheck(prog)
	a.checkProgramKind(prog)
}
