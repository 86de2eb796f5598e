// Package semantic implements the semantic analyzer: scope resolution,
// the collection and type-check passes, the auto-impl pass, the CEI lint
// and program-kind validation.
//
// Grounded on internal/semantic/analyzer.go's Analyzer struct (a symbol
// table plus per-kind registries plus current-function/current-class
// context plus an accumulated error list) and its split-by-concern file
// layout, adapted from DWScript's class/record/interface vocabulary to
// this language's struct/enum/trait/impl/abi vocabulary.
package semantic

import (
	"github.com/ion-lang/ionc/internal/declengine"
	"github.com/ion-lang/ionc/internal/types"
)

// symbolKind distinguishes the shadowing rule that applies to a binding:
// variables shadow freely, function-body constants
// shadow sequentially, item-level constants do not shadow.
type symbolKind int

const (
	symVariable symbolKind = iota
	symLocalConstant
	symItemConstant
)

type symbol struct {
	kind symbolKind
	typ *types.TypeInfo
	ref declengine.DeclRef
}

// scope is one lexical scope in the tree; parent is nil for the
// program-level root scope that holds top-level items (function scopes
// are its children).
type scope struct {
	parent *scope
	symbols map[string]symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, symbols: make(map[string]symbol)}
}

// define binds name in this scope. It returns false if name already names
// an item-level constant in this exact scope (item constants never
// shadow); variables and local constants always succeed, shadowing any
// outer binding.
func (s *scope) define(name string, sym symbol) bool {
	if existing, ok := s.symbols[name]; ok && existing.kind == symItemConstant {
		return false
	}
	s.symbols[name] = sym
	return true
}

// lookup walks outward from s to the root scope.
func (s *scope) lookup(name string) (symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return symbol{}, false
}

// push opens a child scope (entering a block).
func (s *scope) push() *scope {
	return newScope(s)
}
