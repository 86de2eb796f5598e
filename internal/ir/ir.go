// Package ir implements the SSA intermediate representation: Module,
// Function, Block, Value and Instruction, plus the builder, the memory
// model and the optimizer's named, toggleable passes. The symbolic
// interpretation pass runs on abstract asm and lives in internal/asm.
//
// Grounded on internal/bytecode/compiler_core.go's Compiler (locals,
// globals, scope depth, a loopStack of break/continue jump-patch lists)
// generalized from a flat stack-VM local/jump-list structure into genuine
// SSA basic blocks with phi nodes, and on internal/bytecode/optimizer.go's
// OptimizationPass/OptimizeOption functional-option design, adopted
// nearly as-is.
package ir

import (
	"github.com/ion-lang/ionc/internal/engine"
	"github.com/ion-lang/ionc/internal/types"
)

// ProgramKind mirrors ast.ProgramKind at the IR level.
type ProgramKind int

const (
	KindScript ProgramKind = iota
	KindPredicate
	KindContract
	KindLibrary
)

// Module is one compiled unit: every function plus the program kind.
type Module struct {
	Kind ProgramKind
	Functions []*Function
}

// Function is one SSA function: its typed arguments, its basic blocks and
// its ordered local-storage slots, kept as a slice rather than a map so
// that emission order is deterministic and insertion-ordered.
type Function struct {
	Name string
	Args []Argument
	Return *types.TypeInfo
	Blocks []*Block
	LocalStorage []Local
	labelCounter int
}

// Argument is one function parameter as an SSA value.
type Argument struct {
	Name string
	Type *types.TypeInfo
	id engine.Handle
}

// Local is one named local-storage slot.
type Local struct {
	Name string
	Type *types.TypeInfo
}

// NewLabel returns a fresh, function-unique block label.
func (f *Function) NewLabel(prefix string) string {
	f.labelCounter++
	return prefixLabel(prefix, f.labelCounter)
}

func prefixLabel(prefix string, n int) string {
	return prefix + "_" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Block is one basic block: a label, its instructions, and the labels of
// its predecessors (needed by Phi resolution).
type Block struct {
	Label string
	Instructions []Instruction
	Predecessors []string
}

// Value is anything an instruction can consume: a function argument, the
// result of a previous instruction, or a constant.
type Value interface {
	isValue()
}

// ArgumentValue references a Function.Args entry by index.
type ArgumentValue struct{ Index int }

func (ArgumentValue) isValue() {}

// InstructionValue references a previous instruction's result by
// (block label, index within block) so that a Value remains valid even as
// blocks are appended to.
type InstructionValue struct {
	Block string
	Index int
}

func (InstructionValue) isValue() {}

// Constant is an immediate value baked into the instruction stream.
type Constant struct {
	Type *types.TypeInfo
	Bits uint64 // interpretation depends on Type
	Bytes []byte // used for B256/string constants wider than 64 bits
}

func (Constant) isValue() {}

// Pointer is a typed memory location: the symbol it was derived from (for
// alias analysis), a chain of field-offset projections, and the byte
// length of the access made through it (0 defaults to one byte in
// MayAlias/MustAlias).
type Pointer struct {
	Symbol *Symbol
	Offsets []int
	Length int
}

// Symbol is the shared identity memory operations alias against (see
// memory.go's MayAlias/MustAlias).
type Symbol struct {
	Name string
}

// Aggregate is a struct/tuple/array value's field-offset layout, used to
// resolve ExtractValue/InsertValue/GetPointer paths to byte offsets.
type Aggregate struct {
	Type *types.TypeInfo
	FieldOffset map[string]int
}

// OffsetOf returns the byte offset of a named field, or -1 if unknown.
func (a *Aggregate) OffsetOf(field string) int {
	if a.FieldOffset == nil {
		return -1
	}
	off, ok := a.FieldOffset[field]
	if !ok {
		return -1
	}
	return off
}
