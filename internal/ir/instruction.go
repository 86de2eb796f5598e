package ir

import "github.com/ion-lang/ionc/internal/types"

// Op tags an Instruction's opcode, per instruction set.
type Op int

const (
	OpAsmBlock Op = iota
	OpBranch
	OpCall
	OpConditionalBranch
	OpExtractValue
	OpGetPointer
	OpInsertValue
	OpLoad
	OpPhi
	OpRet
	OpStore
	OpStateLoadWord
	OpStateLoadQuadWord
	OpStateStoreWord
	OpStateStoreQuadWord
	OpLog
	OpGtf
	OpReadRegister
	OpRevert
	OpSmo
	OpStateClear
)

// Instruction is one SSA instruction. Not every field applies to every
// Op; see the per-Op comment below.
type Instruction struct {
	Op Op
	Type *types.TypeInfo // result type, or nil for void ops

	// OpBranch
	Target string

	// OpConditionalBranch
	Cond Value
	TrueTarget string
	FalseTarget string

	// OpCall
	Callee string
	Args []Value

	// OpExtractValue, OpInsertValue, OpGetPointer
	Aggregate Value
	Field string
	Offset int
	InsertVal Value

	// OpLoad, OpStore, OpStateLoadWord/QuadWord, OpStateStoreWord/QuadWord
	Addr Value
	Val Value

	// OpPhi: parallel slices, one entry per predecessor block
	PhiBlocks []string
	PhiValues []Value

	// OpRet
	RetVal Value

	// OpLog
	LogVal Value
	LogID Value

	// OpGtf
	GtfIndex Value
	GtfKind uint64

	// OpReadRegister
	Register string

	// OpRevert
	RevertCode Value

	// OpSmo
	Recipient Value
	SmoData Value
	SmoCoins Value

	// OpAsmBlock: an opaque operation named by RawAsm (a binary operator
	// from the builder, or "const" for a load folded by constant
	// propagation), applied to Args; kept by dead-code elimination.
	RawAsm string
}
