package asm

import "testing"

func TestSymbolicInterpretationFoldsKnownZeroBranch(t *testing.T) {
	p := NewProgram("fold_zero")
	cond := p.FreshVReg()
	p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: cond, Imm: 0})
	p.Emit(Instr{Op: OpJumpNotZeroImmediate, HasSrc1: true, Src1: cond, Label: "taken"})
	p.Label("taken")
	p.Emit(Instr{Op: OpReturn})

	RunSymbolicInterpretation(p)

	if p.Instructions[1].Op != OpNoop {
		t.Fatalf("expected a statically-zero conditional jump to fold to OpNoop, got %+v", p.Instructions[1])
	}
}

func TestSymbolicInterpretationFoldsKnownNonZeroBranch(t *testing.T) {
	p := NewProgram("fold_nonzero")
	cond := p.FreshVReg()
	p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: cond, Imm: 1})
	p.Emit(Instr{Op: OpJumpNotZeroImmediate, HasSrc1: true, Src1: cond, Label: "taken"})
	p.Label("taken")
	p.Emit(Instr{Op: OpReturn})

	RunSymbolicInterpretation(p)

	folded := p.Instructions[1]
	if folded.Op != OpJumpImmediate || folded.Label != "taken" {
		t.Fatalf("expected a statically-nonzero conditional jump to fold to an unconditional jump, got %+v", folded)
	}
}

func TestSymbolicInterpretationRewritesMoveChain(t *testing.T) {
	p := NewProgram("move_chain")
	src := p.FreshVReg()
	mid := p.FreshVReg()
	p.Emit(Instr{Op: OpReadRegister, HasDst: true, Dst: src})
	p.Emit(Instr{Op: OpMove, HasDst: true, Dst: mid, HasSrc1: true, Src1: src})
	useIdx := p.Emit(Instr{Op: OpReturn, HasSrc1: true, Src1: mid})

	RunSymbolicInterpretation(p)

	if got := p.Instructions[useIdx].Src1; got != src {
		t.Fatalf("expected the return's use of the move's destination to be rewritten to %v, got %v", src, got)
	}
}

func TestSymbolicInterpretationResetsAtJumpTarget(t *testing.T) {
	p := NewProgram("reset_at_label")
	cond := p.FreshVReg()
	p.Emit(Instr{Op: OpJumpImmediate, Label: "merge"})
	p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: cond, Imm: 0})
	p.Label("merge")
	branchIdx := p.Emit(Instr{Op: OpJumpNotZeroImmediate, HasSrc1: true, Src1: cond, Label: "elsewhere"})

	RunSymbolicInterpretation(p)

	if p.Instructions[branchIdx].Op != OpJumpNotZeroImmediate {
		t.Fatalf("expected knowledge to reset at a jump target, leaving the branch unfolded, got %+v", p.Instructions[branchIdx])
	}
}

func TestSymbolicInterpretationResetsAcrossCall(t *testing.T) {
	p := NewProgram("reset_at_call")
	cond := p.FreshVReg()
	p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: cond, Imm: 0})
	p.Emit(Instr{Op: OpCall, Label: "callee"})
	branchIdx := p.Emit(Instr{Op: OpJumpNotZeroImmediate, HasSrc1: true, Src1: cond, Label: "elsewhere"})

	RunSymbolicInterpretation(p)

	if p.Instructions[branchIdx].Op != OpJumpNotZeroImmediate {
		t.Fatalf("expected a call to invalidate known register values, leaving the branch unfolded, got %+v", p.Instructions[branchIdx])
	}
}
