package asm

import "testing"

func TestPreambleLayout(t *testing.T) {
	p := NewProgram("main")
	Preamble(p)
	Finalize(p, 8)

	if len(p.Instructions) != 5 {
		t.Fatalf("expected five preamble instructions (JI, NOOP, data-offset placeholder, LW, ADD), got %d", len(p.Instructions))
	}
	if p.Instructions[0].Op != OpJumpImmediate || p.Instructions[0].Label != "program_start" {
		t.Fatalf("expected the preamble to start with a jump to program_start, got %+v", p.Instructions[0])
	}
	if _, ok := p.Labels["program_start"]; !ok {
		t.Fatal("expected program_start to be a resolvable label")
	}
	if p.Instructions[2].Imm == 0 {
		t.Fatal("expected Finalize to patch the data-section offset")
	}
}

func TestSelectorSwitchDispatchesEveryEntry(t *testing.T) {
	p := NewProgram("dispatch")
	argReg := p.FreshVReg()
	entries := []SelectorEntry{
		{Selector: 0x1111, Target: "entry_a"},
		{Selector: 0x2222, Target: "entry_b"},
	}
	BuildSelectorSwitch(p, entries, argReg, 0xdead)

	targets := map[string]bool{}
	for _, instr := range p.Instructions {
		if instr.Op == OpJumpNotZeroImmediate {
			targets[instr.Label] = true
		}
	}
	for _, e := range entries {
		if !targets[e.Target] {
			t.Errorf("expected a conditional jump to %s", e.Target)
		}
	}
	last := p.Instructions[len(p.Instructions)-1]
	if last.Op != OpRevertImmediate {
		t.Fatalf("expected the selector switch to end in a revert fallthrough, got %+v", last)
	}
}

func TestRegisterAllocationStaysWithinPool(t *testing.T) {
	p := NewProgram("alloc")
	var last VReg
	for i := 0; i < 10; i++ {
		v := p.FreshVReg()
		p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: v, Imm: uint64(i)})
		last = v
	}
	alloc := Allocate(p)
	if _, ok := alloc.RegOf[last]; !ok {
		if _, spilled := alloc.SpillSlots[last]; !spilled {
			t.Fatal("expected the last vreg to be either allocated or spilled")
		}
	}
}

func TestMoveCoalescing(t *testing.T) {
	p := NewProgram("coalesce")
	src := p.FreshVReg()
	dst := p.FreshVReg()
	p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: src, Imm: 7})
	p.Emit(Instr{Op: OpMove, HasDst: true, Dst: dst, HasSrc1: true, Src1: src})
	p.Emit(Instr{Op: OpReturn, HasSrc1: true, Src1: dst})

	alloc := Allocate(p)
	srcReg, srcOk := alloc.RegOf[src]
	dstReg, dstOk := alloc.RegOf[dst]
	if srcOk && dstOk && srcReg != dstReg {
		t.Fatalf("expected coalesced move to share a register, got src=%v dst=%v", srcReg, dstReg)
	}
}
