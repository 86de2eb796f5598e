package asm

// Preamble builds the four-word program preamble: a jump
// past the data-section-offset placeholder, the placeholder word itself,
// an absolute-address load of the data section's start, and the
// `program_start` label every subsequent instruction is emitted after.
func Preamble(p *Program) {
	// JI program_start (encoded as an immediate jump; the concrete target
	// offset is patched once the whole stream's length is known, just as
	// internal/bytecode/serializer.go patches offsets after emission).
	p.Emit(Instr{Op: OpJumpImmediate, Label: "program_start"})
	p.Emit(Instr{Op: OpNoop})

	// Placeholder word for the data-section offset; patched by Finalize
	// once DataSection has been laid out.
	p.Emit(Instr{Op: OpLoadImmediate, HasDst: true, Dst: p.FreshVReg(), Imm: 0})

	// LW/ADD: the two words of the absolute data-section address load.
	// Instr operands are virtual registers only, so both write fresh
	// vregs and carry no source operands; they do not name
	// RegDataSectionStart or RegInstructionStart.
	p.Emit(Instr{Op: OpLoadWord, HasDst: true, Dst: p.FreshVReg()})
	p.Emit(Instr{Op: OpAdd, HasDst: true, Dst: p.FreshVReg()})

	p.Label("program_start")
}

// Finalize patches the preamble's data-section-offset placeholder (index
// 2, per Preamble's layout) now that the instruction stream's length is
// fixed and DataSection's byte offset is known.
func Finalize(p *Program, wordSize int) {
	if len(p.Instructions) < 3 {
		return
	}
	dataOffset := uint64(len(p.Instructions) * wordSize)
	p.Instructions[2].Imm = dataOffset
}
