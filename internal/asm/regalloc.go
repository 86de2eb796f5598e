package asm

import "sort"

// liveRange is the [start, end] instruction-index span a virtual register
// is live across, inclusive of both ends.
type liveRange struct {
	reg VReg
	start, end int
}

// Allocated is the result of register allocation: a concrete register (or
// a spill slot) per virtual register, plus the Program it was computed
// for (its instruction stream is not rewritten).
type Allocated struct {
	Program *Program
	RegOf map[VReg]Reg
	SpillSlots map[VReg]int // present only for spilled vregs
}

// poolSize is the number of general-purpose registers available for
// allocation, chosen to leave headroom for the reserved architectural
// registers.
const poolSize = 48

// Allocate performs linear-scan register allocation over p's virtual
// registers: it computes each vreg's live range from first def to last
// use, sorts by start, and greedily assigns the lowest free concrete
// register, coalescing MOVE instructions whose source and destination can
// share a register. A vreg that finds the pool exhausted gets a number in
// SpillSlots instead; no PUSHA/POPA instructions are emitted for it.
func Allocate(p *Program) *Allocated {
	ranges := computeLiveRanges(p)
	coalesced, mergedInto := coalesceMoves(p, ranges)

	sort.Slice(coalesced, func(i, j int) bool { return coalesced[i].start < coalesced[j].start })

	regOf := make(map[VReg]Reg)
	spillSlots := make(map[VReg]int)
	active := map[VReg]Reg{}
	freePool := make([]Reg, poolSize)
	for i := range freePool {
		freePool[i] = FirstGPR + Reg(i)
	}
	inUse := make(map[Reg]bool)

	release := func(upTo int) {
		for v, r := range active {
			if rangeEndOf(coalesced, v) < upTo {
				inUse[r] = false
				delete(active, v)
			}
		}
	}

	nextSpillSlot := 0
	for _, lr := range coalesced {
		release(lr.start)
		reg, ok := firstFree(freePool, inUse)
		if !ok {
			spillSlots[lr.reg] = nextSpillSlot
			nextSpillSlot++
			continue
		}
		inUse[reg] = true
		active[lr.reg] = reg
		regOf[lr.reg] = reg
	}
	// A MOVE destination absorbed by coalescing shares its source's
	// register (or spill slot).
	for dst, src := range mergedInto {
		for next, ok := mergedInto[src]; ok; next, ok = mergedInto[src] {
			src = next
		}
		if r, ok := regOf[src]; ok {
			regOf[dst] = r
		} else if s, ok := spillSlots[src]; ok {
			spillSlots[dst] = s
		}
	}

	return &Allocated{Program: p, RegOf: regOf, SpillSlots: spillSlots}
}

func firstFree(pool []Reg, inUse map[Reg]bool) (Reg, bool) {
	for _, r := range pool {
		if !inUse[r] {
			return r, true
		}
	}
	return 0, false
}

func rangeEndOf(ranges []liveRange, v VReg) int {
	for _, lr := range ranges {
		if lr.reg == v {
			return lr.end
		}
	}
	return -1
}

func computeLiveRanges(p *Program) []liveRange {
	starts := make(map[VReg]int)
	ends := make(map[VReg]int)
	touch := func(v VReg, has bool, i int) {
		if !has {
			return
		}
		if _, ok := starts[v]; !ok {
			starts[v] = i
		}
		ends[v] = i
	}
	for i, instr := range p.Instructions {
		touch(instr.Dst, instr.HasDst, i)
		touch(instr.Src1, instr.HasSrc1, i)
		touch(instr.Src2, instr.HasSrc2, i)
		touch(instr.Src3, instr.HasSrc3, i)
	}
	out := make([]liveRange, 0, len(starts))
	for v, s := range starts {
		out = append(out, liveRange{reg: v, start: s, end: ends[v]})
	}
	return out
}

// coalesceMoves merges the live ranges of a MOVE's source and destination
// when the source is never used again after the move, letting the
// allocator assign them the same physical register. It returns the
// surviving ranges and, for each absorbed destination, the register it
// was merged into. The MOVE itself stays in the instruction stream.
func coalesceMoves(p *Program, ranges []liveRange) ([]liveRange, map[VReg]VReg) {
	endOf := make(map[VReg]int, len(ranges))
	for _, lr := range ranges {
		endOf[lr.reg] = lr.end
	}
	mergedInto := make(map[VReg]VReg) // dst register -> the register whose range absorbed it
	extendedEnd := make(map[VReg]int) // surviving register -> new (later) end
	for i, instr := range p.Instructions {
		if instr.Op != OpMove || !instr.HasDst || !instr.HasSrc1 || instr.Dst == instr.Src1 {
			continue
		}
		if endOf[instr.Src1] == i { // src1's last use is exactly this move
			root := instr.Src1
			for next, ok := mergedInto[root]; ok; next, ok = mergedInto[root] {
				root = next
			}
			mergedInto[instr.Dst] = root
			if dstEnd := endOf[instr.Dst]; dstEnd > extendedEnd[root] {
				extendedEnd[root] = dstEnd
			}
		}
	}
	out := make([]liveRange, 0, len(ranges))
	for _, lr := range ranges {
		if _, merged := mergedInto[lr.reg]; merged {
			continue
		}
		if newEnd, ok := extendedEnd[lr.reg]; ok && newEnd > lr.end {
			lr.end = newEnd
		}
		out = append(out, lr)
	}
	return out, mergedInto
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
