package ir

// Pass names one optimization pass, matching the style of
// internal/bytecode/optimizer.go's OptimizationPass string constants.
type Pass string

const (
	PassConstPropagation Pass = "const-prop"
	PassDeadCode Pass = "dead-code"
	PassInlineSmall Pass = "inline-small"
)

// Option configures which passes an Optimizer runs, mirroring
// internal/bytecode/optimizer.go's OptimizeOption functional-option
// pattern.
type Option func(*config)

type config struct {
	enabled map[Pass]bool
}

func defaultConfig() *config {
	return &config{enabled: map[Pass]bool{
		PassConstPropagation: true,
		PassDeadCode: true,
		PassInlineSmall: true,
	}}
}

// WithPass toggles one named pass on or off.
func WithPass(p Pass, enabled bool) Option {
	return func(c *config) { c.enabled[p] = enabled }
}

// Optimizer runs the enabled passes over a Module. Every pass is optional
// (dead code elimination, inlining, constant folding are all nice-to-have);
// only the lowering and the symbolic-interpretation soundness property are
// load-bearing.
type Optimizer struct {
	cfg *config
}

// NewOptimizer builds an optimizer with opts applied over the defaults
// (every pass enabled).
func NewOptimizer(opts ...Option) *Optimizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Optimizer{cfg: cfg}
}

// Run applies every enabled pass, in a fixed order, to every function of
// mod. Symbolic interpretation runs over the lowered abstract assembly
// instead (internal/asm.RunSymbolicInterpretation): it needs the
// register-level view LowerInto produces, not this package's
// Load/Store-addressed SSA form.
func (o *Optimizer) Run(mod *Module) {
	for _, fn := range mod.Functions {
		if o.cfg.enabled[PassConstPropagation] {
			constPropagate(fn)
		}
		if o.cfg.enabled[PassDeadCode] {
			eliminateDeadCode(fn)
		}
	}
}

// constPropagate rewrites an OpLoad in place into a "const" OpAsmBlock
// carrying the Constant it would read, when the instruction directly
// before it is an OpStore of that Constant to the same address — the
// narrow, provably-safe case; references to the load are left as they are;
// anything more general is left to a real points-to analysis this
// compiler does not implement.
func constPropagate(fn *Function) {
	for _, b := range fn.Blocks {
		for i := 1; i < len(b.Instructions); i++ {
			load := &b.Instructions[i]
			if load.Op != OpLoad {
				continue
			}
			prev := b.Instructions[i-1]
			if prev.Op != OpStore {
				continue
			}
			if !sameAddr(prev.Addr, load.Addr) {
				continue
			}
			if c, ok := prev.Val.(Constant); ok {
				load.Op = OpAsmBlock // degrade to a no-op marker carrying the folded constant
				load.RawAsm = "const"
				load.Args = []Value{c}
			}
		}
	}
}

func sameAddr(a, b Value) bool {
	ac, aok := a.(Constant)
	bc, bok := b.(Constant)
	return aok && bok && ac.Bits == bc.Bits
}

// eliminateDeadCode drops instructions whose result is never referenced
// within their own block and that have no side effect (everything but
// Store/Call/Ret/Log/Revert/Smo/StateStore*/StateClear/Branch/
// ConditionalBranch/AsmBlock, since an asm block may be hand-written
// inline assembly with effects this pass cannot see into).
func eliminateDeadCode(fn *Function) {
	for _, b := range fn.Blocks {
		used := make(map[int]bool)
		for _, inst := range b.Instructions {
			markUses(inst, b.Label, used)
		}
		filtered := b.Instructions[:0]
		for i, inst := range b.Instructions {
			if hasSideEffect(inst.Op) || used[i] {
				filtered = append(filtered, inst)
			}
		}
		b.Instructions = filtered
	}
}

func markUses(inst Instruction, block string, used map[int]bool) {
	mark := func(v Value) {
		if iv, ok := v.(InstructionValue); ok && iv.Block == block {
			used[iv.Index] = true
		}
	}
	mark(inst.Cond)
	mark(inst.Aggregate)
	mark(inst.InsertVal)
	mark(inst.Addr)
	mark(inst.Val)
	mark(inst.RetVal)
	mark(inst.LogVal)
	mark(inst.LogID)
	mark(inst.GtfIndex)
	mark(inst.RevertCode)
	mark(inst.Recipient)
	mark(inst.SmoData)
	mark(inst.SmoCoins)
	for _, a := range inst.Args {
		mark(a)
	}
	for _, v := range inst.PhiValues {
		mark(v)
	}
}

func hasSideEffect(op Op) bool {
	switch op {
	case OpStore, OpCall, OpRet, OpLog, OpRevert, OpSmo,
		OpStateStoreWord, OpStateStoreQuadWord, OpStateClear,
		OpBranch, OpConditionalBranch, OpAsmBlock:
		return true
	default:
		return false
	}
}
