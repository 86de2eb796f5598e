// Package driver wires the compiler core's stages — semantic analysis,
// SSA construction and optimization, and assembly lowering and register
// allocation — into the single pipeline that runs per compilation unit.
// It does not parse source text: callers supply an already-built
// *ast.Program, since the lexer/parser are external collaborators this
// core does not implement.
package driver

import (
	"github.com/ion-lang/ionc/internal/asm"
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/config"
	"github.com/ion-lang/ionc/internal/declengine"
	"github.com/ion-lang/ionc/internal/diagnostics"
	"github.com/ion-lang/ionc/internal/ir"
	"github.com/ion-lang/ionc/internal/semantic"
	"github.com/ion-lang/ionc/internal/types"
)

// OptLevel mirrors --release/--debug switch.
type OptLevel int

const (
	OptDebug OptLevel = iota
	OptRelease
)

// Options configures a single Run.
type Options struct {
	Opt OptLevel
	Features config.Features
}

// Result is everything a build driver needs downward: diagnostics, the
// lowered IR module, and the allocated assembly image.
type Result struct {
	Diagnostics []diagnostics.Diagnostic
	Module *ir.Module
	Allocated *asm.Allocated
	AbiEntries []semantic.AbiEntry
}

// selectorMismatchCode is the fixed revert code the contract entry-point
// dispatch fails with when no ABI selector matches the call (the
// `MOVI`+`RVRT` fallthrough after the selector switch).
const selectorMismatchCode uint64 = 0xFFFFFFFF

// semanticOracle adapts an *semantic.Analyzer's expression-type side
// table to ir.TypeOracle.
type semanticOracle struct{ a *semantic.Analyzer }

func (o semanticOracle) TypeOf(expr ast.Expression) *types.TypeInfo { return o.a.TypeOf(expr) }

// Run executes the full pipeline over prog: semantic analysis, SSA
// lowering per function, IR optimization, assembly lowering and register
// allocation. Debug and release run the same IR passes: the only pass
// debug switches off, ir.PassInlineSmall, has no implementation in
// ir.Optimizer.Run. Symbolic interpretation of the lowered assembly runs
// in release only.
func Run(prog *ast.Program, opts Options) (*Result, error) {
	decls := declengine.New()
	diags := diagnostics.NewHandler()
	an := semantic.NewAnalyzer(decls, diags)
	an.Analyze(prog)

	mod := &ir.Module{Kind: ir.ProgramKind(prog.Kind)}
	builder := ir.NewBuilder(semanticOracle{an})
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		mod.Functions = append(mod.Functions, builder.BuildFunction(fn, an.FunctionReturnType(fn.Name.Value)))
	}

	optOpts := []ir.Option{}
	if opts.Opt == OptDebug {
		optOpts = append(optOpts, ir.WithPass(ir.PassInlineSmall, false))
	}
	ir.NewOptimizer(optOpts...).Run(mod)

	abiEntries := an.CollectAbiEntries(prog)

	program := asm.NewProgram(progName(prog))
	asm.Preamble(program)
	if mod.Kind == ir.KindContract {
		buildSelectorSwitch(program, abiEntries)
	}
	for _, fn := range mod.Functions {
		asm.LowerInto(program, fn)
	}
	if opts.Opt == OptRelease {
		asm.RunSymbolicInterpretation(program)
	}
	asm.Finalize(program, wordSize)
	allocated := asm.Allocate(program)

	return &Result{
		Diagnostics: diags.Diagnostics(),
		Module: mod,
		Allocated: allocated,
		AbiEntries: abiEntries,
	}, nil
}

// wordSize is the Fuel-VM instruction word width in bytes, used by
// Finalize to compute the data section's byte offset from the
// instruction count.
const wordSize = 8

func progName(prog *ast.Program) string {
	switch prog.Kind {
	case ast.KindContract:
		return "contract"
	case ast.KindPredicate:
		return "predicate"
	case ast.KindLibrary:
		return "library"
	default:
		return "script"
	}
}

// buildSelectorSwitch reads the call's selector argument out of the
// calling convention's fixed input register and emits the dispatch table
// the semantic analyzer's collected AbiEntries describe, one case per
// contract method, jumping to the method's own lowered function label.
func buildSelectorSwitch(p *asm.Program, entries []semantic.AbiEntry) {
	argReg := p.FreshVReg()
	p.Emit(asm.Instr{Op: asm.OpReadRegister, HasDst: true, Dst: argReg, Label: "selector"})

	switchEntries := make([]asm.SelectorEntry, 0, len(entries))
	for _, e := range entries {
		switchEntries = append(switchEntries, asm.SelectorEntry{Selector: e.Selector, Target: e.Name})
	}
	asm.BuildSelectorSwitch(p, switchEntries, argReg, selectorMismatchCode)
}
