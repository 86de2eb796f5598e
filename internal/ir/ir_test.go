package ir

import (
	"testing"

	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/types"
)

// constOracle is a minimal TypeOracle for tests, hand-built the way
// internal/bytecode/compiler_test.go hand-builds its Compiler fixtures
// without going through a parser or full semantic analyzer.
type constOracle struct {
	defaultType *types.TypeInfo
}

func (o constOracle) TypeOf(ast.Expression) *types.TypeInfo { return o.defaultType }

func TestBuildFunctionReturnsConstant(t *testing.T) {
	decl := &ast.FunctionDecl{
		Name: &ast.Identifier{Value: "answer"},
		Body: &ast.BlockStatement{
			Statements: []ast.Statement{
				&ast.ReturnStatement{Value: &ast.IntegerLiteral{Value: 42}},
			},
		},
	}

	b := NewBuilder(constOracle{defaultType: types.UInt(64)})
	fn := b.BuildFunction(decl, types.UInt(64))

	if len(fn.Blocks) != 1 {
		t.Fatalf("expected a single entry block, got %d", len(fn.Blocks))
	}
	last := fn.Blocks[0].Instructions[len(fn.Blocks[0].Instructions)-1]
	if last.Op != OpRet {
		t.Fatalf("expected the function to end in OpRet, got %v", last.Op)
	}
	c, ok := last.RetVal.(Constant)
	if !ok || c.Bits != 42 {
		t.Fatalf("expected a return of constant 42, got %#v", last.RetVal)
	}
}

func TestMayAliasOverlappingOffsets(t *testing.T) {
	sym := &Symbol{Name: "x"}
	a := &Pointer{Symbol: sym, Offsets: []int{0}, Length: 8}
	b := &Pointer{Symbol: sym, Offsets: []int{4}, Length: 8}
	if !MayAlias(a, b) {
		t.Fatal("expected pointers sharing a symbol with overlapping byte ranges to MayAlias")
	}
	if MustAlias(a, b) {
		t.Fatal("did not expect differing offsets to MustAlias")
	}
}

// TestMayAliasNonOverlappingOffsets covers the same-local, distinct-field
// case a reordering optimization over two GetElemPtr projections needs:
// sharing a symbol is necessary but not sufficient for aliasing.
func TestMayAliasNonOverlappingOffsets(t *testing.T) {
	sym := &Symbol{Name: "x"}
	a := &Pointer{Symbol: sym, Offsets: []int{0}, Length: 4}
	b := &Pointer{Symbol: sym, Offsets: []int{4}, Length: 4}
	if MayAlias(a, b) {
		t.Fatal("did not expect non-overlapping byte ranges off the same symbol to MayAlias")
	}
}

func TestMustAliasSameOffsetAndLength(t *testing.T) {
	sym := &Symbol{Name: "x"}
	a := &Pointer{Symbol: sym, Offsets: []int{4}, Length: 4}
	b := &Pointer{Symbol: sym, Offsets: []int{2, 2}, Length: 4}
	if !MustAlias(a, b) {
		t.Fatal("expected identical cumulative offset and length to MustAlias")
	}
}

func TestMayAliasDistinctSymbols(t *testing.T) {
	a := &Pointer{Symbol: &Symbol{Name: "x"}}
	b := &Pointer{Symbol: &Symbol{Name: "y"}}
	if MayAlias(a, b) {
		t.Fatal("did not expect distinct symbols to MayAlias")
	}
}

func TestOptimizerDeadCodeElimination(t *testing.T) {
	fn := &Function{
		Blocks: []*Block{{
			Label: "entry",
			Instructions: []Instruction{
				{Op: OpExtractValue, Aggregate: Constant{}}, // unused, dead
				{Op: OpRet},
			},
		}},
	}
	mod := &Module{Functions: []*Function{fn}}
	NewOptimizer(WithPass(PassConstPropagation, false)).Run(mod)

	if len(fn.Blocks[0].Instructions) != 1 {
		t.Fatalf("expected the dead OpExtractValue to be eliminated, got %+v", fn.Blocks[0].Instructions)
	}
}
