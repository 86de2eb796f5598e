package driver

import (
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/config"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// contractProgram builds a two-method contract: `get` returns a stored
// value, `set` assigns one, exercising the CEI-clean path through the full
// pipeline (analysis, SSA, optimization, asm lowering, selector dispatch).
func contractProgram() *ast.Program {
	getFn := &ast.FunctionDecl{
		Name: &ast.Identifier{Value: "get"},
		Return: &ast.NamedTypeExpr{Name: "u64"},
		Body: &ast.BlockStatement{
			Statements: []ast.Statement{
				&ast.LetStatement{
					Name: &ast.Identifier{Value: "v"},
					Value: &ast.IntegerLiteral{Value: 7},
				},
				&ast.ReturnStatement{Value: &ast.Identifier{Value: "v"}},
			},
		},
	}
	setFn := &ast.FunctionDecl{
		Name: &ast.Identifier{Value: "set"},
		Params: []ast.Param{{Name: &ast.Identifier{Value: "value"}, Type: &ast.NamedTypeExpr{Name: "u64"}}},
		Body: &ast.BlockStatement{
			Statements: []ast.Statement{
				&ast.LetStatement{
					Name: &ast.Identifier{Value: "tmp"},
					Value: &ast.Identifier{Value: "value"},
				},
			},
		},
	}
	abi := &ast.AbiDecl{
		Name: &ast.Identifier{Value: "Counter"},
		Methods: []*ast.FunctionDecl{
			{Name: &ast.Identifier{Value: "get"}, Return: &ast.NamedTypeExpr{Name: "u64"}},
			{Name: &ast.Identifier{Value: "set"}, Params: []ast.Param{{Name: &ast.Identifier{Value: "value"}, Type: &ast.NamedTypeExpr{Name: "u64"}}}},
		},
	}
	return &ast.Program{
		Kind: ast.KindContract,
		Name: "counter",
		Decls: []ast.Decl{abi, getFn, setFn},
	}
}

func TestRunLowersAndAllocatesContract(t *testing.T) {
	res, err := Run(contractProgram(), Options{Opt: OptRelease, Features: config.Features{}})
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	for _, d := range res.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Message)
	}
	if len(res.Module.Functions) != 2 {
		t.Fatalf("expected 2 lowered functions, got %d", len(res.Module.Functions))
	}
	if len(res.AbiEntries) != 2 {
		t.Fatalf("expected 2 ABI entries, got %d", len(res.AbiEntries))
	}
	for _, e := range res.AbiEntries {
		if e.Selector == 0 {
			t.Errorf("entry %q has an unset selector", e.Name)
		}
	}
	if res.Allocated == nil {
		t.Fatal("expected a populated Allocated program")
	}
	if _, ok := res.Allocated.Program.Labels["get"]; !ok {
		t.Error("expected the lowered program to label the get function's entry")
	}
	if _, ok := res.Allocated.Program.Labels["set"]; !ok {
		t.Error("expected the lowered program to label the set function's entry")
	}
}

func TestRunSelectorDispatchSnapshot(t *testing.T) {
	res, err := Run(contractProgram(), Options{Opt: OptRelease, Features: config.Features{}})
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	var out string
	for _, e := range res.AbiEntries {
		out += fmt.Sprintf("%s -> selector=0x%x params=%d\n", e.Name, e.Selector, len(e.Params))
	}
	snaps.MatchSnapshot(t, out)
}
