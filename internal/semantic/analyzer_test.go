package semantic

import (
	"testing"

	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/declengine"
	"github.com/ion-lang/ionc/internal/diagnostics"
	"github.com/ion-lang/ionc/internal/types"
)

// S1: a script's un-annotated numeric `let` defaults to u64.
func TestScriptNumericDefaulting(t *testing.T) {
	use := &ast.Identifier{Value: "x"}
	prog := &ast.Program{
		Kind: ast.KindScript,
		Name: "s1",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Name:   &ast.Identifier{Value: "main"},
				Return: &ast.NamedTypeExpr{Name: "u64"},
				Body: &ast.BlockStatement{
					Statements: []ast.Statement{
						&ast.LetStatement{
							Name:  &ast.Identifier{Value: "x"},
							Value: &ast.IntegerLiteral{Value: 1},
						},
						&ast.ReturnStatement{Value: use},
					},
				},
			},
		},
	}

	diags := diagnostics.NewHandler()
	a := NewAnalyzer(declengine.New(), diags)
	a.Analyze(prog)

	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Diagnostics())
	}
	if got := a.TypeOf(use); !types.Equal(got, types.UInt(64)) {
		t.Fatalf("expected x to default to u64, got %s", types.AbiStr(got))
	}
}

// S3: a storage write after an interaction produces a CEI warning, not an
// error.
func TestCEIViolationIsWarningOnly(t *testing.T) {
	prog := &ast.Program{
		Kind: ast.KindContract,
		Name: "s3",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Name: &ast.Identifier{Value: "withdraw"},
				Body: &ast.BlockStatement{
					Statements: []ast.Statement{
						&ast.ExpressionStatement{
							Expression: &ast.MethodCallExpression{
								Receiver: &ast.Identifier{Value: "recipient"},
								Method:   "transfer",
							},
						},
						&ast.AssignStatement{
							Target: &ast.FieldAccessExpression{
								Receiver: &ast.Identifier{Value: "storage"},
								Field:    "balance",
							},
							Value: &ast.IntegerLiteral{Value: 0},
						},
					},
				},
			},
		},
	}

	diags := diagnostics.NewHandler()
	a := NewAnalyzer(declengine.New(), diags)
	a.Analyze(prog)

	found := false
	for _, d := range diags.Diagnostics() {
		if d.Code == diagnostics.CodeCEIViolation {
			found = true
			if d.Level != diagnostics.LevelWarning {
				t.Fatalf("expected CEI violation to be a warning, got %v", d.Level)
			}
		}
	}
	if !found {
		t.Fatal("expected a CEI violation diagnostic")
	}
}

func TestPredicateMainMustReturnBool(t *testing.T) {
	prog := &ast.Program{
		Kind: ast.KindPredicate,
		Name: "p1",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Name:   &ast.Identifier{Value: "main"},
				Return: &ast.NamedTypeExpr{Name: "u64"},
				Body:   &ast.BlockStatement{},
			},
		},
	}

	diags := diagnostics.NewHandler()
	a := NewAnalyzer(declengine.New(), diags)
	a.Analyze(prog)

	if !diags.HasErrors() {
		t.Fatal("expected a program-kind validation error")
	}
}

func TestLibraryForbidsImpureFunctions(t *testing.T) {
	prog := &ast.Program{
		Kind: ast.KindLibrary,
		Name: "lib",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Name: &ast.Identifier{Value: "helper"},
				Pure: false,
				Body: &ast.BlockStatement{},
			},
		},
	}

	diags := diagnostics.NewHandler()
	a := NewAnalyzer(declengine.New(), diags)
	a.Analyze(prog)

	if !diags.HasErrors() {
		t.Fatal("expected a purity-violation error for an impure library function")
	}
}
