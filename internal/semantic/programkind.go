package semantic

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/diagnostics"
	"github.com/ion-lang/ionc/internal/types"
)

// checkProgramKind validates the program-kind-specific rules: scripts and
// predicates need exactly one `main`; a predicate's `main` returns bool;
// libraries forbid impure functions; contracts collect their ABI entries
// (left for the caller to read back via CollectAbiEntries, since the asm
// builder needs the same list).
func (a *Analyzer) checkProgramKind(prog *ast.Program) {
	mains := 0
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if fn.Name.Value == "main" {
			mains++
			if prog.Kind == ast.KindPredicate {
				if fn.Return == nil {
					a.diags.Errorf(diagnostics.CodeProgramKindValidation, spanOf(fn), "predicate main must return bool")
				} else if rt := a.resolveTypeExpr(fn.Return); !types.Equal(rt, types.Boolean()) {
					a.diags.Errorf(diagnostics.CodeProgramKindValidation, spanOf(fn), "predicate main must return bool, found %s", rt)
				}
			}
		}
		if prog.Kind == ast.KindLibrary && !fn.Pure {
			a.diags.Errorf(diagnostics.CodePurityViolation, spanOf(fn), "library function %q must be pure", fn.Name.Value)
		}
	}

	switch prog.Kind {
	case ast.KindScript, ast.KindPredicate:
		if mains != 1 {
			a.diags.Errorf(diagnostics.CodeProgramKindValidation, spanOf(prog), "%s requires exactly one main function, found %d", prog.Kind, mains)
		}
	}
}

// AbiEntry is one collected entry point of a contract's public interface.
type AbiEntry struct {
	Name string
	Params []*types.TypeInfo
	Return *types.TypeInfo
	// Selector is the 4-byte function selector the contract's entry-point
	// dispatch switches on, the first 4 bytes of the sha256 digest of the
	// entry's canonical signature string, consumed by the selector-switch
	// prologue the asm builder emits.
	Selector uint64
}

// CollectAbiEntries gathers every method declared across the abi blocks a
// contract program implements, in declaration order, for the downward
// ABI description output.
func (a *Analyzer) CollectAbiEntries(prog *ast.Program) []AbiEntry {
	var entries []AbiEntry
	for _, d := range prog.Decls {
		abiDecl, ok := d.(*ast.AbiDecl)
		if !ok {
			continue
		}
		for _, m := range abiDecl.Methods {
			fd := a.declFromFunctionAST(m)
			entries = append(entries, AbiEntry{
				Name: fd.Name,
				Params: fd.Params,
				Return: fd.Return,
				Selector: selectorOf(fd.Name, fd.Params),
			})
		}
	}
	return entries
}

// selectorOf computes the 4-byte function selector for a canonical
// signature built from name and params' ABI type strings, e.g.
// "transfer(u64,b256)": the digest's leading 4 bytes read big-endian and
// widened to uint64 (only the low 4 bytes are ever non-zero).
func selectorOf(name string, params []*types.TypeInfo) uint64 {
	var sig bytes.Buffer
	sig.WriteString(name)
	sig.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sig.WriteByte(',')
		}
		sig.WriteString(types.AbiStr(p))
	}
	sig.WriteByte(')')
	digest := sha256.Sum256(sig.Bytes())
	return uint64(binary.BigEndian.Uint32(digest[:4]))
}
