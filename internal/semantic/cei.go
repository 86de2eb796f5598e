package semantic

import (
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/diagnostics"
)

// checkCEIWrite implements the Checks-Effects-Interactions lint: a storage
// write observed after an Interaction (a call that may reach another
// contract) earlier in the same function body is a warning-only finding,
// never a hard error, since it is frequently intentional (e.g. a
// reentrancy guard already covers the case).
func (a *Analyzer) checkCEIWrite(target ast.Expression, stmt ast.Statement) {
	if !isStorageWrite(target) {
		return
	}
	if a.sawInteraction {
		a.diags.Warnf(diagnostics.CodeCEIViolation, spanOf(stmt),
			"storage write after an external interaction; checks-effects-interactions ordering may be violated")
	}
}

// isStorageWrite reports whether target denotes a write to contract
// storage. In the absence of a full storage-slot type in this AST, a
// write through a field access on the implicit contract-storage receiver
// (`storage.<field>`) is the shape this lint watches for.
func isStorageWrite(target ast.Expression) bool {
	fa, ok := target.(*ast.FieldAccessExpression)
	if !ok {
		return false
	}
	id, ok := fa.Receiver.(*ast.Identifier)
	return ok && id.Value == "storage"
}
