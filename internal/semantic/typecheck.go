package semantic

import (
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/diagnostics"
	"github.com/ion-lang/ionc/internal/types"
)

// typeCheck walks every function body, keeping the current scope and the
// purity/CEI tracking state in fields on Analyzer.
func (a *Analyzer) typeCheck(prog *ast.Program) {
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		a.checkFunctionBody(fn)
	}
}

func (a *Analyzer) checkFunctionBody(fn *ast.FunctionDecl) {
	saved := a.current
	a.current = a.root.push()
	a.inPureContext = fn.Pure
	a.sawInteraction = false
	defer func() { a.current = saved }()

	for _, p := range fn.Params {
		a.current.define(p.Name.Value, symbol{kind: symVariable, typ: a.resolveTypeExpr(p.Type)})
	}
	var want *types.TypeInfo
	if fn.Return != nil {
		want = a.resolveTypeExpr(fn.Return)
	} else {
		want = types.Unknown()
	}
	a.checkBlock(fn.Body, want)
}

func (a *Analyzer) checkBlock(b *ast.BlockStatement, fnReturn *types.TypeInfo) {
	saved := a.current
	a.current = a.current.push()
	defer func() { a.current = saved }()

	for _, stmt := range b.Statements {
		a.checkStatement(stmt, fnReturn)
	}
}

func (a *Analyzer) checkStatement(stmt ast.Statement, fnReturn *types.TypeInfo) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		valType := a.checkExpr(s.Value)
		want := types.Unknown()
		if s.Type != nil {
			want = a.resolveTypeExpr(s.Type)
		}
		resolved, err := types.ResolveType(want, valType)
		if err != nil {
			a.diags.Errorf(diagnostics.CodeTypeMismatch, spanOf(s), "%s", err.Error())
			resolved = types.ErrorRecovery()
		}
		kind := symVariable
		a.current.define(s.Name.Value, symbol{kind: kind, typ: resolved})

	case *ast.AssignStatement:
		a.checkExpr(s.Target)
		a.checkExpr(s.Value)
		a.checkCEIWrite(s.Target, s)

	case *ast.ReturnStatement:
		var got *types.TypeInfo
		if s.Value != nil {
			got = a.checkExpr(s.Value)
		} else {
			got = types.Unknown()
		}
		if _, err := types.ResolveType(fnReturn, got); err != nil {
			a.diags.Errorf(diagnostics.CodeTypeMismatch, spanOf(s), "%s", err.Error())
		}

	case *ast.IfStatement:
		a.checkExpr(s.Condition)
		a.checkBlock(s.Then, fnReturn)
		if s.Else != nil {
			a.checkBlock(s.Else, fnReturn)
		}

	case *ast.WhileStatement:
		a.checkExpr(s.Condition)
		a.checkBlock(s.Body, fnReturn)

	case *ast.ExpressionStatement:
		a.checkExpr(s.Expression)
		if isInteraction(s.Expression) {
			a.sawInteraction = true
		}

	case *ast.BlockStatement:
		a.checkBlock(s, fnReturn)
	}
}

// checkExpr infers (and annotates, conceptually) an expression's type.
// Unresolved identifiers and field lookups produce a name-resolution
// diagnostic and types.ErrorRecovery rather than aborting the walk.
func (a *Analyzer) checkExpr(expr ast.Expression) *types.TypeInfo {
	t := a.checkExprUncached(expr)
	a.exprTypes[expr] = t
	return t
}

func (a *Analyzer) checkExprUncached(expr ast.Expression) *types.TypeInfo {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Numeric()
	case *ast.BoolLiteral:
		return types.Boolean()
	case *ast.StringLiteral:
		return types.StringSlice()
	case *ast.Identifier:
		if sym, ok := a.current.lookup(e.Value); ok {
			return sym.typ
		}
		a.diags.Errorf(diagnostics.CodeNameResolution, spanOf(e), "unresolved identifier %q", e.Value)
		return types.ErrorRecovery()
	case *ast.BinaryExpression:
		left := a.checkExpr(e.Left)
		right := a.checkExpr(e.Right)
		if isComparison(e.Operator) {
			return types.Boolean()
		}
		resolved, err := types.ResolveType(left, right)
		if err != nil {
			a.diags.Errorf(diagnostics.CodeTypeMismatch, spanOf(e), "%s", err.Error())
			return types.ErrorRecovery()
		}
		return resolved
	case *ast.UnaryExpression:
		return a.checkExpr(e.Right)
	case *ast.CallExpression:
		for _, arg := range e.Args {
			a.checkExpr(arg)
		}
		if isPureViolatingCallee(e.Callee) && a.inPureContext {
			a.diags.Errorf(diagnostics.CodePurityViolation, spanOf(e), "impure call in pure function")
		}
		return types.Unknown()
	case *ast.MethodCallExpression:
		a.checkExpr(e.Receiver)
		for _, arg := range e.Args {
			a.checkExpr(arg)
		}
		return types.Unknown()
	case *ast.FieldAccessExpression:
		a.checkExpr(e.Receiver)
		return types.Unknown()
	case *ast.IndexExpression:
		recv := a.checkExpr(e.Receiver)
		a.checkExpr(e.Index)
		if recv != nil && len(recv.Elems) > 0 {
			return recv.Elems[0]
		}
		return types.Unknown()
	case *ast.TupleExpression:
		elems := make([]*types.TypeInfo, 0, len(e.Elems))
		for _, el := range e.Elems {
			elems = append(elems, a.checkExpr(el))
		}
		return types.TupleOf(elems...)
	case *ast.ArrayExpression:
		var elemType *types.TypeInfo = types.Unknown()
		for _, el := range e.Elems {
			elemType = a.checkExpr(el)
		}
		return types.ArrayOf(elemType, len(e.Elems))
	case *ast.StructLiteral:
		for _, f := range e.Fields {
			a.checkExpr(f.Value)
		}
		refs := a.decls.Lookup(e.Name)
		for _, ref := range refs {
			if decl, ok := a.decls.Struct(ref); ok {
				return types.StructOf(ref.DeclID, decl.Name)
			}
		}
		return types.ErrorRecovery()
	default:
		return types.Unknown()
	}
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

// isInteraction reports whether expr is a call that may reach another
// contract, for the CEI lint: a top-level method call named "call" or
// "transfer", whatever its receiver's type. Nested calls and every other
// expression are treated as plain calls.
func isInteraction(expr ast.Expression) bool {
	stmt, ok := expr.(*ast.MethodCallExpression)
	if !ok {
		return false
	}
	return stmt.Method == "call" || stmt.Method == "transfer"
}

func isPureViolatingCallee(callee ast.Expression) bool {
	id, ok := callee.(*ast.Identifier)
	if !ok {
		return false
	}
	switch id.Value {
	case "storage_write", "storage_read", "transfer", "log":
		return true
	default:
		return false
	}
}
