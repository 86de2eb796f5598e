package ir

import (
	"github.com/ion-lang/ionc/internal/ast"
	"github.com/ion-lang/ionc/internal/types"
)

// TypeOracle supplies the resolved type of an expression and a type
// annotation, bridging the semantic analyzer's side table (the typed AST
// represented as input AST plus a type table, see analyzer.go's
// exprTypes) without this package depending on internal/semantic
// directly.
type TypeOracle interface {
	TypeOf(expr ast.Expression) *types.TypeInfo
}

// Builder lowers a checked *ast.Program into SSA form. It holds one
// name-to-slot map for the function being built (not one per enclosing
// block), adapting internal/bytecode/compiler_core.go's flat
// locals/scopeDepth bookkeeping to SSA blocks.
type Builder struct {
	oracle TypeOracle
	fn *Function
	block *Block
	locals map[string]int // name -> index into fn.Args (>= 0), or -(local-storage slot + 1) (< 0)
}

// NewBuilder returns a builder that will consult oracle for expression
// types.
func NewBuilder(oracle TypeOracle) *Builder {
	return &Builder{oracle: oracle}
}

// BuildFunction lowers one function declaration (with a body) to SSA.
func (b *Builder) BuildFunction(decl *ast.FunctionDecl, retType *types.TypeInfo) *Function {
	fn := &Function{Name: decl.Name.Value, Return: retType}
	for i, p := range decl.Params {
		fn.Args = append(fn.Args, Argument{Name: p.Name.Value, Type: b.oracle.TypeOf(p.Name)})
		_ = i
	}
	b.fn = fn
	b.locals = make(map[string]int)
	for i, arg := range fn.Args {
		b.locals[arg.Name] = i
	}

	entry := &Block{Label: "entry"}
	fn.Blocks = append(fn.Blocks, entry)
	b.block = entry

	if decl.Body != nil {
		b.lowerBlock(decl.Body)
	}
	if len(b.block.Instructions) == 0 || b.block.Instructions[len(b.block.Instructions)-1].Op != OpRet {
		b.emit(Instruction{Op: OpRet})
	}
	return fn
}

func (b *Builder) lowerBlock(block *ast.BlockStatement) {
	for _, stmt := range block.Statements {
		b.lowerStatement(stmt)
	}
}

func (b *Builder) lowerStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		val := b.lowerExpr(s.Value)
		slot := len(b.fn.LocalStorage)
		b.fn.LocalStorage = append(b.fn.LocalStorage, Local{Name: s.Name.Value, Type: b.oracle.TypeOf(s.Value)})
		b.locals[s.Name.Value] = -(slot + 1) // negative encodes a local-storage index, distinct from args
		b.emit(Instruction{Op: OpStore, Addr: localAddr(slot), Val: val})

	case *ast.AssignStatement:
		val := b.lowerExpr(s.Value)
		addr := b.lowerLValue(s.Target)
		b.emit(Instruction{Op: OpStore, Addr: addr, Val: val})

	case *ast.ReturnStatement:
		var v Value
		if s.Value != nil {
			v = b.lowerExpr(s.Value)
		}
		b.emit(Instruction{Op: OpRet, RetVal: v})

	case *ast.IfStatement:
		b.lowerIf(s)

	case *ast.WhileStatement:
		b.lowerWhile(s)

	case *ast.ExpressionStatement:
		b.lowerExpr(s.Expression)

	case *ast.BlockStatement:
		b.lowerBlock(s)
	}
}

func localAddr(slot int) Value {
	return Constant{Type: types.RawUntypedPtr(), Bits: uint64(slot)}
}

func (b *Builder) lowerLValue(expr ast.Expression) Value {
	switch e := expr.(type) {
	case *ast.Identifier:
		if slot, ok := b.locals[e.Value]; ok && slot < 0 {
			return localAddr(-slot - 1)
		}
		return Constant{}
	case *ast.FieldAccessExpression:
		agg := b.lowerExpr(e.Receiver)
		b.emit(Instruction{Op: OpGetPointer, Aggregate: agg, Field: e.Field})
		return b.lastResult()
	default:
		return Constant{}
	}
}

func (b *Builder) lowerIf(s *ast.IfStatement) {
	cond := b.lowerExpr(s.Condition)
	thenLabel := b.fn.NewLabel("if_then")
	elseLabel := b.fn.NewLabel("if_else")
	endLabel := b.fn.NewLabel("if_end")

	b.emit(Instruction{Op: OpConditionalBranch, Cond: cond, TrueTarget: thenLabel, FalseTarget: elseLabel})
	condLabel := b.block.Label

	thenBlock := &Block{Label: thenLabel, Predecessors: []string{condLabel}}
	b.fn.Blocks = append(b.fn.Blocks, thenBlock)
	b.block = thenBlock
	b.lowerBlock(s.Then)
	b.emit(Instruction{Op: OpBranch, Target: endLabel})
	thenEnd := b.block.Label

	elseBlock := &Block{Label: elseLabel, Predecessors: []string{condLabel}}
	b.fn.Blocks = append(b.fn.Blocks, elseBlock)
	b.block = elseBlock
	if s.Else != nil {
		b.lowerBlock(s.Else)
	}
	b.emit(Instruction{Op: OpBranch, Target: endLabel})
	elseEnd := b.block.Label

	endBlock := &Block{Label: endLabel, Predecessors: []string{thenEnd, elseEnd}}
	b.fn.Blocks = append(b.fn.Blocks, endBlock)
	b.block = endBlock
}

func (b *Builder) lowerWhile(s *ast.WhileStatement) {
	headLabel := b.fn.NewLabel("while_head")
	bodyLabel := b.fn.NewLabel("while_body")
	endLabel := b.fn.NewLabel("while_end")

	b.emit(Instruction{Op: OpBranch, Target: headLabel})

	headBlock := &Block{Label: headLabel, Predecessors: []string{b.block.Label}}
	b.fn.Blocks = append(b.fn.Blocks, headBlock)
	b.block = headBlock
	cond := b.lowerExpr(s.Condition)
	b.emit(Instruction{Op: OpConditionalBranch, Cond: cond, TrueTarget: bodyLabel, FalseTarget: endLabel})

	bodyBlock := &Block{Label: bodyLabel, Predecessors: []string{headLabel}}
	b.fn.Blocks = append(b.fn.Blocks, bodyBlock)
	b.block = bodyBlock
	b.lowerBlock(s.Body)
	b.emit(Instruction{Op: OpBranch, Target: headLabel})
	headBlock.Predecessors = append(headBlock.Predecessors, b.block.Label)

	endBlock := &Block{Label: endLabel, Predecessors: []string{headLabel}}
	b.fn.Blocks = append(b.fn.Blocks, endBlock)
	b.block = endBlock
}

func (b *Builder) lowerExpr(expr ast.Expression) Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return Constant{Type: b.oracle.TypeOf(e), Bits: e.Value}
	case *ast.BoolLiteral:
		var bits uint64
		if e.Value {
			bits = 1
		}
		return Constant{Type: types.Boolean(), Bits: bits}
	case *ast.Identifier:
		if slot, ok := b.locals[e.Value]; ok {
			if slot >= 0 {
				return ArgumentValue{Index: slot}
			}
			b.emit(Instruction{Op: OpLoad, Addr: localAddr(-slot - 1), Type: b.oracle.TypeOf(e)})
			return b.lastResult()
		}
		return Constant{}
	case *ast.BinaryExpression:
		left := b.lowerExpr(e.Left)
		right := b.lowerExpr(e.Right)
		// Binary arithmetic/comparison lowers to an opaque asm block here:
		// the concrete opcode selection (ADD/SUB/EQ/...) is an asm-builder
		// concern (internal/asm), not an IR-level one.
		b.emit(Instruction{Op: OpAsmBlock, Type: b.oracle.TypeOf(e), RawAsm: e.Operator, Args: []Value{left, right}})
		return b.lastResult()
	case *ast.CallExpression:
		var args []Value
		for _, a := range e.Args {
			args = append(args, b.lowerExpr(a))
		}
		callee := ""
		if id, ok := e.Callee.(*ast.Identifier); ok {
			callee = id.Value
		}
		b.emit(Instruction{Op: OpCall, Callee: callee, Args: args, Type: b.oracle.TypeOf(e)})
		return b.lastResult()
	case *ast.FieldAccessExpression:
		agg := b.lowerExpr(e.Receiver)
		b.emit(Instruction{Op: OpExtractValue, Aggregate: agg, Field: e.Field, Type: b.oracle.TypeOf(e)})
		return b.lastResult()
	default:
		return Constant{}
	}
}

func (b *Builder) emit(inst Instruction) {
	b.block.Instructions = append(b.block.Instructions, inst)
}

func (b *Builder) lastResult() Value {
	return InstructionValue{Block: b.block.Label, Index: len(b.block.Instructions) - 1}
}
