package types

import (
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"
)

// RoundTrips checks the abi_str round-trip property: it parses s —
// expected to be AbiStr(t) for some concrete t — back into a structural
// shape descriptor and reports whether that shape matches t, without
// re-entering the production parser (the full language grammar lives
// elsewhere and has no business describing ABI strings).
//
// Built the way a package-level *parsec.AST composes named combinators
// and drives them over a scanner with Parsewith, using Endof to confirm
// the whole string was consumed.
func RoundTrips(t *TypeInfo, s string) bool {
	shape, ok := parseAbiShape(s)
	if !ok {
		return false
	}
	return shapeMatches(t, shape)
}

// abiShape is a minimal structural descriptor produced by abiGrammar: enough
// to check the printer round-trips without building a second TypeInfo.
type abiShape struct {
	name  string
	bits  int
	elems []abiShape
	len   int
	isRef bool
	mut   bool
}

var abiAST = parsec.NewAST("abi_str", 100)

// pShapeRef is a forward reference to pShape: goparsec combinators capture
// their operands by value at construction time, so the recursive
// alternatives (tuple/array/slice/ref all contain a nested shape) close
// over this indirection rather than over pShape itself, which is still
// being built while they are constructed.
func pShapeRef(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
	return pShape(s)
}

var (
	pUint       = parsec.TokenExact(`u[0-9]+`, "UINT")
	pPrim       = parsec.TokenExact(`bool|b256|unknown|generic|str`, "PRIM")
	pRawPtr     = parsec.Atom("raw untyped ptr", "RAWPTR")
	pRawSlice   = parsec.Atom("raw untyped slice", "RAWSLICE")
	pNever      = parsec.Atom("never", "NEVER")
	pErrorRec   = parsec.Atom("unknown due to error", "ERRORREC")
	pBlank      = parsec.Atom("_", "PLACEHOLDER")
	pIdent      = parsec.TokenExact(`[A-Za-z_][A-Za-z0-9_]*`, "IDENT")
	pInt        = parsec.Int()

	pStrArray = abiAST.And("str_array", nil,
		parsec.Atom("str[", "STRARR"), pInt, parsec.Atom("]", "]"))

	pTuple = abiAST.And("tuple", nil,
		parsec.Atom("(", "("),
		abiAST.Kleene("elems", nil, pShapeRef, parsec.Atom(",", ",")),
		parsec.Atom(")", ")"))

	pArray = abiAST.And("array", nil,
		parsec.Atom("[", "["), pShapeRef, parsec.Atom(";", ";"), pInt, parsec.Atom("]", "]"))

	pSlice = abiAST.And("slice", nil,
		parsec.Atom("__slice ", "USLICE"), pShapeRef)

	pRefMut = abiAST.And("ref", nil,
		parsec.Atom("__ref mut ", "UREFMUT"), pShapeRef)
	pRef = abiAST.And("ref", nil,
		parsec.Atom("__ref ", "UREF"), pShapeRef)

	pContractCaller = abiAST.And("contract_caller", nil,
		parsec.Atom("contract caller ", "CCALLER"), pIdent)
	pContract  = parsec.Atom("contract", "CONTRACT")
	pTraitType = abiAST.And("trait_type", nil,
		parsec.Atom("trait type ", "TRAITTYPE"), pIdent)

	pTypeArgs = abiAST.Maybe("type_args", nil, abiAST.And("args", nil,
		parsec.Atom("<", "<"),
		abiAST.Kleene("arg_list", nil, pShapeRef, parsec.Atom(",", ",")),
		parsec.Atom(">", ">")))
	pStruct = abiAST.And("struct", nil, parsec.Atom("struct ", "STRUCT"), pIdent, pTypeArgs)
	pEnum   = abiAST.And("enum", nil, parsec.Atom("enum ", "ENUM"), pIdent, pTypeArgs)
	pNamed  = abiAST.And("named", nil, pIdent, pTypeArgs)
)

// placeholder alias kept distinct from the package-level var above because
// "_" collides with Go's blank identifier when used as a value name.
var pPlaceholder = pBlank

// pShape is the entry point: every AbiStr output form, tried in an order
// where the more specific literal prefixes shadow the bare identifier
// fallback. pRefMut must precede pRef, and pContractCaller must precede
// pContract, since one is a strict prefix of the other; pPlaceholder ("_")
// follows pSlice/pRefMut/pRef, whose literals also begin with "_".
// It is assigned in init rather than in the var block above: the recursive
// alternatives reach pShape through pShapeRef, and a package-level
// initializer that depends on itself that way is an initialization cycle.
var pShape parsec.Parser

func init() {
	pShape = abiAST.OrdChoice("shape", nil,
		pUint, pStrArray, pRawPtr, pRawSlice, pErrorRec, pNever,
		pContractCaller, pContract, pTraitType, pStruct, pEnum,
		pPrim, pTuple, pArray, pSlice, pRefMut, pRef,
		pPlaceholder, pNamed)
}

func parseAbiShape(s string) (abiShape, bool) {
	root, scanner := abiAST.Parsewith(pShape, parsec.NewScanner([]byte(s)))
	if root == nil || !scanner.Endof() {
		return abiShape{}, false
	}
	return toShape(root), true
}

func toShape(node parsec.Queryable) abiShape {
	children := node.GetChildren()
	switch node.GetName() {
	case "UINT":
		bits, _ := strconv.Atoi(strings.TrimPrefix(node.GetValue(), "u"))
		return abiShape{name: "uint", bits: bits}
	case "PRIM":
		return abiShape{name: node.GetValue()}
	case "RAWPTR":
		return abiShape{name: "raw_ptr"}
	case "RAWSLICE":
		return abiShape{name: "raw_slice"}
	case "NEVER":
		return abiShape{name: "never"}
	case "ERRORREC":
		return abiShape{name: "error_recovery"}
	case "PLACEHOLDER":
		return abiShape{name: "_"}
	case "CONTRACT":
		return abiShape{name: "contract"}
	case "str_array":
		n, _ := strconv.Atoi(children[1].GetValue())
		return abiShape{name: "str_array", len: n}
	case "tuple":
		return abiShape{name: "tuple", elems: toShapeList(children[1])}
	case "array":
		return abiShape{name: "array", elems: []abiShape{toShape(children[1])}, len: mustInt(children[3])}
	case "slice":
		return abiShape{name: "slice", elems: []abiShape{toShape(children[1])}}
	case "ref":
		mut := strings.Contains(children[0].GetValue(), "mut")
		return abiShape{isRef: true, mut: mut, elems: []abiShape{toShape(children[1])}}
	case "contract_caller":
		return abiShape{name: "ContractCaller", elems: []abiShape{{name: children[1].GetValue()}}}
	case "trait_type":
		return abiShape{name: "trait_type", elems: []abiShape{{name: children[1].GetValue()}}}
	case "struct":
		shape := abiShape{name: children[1].GetValue()}
		if len(children) > 2 {
			shape.elems = toShapeList(children[2])
		}
		return shape
	case "enum":
		shape := abiShape{name: children[1].GetValue()}
		if len(children) > 2 {
			shape.elems = toShapeList(children[2])
		}
		return shape
	case "named":
		shape := abiShape{name: children[0].GetValue()}
		if len(children) > 1 {
			shape.elems = toShapeList(children[1])
		}
		return shape
	default:
		if len(children) == 1 {
			return toShape(children[0])
		}
		return abiShape{}
	}
}

// toShapeList converts a Kleene-built list node (zero or more comma
// separated shapes) into a flat []abiShape.
func toShapeList(node parsec.Queryable) []abiShape {
	children := node.GetChildren()
	out := make([]abiShape, 0, len(children))
	for _, c := range children {
		out = append(out, toShape(c))
	}
	return out
}

func mustInt(node parsec.Queryable) int {
	n, _ := strconv.Atoi(node.GetValue())
	return n
}

func shapeMatches(t *TypeInfo, shape abiShape) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindUnsignedInteger:
		return shape.name == "uint" && shape.bits == t.Bits
	case KindBoolean:
		return shape.name == "bool"
	case KindB256:
		return shape.name == "b256"
	case KindStringSlice:
		return shape.name == "str"
	case KindStringArray:
		return shape.name == "str_array" && shape.len == t.Length
	case KindRawUntypedPtr:
		return shape.name == "raw_ptr"
	case KindRawUntypedSlice:
		return shape.name == "raw_slice"
	case KindUnknown:
		return shape.name == "unknown"
	case KindPlaceholder:
		return shape.name == "_"
	case KindUnknownGeneric:
		return shape.name == "generic"
	case KindNumeric:
		// Numeric defaults to u64, indistinguishable in abi_str from an
		// explicit 64-bit unsigned integer.
		return shape.name == "uint" && shape.bits == 64
	case KindNever:
		return shape.name == "never"
	case KindErrorRecovery:
		return shape.name == "error_recovery"
	case KindTuple:
		if shape.name != "tuple" || len(shape.elems) != len(t.Elems) {
			return false
		}
		for i, e := range t.Elems {
			if !shapeMatches(e, shape.elems[i]) {
				return false
			}
		}
		return true
	case KindArray:
		if shape.name != "array" || shape.len != t.Length || len(shape.elems) != 1 {
			return false
		}
		return shapeMatches(elemOf(t), shape.elems[0])
	case KindSlice:
		if shape.name != "slice" || len(shape.elems) != 1 {
			return false
		}
		return shapeMatches(elemOf(t), shape.elems[0])
	case KindStruct, KindEnum, KindTraitType:
		name := shape.name
		if t.Kind == KindTraitType {
			if name != "trait_type" || len(shape.elems) != 1 {
				return false
			}
			return shape.elems[0].name == t.Name
		}
		if name != t.Name || len(shape.elems) != len(t.Substitution) {
			return false
		}
		for i, s := range t.Substitution {
			if !shapeMatches(s, shape.elems[i]) {
				return false
			}
		}
		return true
	case KindAlias:
		// Transparent: the printed form is whatever the aliased type
		// prints, so the round-trip check recurses into it directly.
		return shapeMatches(t.Inner, shape)
	case KindContract:
		return shape.name == "contract"
	case KindContractCaller:
		return shape.name == "ContractCaller" && len(shape.elems) == 1 && shape.elems[0].name == t.ContractName
	case KindRef:
		if !shape.isRef || shape.mut != t.Mutable || len(shape.elems) != 1 {
			return false
		}
		return shapeMatches(t.Inner, shape.elems[0])
	default:
		return false
	}
}
