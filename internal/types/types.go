// Package types implements the compiler's type lattice: the TypeInfo
// tagged sum, unification, substitution and the abi_str canonical printer.
//
// Grounded on internal/interp/types/type_system.go's registry-of-nominal-
// types shape, generalized from DWScript's class/record/interface lattice
// to this language's struct/enum/trait/alias/reference lattice.
package types

import "fmt"

// Kind tags a TypeInfo's variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlaceholder
	KindUnknownGeneric
	KindNumeric
	KindUnsignedInteger
	KindBoolean
	KindB256
	KindContract
	KindRawUntypedPtr
	KindRawUntypedSlice
	KindStringSlice
	KindStringArray
	KindTuple
	KindArray
	KindSlice
	KindStruct
	KindEnum
	KindAlias
	KindRef
	KindContractCaller
	KindNever
	KindErrorRecovery
	KindTraitType
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindPlaceholder:
		return "Placeholder"
	case KindUnknownGeneric:
		return "UnknownGeneric"
	case KindNumeric:
		return "Numeric"
	case KindUnsignedInteger:
		return "UnsignedInteger"
	case KindBoolean:
		return "Boolean"
	case KindB256:
		return "B256"
	case KindContract:
		return "Contract"
	case KindRawUntypedPtr:
		return "RawUntypedPtr"
	case KindRawUntypedSlice:
		return "RawUntypedSlice"
	case KindStringSlice:
		return "StringSlice"
	case KindStringArray:
		return "StringArray"
	case KindTuple:
		return "Tuple"
	case KindArray:
		return "Array"
	case KindSlice:
		return "Slice"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindAlias:
		return "Alias"
	case KindRef:
		return "Ref"
	case KindContractCaller:
		return "ContractCaller"
	case KindNever:
		return "Never"
	case KindErrorRecovery:
		return "ErrorRecovery"
	case KindTraitType:
		return "TraitType"
	default:
		return "?"
	}
}

// DeclHandle identifies a struct/enum/trait declaration in the declaration
// engine. Defined here (rather than imported from declengine) to avoid an
// import cycle; declengine.DeclRef.DeclID has the same underlying shape.
type DeclHandle struct {
	Index int
	Gen uint32
}

// TypeInfo is the tagged sum over every type variant this language's type
// checker can produce. Only the fields relevant to Kind are populated; the
// rest are zero.
type TypeInfo struct {
	Kind Kind

	// KindUnsignedInteger
	Bits int // 8, 16, 32, 64, 256

	// KindStringArray, KindArray
	Length int

	// KindTuple, KindArray, KindSlice, KindRawUntypedSlice: element type(s)
	Elems []*TypeInfo

	// KindStruct, KindEnum, KindTraitType, KindAlias: nominal declaration
	Decl DeclHandle
	Name string
	Substitution []*TypeInfo

	// KindRef
	Mutable bool
	Inner *TypeInfo

	// KindContract, KindContractCaller: the contract's declared name, for
	// diagnostics; ABI shape comes from the declaration engine.
	ContractName string
}

// Unknown, Never, Boolean, B256 and ErrorRecovery return a fresh TypeInfo
// on each call; Equal compares these Kind-only variants by Kind alone.
// Callers should prefer these constructors over TypeInfo literals.
func Unknown() *TypeInfo { return &TypeInfo{Kind: KindUnknown} }
func Placeholder() *TypeInfo { return &TypeInfo{Kind: KindPlaceholder} }
func UnknownGeneric() *TypeInfo { return &TypeInfo{Kind: KindUnknownGeneric} }
func Numeric() *TypeInfo { return &TypeInfo{Kind: KindNumeric} }
func Boolean() *TypeInfo { return &TypeInfo{Kind: KindBoolean} }
func B256() *TypeInfo { return &TypeInfo{Kind: KindB256} }
func Never() *TypeInfo { return &TypeInfo{Kind: KindNever} }
func ErrorRecovery() *TypeInfo { return &TypeInfo{Kind: KindErrorRecovery} }
func RawUntypedPtr() *TypeInfo { return &TypeInfo{Kind: KindRawUntypedPtr} }
func StringSlice() *TypeInfo { return &TypeInfo{Kind: KindStringSlice} }

// UInt returns an unsigned integer type of the given bit width (8, 16, 32,
// 64 or 256).
func UInt(bits int) *TypeInfo {
	return &TypeInfo{Kind: KindUnsignedInteger, Bits: bits}
}

// StringArray returns a fixed-length byte-string array type.
func StringArray(length int) *TypeInfo {
	return &TypeInfo{Kind: KindStringArray, Length: length}
}

// TupleOf returns a tuple type over elems.
func TupleOf(elems ...*TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: KindTuple, Elems: elems}
}

// ArrayOf returns a fixed-length array of elem.
func ArrayOf(elem *TypeInfo, length int) *TypeInfo {
	return &TypeInfo{Kind: KindArray, Length: length, Elems: []*TypeInfo{elem}}
}

// SliceOf returns a dynamically-sized slice of elem.
func SliceOf(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: KindSlice, Elems: []*TypeInfo{elem}}
}

// RawUntypedSlice returns the raw, untyped slice type (`raw_slice`).
func RawUntypedSlice() *TypeInfo { return &TypeInfo{Kind: KindRawUntypedSlice} }

// StructOf returns a nominal struct type instantiated with the given
// substitution list.
func StructOf(decl DeclHandle, name string, subst ...*TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: KindStruct, Decl: decl, Name: name, Substitution: subst}
}

// EnumOf returns a nominal enum type.
func EnumOf(decl DeclHandle, name string, subst ...*TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: KindEnum, Decl: decl, Name: name, Substitution: subst}
}

// TraitOf returns a trait-object type.
func TraitOf(decl DeclHandle, name string) *TypeInfo {
	return &TypeInfo{Kind: KindTraitType, Decl: decl, Name: name}
}

// AliasOf returns an (unexpanded) alias reference.
func AliasOf(decl DeclHandle, name string, inner *TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: KindAlias, Decl: decl, Name: name, Inner: inner}
}

// RefOf returns a reference type, mutable or not, to inner.
func RefOf(inner *TypeInfo, mutable bool) *TypeInfo {
	return &TypeInfo{Kind: KindRef, Inner: inner, Mutable: mutable}
}

// ContractOf returns the type of a contract's own storage/self type.
func ContractOf(name string) *TypeInfo {
	return &TypeInfo{Kind: KindContract, ContractName: name}
}

// ContractCallerOf returns the type used for cross-contract call handles.
func ContractCallerOf(name string) *TypeInfo {
	return &TypeInfo{Kind: KindContractCaller, ContractName: name}
}

// Equal performs structural equality, the same notion resolve_type uses to
// decide whether two occurrences of a type are the same type. Declaration
// handles are compared by value: two TypeInfo built from different
// substitution lists over the same Decl are not Equal unless every
// substituted type is itself Equal.
func Equal(a, b *TypeInfo) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUnsignedInteger:
		return a.Bits == b.Bits
	case KindStringArray:
		return a.Length == b.Length
	case KindTuple, KindRawUntypedSlice:
		return equalSlices(a.Elems, b.Elems)
	case KindArray:
		return a.Length == b.Length && equalSlices(a.Elems, b.Elems)
	case KindSlice:
		return equalSlices(a.Elems, b.Elems)
	case KindStruct, KindEnum:
		return a.Decl == b.Decl && equalSlices(a.Substitution, b.Substitution)
	case KindTraitType:
		return a.Decl == b.Decl
	case KindAlias:
		return a.Decl == b.Decl && equalSlices(a.Substitution, b.Substitution)
	case KindRef:
		return a.Mutable == b.Mutable && Equal(a.Inner, b.Inner)
	case KindContract, KindContractCaller:
		return a.ContractName == b.ContractName
	default:
		return true
	}
}

func equalSlices(a, b []*TypeInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (t *TypeInfo) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Name)
}
