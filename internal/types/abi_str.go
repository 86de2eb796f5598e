package types

import (
	"bytes"
	"fmt"
)

// AbiStr renders t as the canonical ABI type string: the textual form used
// in a contract's JSON ABI description and in diagnostics. The algorithm is
// a straightforward recursive buffer printer, following the convention
// internal/ast's String methods use (one case per node kind, bytes.Buffer
// accumulation) generalized from printing source syntax to printing
// canonical type names.
//
// The literal tokens below follow abi_generation/abi_str.rs's TypeInfo::
// abi_str match arms: "contract" carries no name (only ContractCaller
// does), Numeric prints its u64 default rather than the word "numeric",
// Alias is transparent (it prints its aliased type, never its own name),
// and a reference prints as "__ref T" / "__ref mut T" rather than an
// invented ref<T> notation — abi_str.rs's own "TODO: no references in
// ABIs according to the RFC. Or we want to have them?" is answered the
// way the ground truth already answers it: the string exists, callers
// that don't want references in a public ABI reject it upstream instead.
func AbiStr(t *TypeInfo) string {
	var buf bytes.Buffer
	writeAbiStr(&buf, t)
	return buf.String()
}

func writeAbiStr(buf *bytes.Buffer, t *TypeInfo) {
	if t == nil {
		buf.WriteString("")
		return
	}
	switch t.Kind {
	case KindUnknown:
		buf.WriteString("unknown")
	case KindPlaceholder:
		buf.WriteString("_")
	case KindUnknownGeneric:
		buf.WriteString("generic")
	case KindNumeric:
		buf.WriteString("u64") // u64 is the default
	case KindUnsignedInteger:
		fmt.Fprintf(buf, "u%d", t.Bits)
	case KindBoolean:
		buf.WriteString("bool")
	case KindB256:
		buf.WriteString("b256")
	case KindContract:
		buf.WriteString("contract")
	case KindContractCaller:
		fmt.Fprintf(buf, "contract caller %s", t.ContractName)
	case KindRawUntypedPtr:
		buf.WriteString("raw untyped ptr")
	case KindRawUntypedSlice:
		buf.WriteString("raw untyped slice")
	case KindStringSlice:
		buf.WriteString("str")
	case KindStringArray:
		fmt.Fprintf(buf, "str[%d]", t.Length)
	case KindTuple:
		buf.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeAbiStr(buf, e)
		}
		buf.WriteByte(')')
	case KindArray:
		buf.WriteByte('[')
		writeAbiStr(buf, elemOf(t))
		fmt.Fprintf(buf, "; %d]", t.Length)
	case KindSlice:
		buf.WriteString("__slice ")
		writeAbiStr(buf, elemOf(t))
	case KindStruct:
		buf.WriteString("struct ")
		buf.WriteString(t.Name)
		writeSubstitution(buf, t.Substitution)
	case KindEnum:
		buf.WriteString("enum ")
		buf.WriteString(t.Name)
		writeSubstitution(buf, t.Substitution)
	case KindAlias:
		// Transparent: an alias prints the type it stands for, never its
		// own name, matching Alias { ty, .. } => ty.abi_str(...).
		writeAbiStr(buf, t.Inner)
	case KindTraitType:
		fmt.Fprintf(buf, "trait type %s", t.Name)
	case KindRef:
		buf.WriteString("__ref ")
		if t.Mutable {
			buf.WriteString("mut ")
		}
		writeAbiStr(buf, t.Inner)
	case KindNever:
		buf.WriteString("never")
	case KindErrorRecovery:
		buf.WriteString("unknown due to error")
	default:
		buf.WriteString("?")
	}
}

func elemOf(t *TypeInfo) *TypeInfo {
	if len(t.Elems) == 0 {
		return Unknown()
	}
	return t.Elems[0]
}

// writeSubstitution prints a struct/enum's generic-parameter list, joined
// without a separating space, matching
// decl.generic_parameters.iter()...join(",").
func writeSubstitution(buf *bytes.Buffer, subst []*TypeInfo) {
	if len(subst) == 0 {
		return
	}
	buf.WriteByte('<')
	for i, s := range subst {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeAbiStr(buf, s)
	}
	buf.WriteByte('>')
}
