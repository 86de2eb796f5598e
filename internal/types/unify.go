package types

// Substitute walks t, replacing each KindUnknownGeneric placeholder that
// appears at position i in params with subst[i]. Aggregates are rebuilt
// with their parts substituted, even when nothing in them changes.
func Substitute(t *TypeInfo, params []*TypeInfo, subst []*TypeInfo) *TypeInfo {
	if t == nil {
		return nil
	}
	for i, p := range params {
		if i < len(subst) && Equal(t, p) {
			return subst[i]
		}
	}
	switch t.Kind {
	case KindTuple, KindRawUntypedSlice:
		return &TypeInfo{Kind: t.Kind, Elems: substituteAll(t.Elems, params, subst)}
	case KindArray:
		return &TypeInfo{Kind: t.Kind, Length: t.Length, Elems: substituteAll(t.Elems, params, subst)}
	case KindSlice:
		return &TypeInfo{Kind: t.Kind, Elems: substituteAll(t.Elems, params, subst)}
	case KindStruct, KindEnum:
		return &TypeInfo{Kind: t.Kind, Decl: t.Decl, Name: t.Name, Substitution: substituteAll(t.Substitution, params, subst)}
	case KindRef:
		return &TypeInfo{Kind: t.Kind, Mutable: t.Mutable, Inner: Substitute(t.Inner, params, subst)}
	case KindAlias:
		return &TypeInfo{Kind: t.Kind, Decl: t.Decl, Name: t.Name, Substitution: substituteAll(t.Substitution, params, subst), Inner: Substitute(t.Inner, params, subst)}
	default:
		return t
	}
}

func substituteAll(ts []*TypeInfo, params []*TypeInfo, subst []*TypeInfo) []*TypeInfo {
	if ts == nil {
		return nil
	}
	out := make([]*TypeInfo, len(ts))
	for i, e := range ts {
		out[i] = Substitute(e, params, subst)
	}
	return out
}

// ResolveType unifies `want` (the expected/annotated type, possibly
// Unknown/Placeholder) against `got` (the inferred type of an expression),
// returning the resolved type or an error describing the mismatch.
//
// Unknown unifies with anything, taking on the other side's type (this is
// how an un-annotated `let` binding picks up its value's type). Never
// unifies with anything as the other side (a `return`-only branch).
// ErrorRecovery unifies with anything silently, so that one earlier error
// does not cascade into a pile of unrelated mismatch diagnostics.
func ResolveType(want, got *TypeInfo) (*TypeInfo, error) {
	if want == nil || want.Kind == KindUnknown {
		return defaultNumeric(got), nil
	}
	if got == nil || got.Kind == KindUnknown {
		return defaultNumeric(want), nil
	}
	if want.Kind == KindErrorRecovery || got.Kind == KindErrorRecovery {
		return ErrorRecovery(), nil
	}
	if want.Kind == KindNever {
		return got, nil
	}
	if got.Kind == KindNever {
		return want, nil
	}
	if want.Kind == KindNumeric && isIntegerKind(got) {
		return got, nil
	}
	if got.Kind == KindNumeric && isIntegerKind(want) {
		return want, nil
	}
	if Equal(want, got) {
		return want, nil
	}
	return nil, &MismatchError{Want: want, Got: got}
}

func isIntegerKind(t *TypeInfo) bool {
	return t.Kind == KindUnsignedInteger || t.Kind == KindNumeric
}

// defaultNumeric applies the numeric-defaulting rule: an un-annotated
// numeric literal with no other constraint defaults to u64.
func defaultNumeric(t *TypeInfo) *TypeInfo {
	if t != nil && t.Kind == KindNumeric {
		return UInt(64)
	}
	return t
}

// MismatchError is the recoverable "type mismatch" diagnostic.
type MismatchError struct {
	Want, Got *TypeInfo
}

func (e *MismatchError) Error() string {
	return "type mismatch: expected " + AbiStr(e.Want) + ", got " + AbiStr(e.Got)
}
