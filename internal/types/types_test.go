package types

import "testing"

func TestResolveTypeNumericDefaulting(t *testing.T) {
	got, err := ResolveType(Unknown(), Numeric())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, UInt(64)) {
		t.Fatalf("expected u64 default, got %s", AbiStr(got))
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	_, err := ResolveType(Boolean(), UInt(64))
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	var mismatch *MismatchError
	if !asMismatch(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
}

func asMismatch(err error, out **MismatchError) bool {
	m, ok := err.(*MismatchError)
	if ok {
		*out = m
	}
	return ok
}

func TestResolveTypeErrorRecoveryIsSilent(t *testing.T) {
	got, err := ResolveType(ErrorRecovery(), UInt(8))
	if err != nil {
		t.Fatalf("ErrorRecovery must not cascade into a new mismatch: %v", err)
	}
	if got.Kind != KindErrorRecovery {
		t.Fatalf("expected ErrorRecovery, got %s", got.Kind)
	}
}

func TestSubstituteStruct(t *testing.T) {
	decl := DeclHandle{Index: 1, Gen: 1}
	generic := UnknownGeneric()
	tmpl := StructOf(decl, "Option", generic)

	out := Substitute(tmpl, []*TypeInfo{generic}, []*TypeInfo{UInt(64)})
	if out.Kind != KindStruct || len(out.Substitution) != 1 {
		t.Fatalf("expected substituted struct, got %#v", out)
	}
	if !Equal(out.Substitution[0], UInt(64)) {
		t.Fatalf("expected u64 substitution, got %s", AbiStr(out.Substitution[0]))
	}
}

func TestAbiStrRoundTrip(t *testing.T) {
	cases := []*TypeInfo{
		UInt(64),
		Boolean(),
		B256(),
		StringSlice(),
		RefOf(UInt(32), true),
		RefOf(Boolean(), false),
	}
	for _, tc := range cases {
		s := AbiStr(tc)
		if !RoundTrips(tc, s) {
			t.Errorf("AbiStr(%v) = %q did not round-trip", tc, s)
		}
	}
}

func TestMonomorphizeCacheHits(t *testing.T) {
	cache := NewMonomorphizeCache()
	decl := DeclHandle{Index: 2, Gen: 1}
	builds := 0
	build := func() *TypeInfo {
		builds++
		return StructOf(decl, "Vec", UInt(64))
	}
	first := cache.Monomorphize(decl, []*TypeInfo{UInt(64)}, build)
	second := cache.Monomorphize(decl, []*TypeInfo{UInt(64)}, build)
	if first != second {
		t.Fatal("expected the same cached instance on repeated monomorphization")
	}
	if builds != 1 {
		t.Fatalf("expected exactly one build call, got %d", builds)
	}
}
