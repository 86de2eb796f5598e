package declengine

import (
	"testing"

	"github.com/ion-lang/ionc/internal/engine"
	"github.com/ion-lang/ionc/internal/source"
	"github.com/ion-lang/ionc/internal/types"
)

func TestReserveAndResolveStructInvalidatesOldHandle(t *testing.T) {
	e := New()
	span := source.Span{}

	forward := e.ReserveStruct("List", span)
	resolved := e.ResolveStruct(forward, StructDecl{
		Name:   "List",
		Fields: []StructField{{Name: "len", Type: types.UInt(64)}},
	})

	if _, ok := e.Struct(forward); ok {
		t.Fatal("expected the pre-resolution handle to be stale")
	}
	decl, ok := e.Struct(resolved)
	if !ok {
		t.Fatal("expected the resolved handle to be live")
	}
	if len(decl.Fields) != 1 || decl.Fields[0].Name != "len" {
		t.Fatalf("unexpected resolved struct: %+v", decl)
	}
}

func TestCloseSupertraits(t *testing.T) {
	e := New()
	span := source.Span{}

	base := e.DeclareTrait("Base", span, TraitDecl{
		Name:    "Base",
		Methods: []FunctionDecl{{Name: "id", Return: types.UInt(64), Pure: true}},
	})
	derived := e.DeclareTrait("Derived", span, TraitDecl{
		Name:        "Derived",
		Methods:     []FunctionDecl{{Name: "extra", Return: types.Boolean(), Pure: true}},
		Supertraits: []engine.Handle{base.DeclID},
	})

	methods, err := e.CloseSupertraits(derived)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := map[string]bool{}
	for _, m := range methods {
		names[m.Name] = true
	}
	if !names["id"] || !names["extra"] {
		t.Fatalf("expected both id and extra in closure, got %v", methods)
	}
}
