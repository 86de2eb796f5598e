package diagnostics

import (
	"strings"
	"testing"

	"github.com/ion-lang/ionc/internal/source"
)

func TestHandlerAccumulatesInOrder(t *testing.T) {
	h := NewHandler()
	h.Warnf(CodeCEIViolation, source.Span{}, "storage write after external call")
	h.Errorf(CodeTypeMismatch, source.Span{}, "expected %s, got %s", "u64", "bool")

	diags := h.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Level != LevelWarning || diags[1].Level != LevelError {
		t.Fatalf("unexpected level order: %+v", diags)
	}
	if !h.HasErrors() {
		t.Fatal("expected HasErrors to be true")
	}
}

func TestFormatRendersCaret(t *testing.T) {
	store := source.NewStore()
	fileID := store.AddFile("main.ion", "let x: bool = 1;\n")

	h := NewHandler()
	h.Errorf(CodeTypeMismatch, source.Span{File: fileID, Start: source.Position{Line: 1, Column: 15}}, "expected bool, got u64")

	out := Format(store, h.Diagnostics(), false)
	if !strings.Contains(out, "main.ion:1:15") {
		t.Fatalf("expected header to reference position, got: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret line, got: %s", out)
	}
}
