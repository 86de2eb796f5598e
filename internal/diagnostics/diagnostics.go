// Package diagnostics accumulates compiler errors and warnings instead of
// returning the first one encountered, so a single source file can surface
// every independent problem in one pass.
//
// Grounded on internal/errors/errors.go's CompilerError: a source position
// plus a rendering routine that prints the offending line with a
// column-aligned caret, generalized from one error at a time to an
// accumulating Handler carrying a {level, code, message, labels} shape.
package diagnostics

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ion-lang/ionc/internal/source"
)

// Level distinguishes hard errors from warnings (taxonomy
// splits diagnostics into recoverable errors, hard errors and
// warning-only findings; Level captures the error/warning axis, Code
// captures which taxonomy entry produced it).
type Level int

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "error"
}

// Code names one entry of error taxonomy.
type Code string

const (
	CodeNameResolution Code = "name-resolution"
	CodeTypeMismatch Code = "type-mismatch"
	CodeUnresolvedGeneric Code = "unresolved-generic"
	CodePurityViolation Code = "purity-violation"
	CodeCEIViolation Code = "cei-violation"
	CodeIRInvariant Code = "ir-invariant"
	CodeRegisterAllocFailure Code = "register-alloc-failure"
	CodeFeatureGatedSyntax Code = "feature-gated-syntax"
	CodeProgramKindValidation Code = "program-kind-validation"
)

// Label attaches a secondary message to an additional span, e.g. pointing
// back at the storage write a CEI violation references.
type Label struct {
	Span source.Span
	Message string
}

// Diagnostic is one accumulated finding.
type Diagnostic struct {
	Level Level
	Code Code
	Message string
	Primary source.Span
	Labels []Label
}

// Handler accumulates diagnostics across however many passes touch it,
// passed by pointer rather than held in global state. In internal/driver
// the semantic analyzer is the pass that reports into it; the IR builder
// and asm builder take no Handler.
type Handler struct {
	diags []Diagnostic
}

// NewHandler returns an empty handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Errorf accumulates a hard error.
func (h *Handler) Errorf(code Code, span source.Span, format string, args ...any) {
	h.diags = append(h.diags, Diagnostic{Level: LevelError, Code: code, Message: fmt.Sprintf(format, args...), Primary: span})
}

// Warnf accumulates a warning.
func (h *Handler) Warnf(code Code, span source.Span, format string, args ...any) {
	h.diags = append(h.diags, Diagnostic{Level: LevelWarning, Code: code, Message: fmt.Sprintf(format, args...), Primary: span})
}

// Report accumulates a fully-built Diagnostic (used when labels are
// needed).
func (h *Handler) Report(d Diagnostic) {
	h.diags = append(h.diags, d)
}

// Diagnostics returns every accumulated diagnostic in emission order.
func (h *Handler) Diagnostics() []Diagnostic {
	return h.diags
}

// HasErrors reports whether any LevelError diagnostic was accumulated.
func (h *Handler) HasErrors() bool {
	for _, d := range h.diags {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Format renders every diagnostic using the Store to recover source text,
// matching internal/errors/errors.go's "header line, source line, caret"
// layout. When color is true, ANSI codes highlight the level and caret.
func Format(store *source.Store, diags []Diagnostic, color bool) string {
	var out bytes.Buffer
	for i, d := range diags {
		if i > 0 {
			out.WriteByte('\n')
		}
		formatOne(&out, store, d, color)
	}
	return out.String()
}

func formatOne(out *bytes.Buffer, store *source.Store, d Diagnostic, color bool) {
	fileName := "<unknown>"
	lineText := ""
	if store != nil {
		fileName = store.Name(d.Primary.File)
		lineText = store.Line(d.Primary.File, d.Primary.Start.Line)
	}

	header := fmt.Sprintf("%s in %s:%d:%d: %s",
		strings.ToUpper(d.Level.String()[:1])+d.Level.String()[1:],
		fileName, d.Primary.Start.Line, d.Primary.Start.Column, d.Message)
	if color {
		header = colorize(d.Level, header)
	}
	fmt.Fprintln(out, header)

	if lineText != "" {
		fmt.Fprintln(out, lineText)
		caret := strings.Repeat(" ", max0(d.Primary.Start.Column-1)) + "^"
		if color {
			caret = colorize(d.Level, caret)
		}
		fmt.Fprintln(out, caret)
	}

	for _, l := range d.Labels {
		labelLine := fmt.Sprintf(" note: %s:%d: %s", store.Name(l.Span.File), l.Span.Start.Line, l.Message)
		fmt.Fprintln(out, labelLine)
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func colorize(level Level, s string) string {
	const (
		red = "\x1b[31m"
		yellow = "\x1b[33m"
		reset = "\x1b[0m"
	)
	if level == LevelError {
		return red + s + reset
	}
	return yellow + s + reset
}
