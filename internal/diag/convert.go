package diag

import (
	"errors"

	"github.com/glox-lang/glox/internal/lexer"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/resolver"
)

// FromScanner converts scanner errors into Diagnostics.
func FromScanner(errs []*lexer.Error, file, source string) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = New(file, source, e.Error(), e.Line, 0)
	}
	return out
}

// FromParser converts parser errors into Diagnostics.
func FromParser(errs []*parser.Error, file, source string) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = New(file, source, e.Error(), e.Line, 0)
	}
	return out
}

// FromResolver converts resolver errors into Diagnostics.
func FromResolver(errs []*resolver.Error, file, source string) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = New(file, source, e.Error(), e.Line, 0)
	}
	return out
}

// FromRuntime converts a single runtime error returned by the evaluator.
// Control-flow signals (ReturnSignal/BreakSignal) must never reach here;
// the caller treats their appearance as an implementation bug
// (spec.md §7, SPEC_FULL.md §4).
func FromRuntime(err error, file, source string) Diagnostic {
	line := lineOf(err)
	return New(file, source, err.Error(), line, 0)
}

// lineOf extracts the line number carried by glox's runtime error types
// without requiring every caller to type-switch for themselves.
func lineOf(err error) int {
	type liner interface{ RuntimeLine() int }
	var l liner
	if errors.As(err, &l) {
		return l.RuntimeLine()
	}
	return 0
}
