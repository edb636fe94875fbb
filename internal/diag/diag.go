// Package diag renders compiler and runtime errors with source context,
// the way the teacher's internal/errors package formats a CompilerError:
// a line-number gutter, the offending source line, and a caret under the
// column (SPEC_FULL.md §2.1).
package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is one reportable problem, already carrying everything needed
// to render it without looking anything back up.
type Diagnostic struct {
	Severity string // "error" is the only severity glox currently emits
	Message  string
	File     string
	Line     int
	Column   int
	Source   string
}

// New builds a Diagnostic. column may be 0 when the underlying error only
// tracks a line (most of glox's taxonomies do); Format then omits the caret.
func New(file, source, message string, line, column int) Diagnostic {
	return Diagnostic{Severity: "error", Message: message, File: file, Line: line, Column: column, Source: source}
}

// Format renders the diagnostic the way the teacher's CompilerError.Format
// does: a header, the source line, and a caret pointing at the column.
func (d Diagnostic) Format() string {
	var sb strings.Builder
	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d\n", strings.ToUpper(d.Severity[:1])+d.Severity[1:], d.File, d.Line)
	} else {
		fmt.Fprintf(&sb, "%s at line %d\n", strings.ToUpper(d.Severity[:1])+d.Severity[1:], d.Line)
	}
	if line := sourceLine(d.Source, d.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteByte('\n')
		if d.Column > 0 {
			sb.WriteString(strings.Repeat(" ", len(gutter)+d.Column-1))
			sb.WriteString("^\n")
		}
	}
	sb.WriteString(d.Message)
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Bag accumulates diagnostics the way the resolver accumulates errors
// instead of failing fast (spec.md §4.4).
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Add(d Diagnostic)    { b.items = append(b.items, d) }
func (b *Bag) Len() int            { return len(b.items) }
func (b *Bag) Items() []Diagnostic { return b.items }

// Format joins every diagnostic's rendering with blank lines between them.
func (b *Bag) Format() string {
	parts := make([]string, len(b.items))
	for i, d := range b.items {
		parts[i] = d.Format()
	}
	return strings.Join(parts, "\n\n")
}
