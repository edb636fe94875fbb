package evaluator

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"
)

// JSONTracer implements Tracer by writing one newline-delimited JSON object
// per event to w. Each event is built with sjson.SetBytes, the same
// append-fields-to-a-buffer idiom internal/diag uses for its JSON envelope,
// rather than round-tripping through a Go struct and encoding/json
// (SPEC_FULL.md §2.2).
type JSONTracer struct {
	w io.Writer
}

// NewJSONTracer wraps w as a Tracer.
func NewJSONTracer(w io.Writer) *JSONTracer {
	return &JSONTracer{w: w}
}

func (t *JSONTracer) Statement(line int, kind string) {
	t.emit("statement", func(buf []byte) ([]byte, error) {
		buf, err := sjson.SetBytes(buf, "line", line)
		if err != nil {
			return nil, err
		}
		return sjson.SetBytes(buf, "kind", kind)
	})
}

func (t *JSONTracer) Call(name string, line int) {
	t.emit("call", func(buf []byte) ([]byte, error) {
		buf, err := sjson.SetBytes(buf, "line", line)
		if err != nil {
			return nil, err
		}
		return sjson.SetBytes(buf, "name", name)
	})
}

func (t *JSONTracer) Return(name string) {
	t.emit("return", func(buf []byte) ([]byte, error) {
		return sjson.SetBytes(buf, "name", name)
	})
}

func (t *JSONTracer) emit(event string, fields func([]byte) ([]byte, error)) {
	buf, err := sjson.SetBytes([]byte("{}"), "event", event)
	if err != nil {
		return
	}
	buf, err = fields(buf)
	if err != nil {
		return
	}
	fmt.Fprintln(t.w, string(buf))
}
