package diag

import (
	"strconv"

	"github.com/tidwall/sjson"
)

// EncodeJSON builds the `{"diagnostics":[...]}` envelope emitted by every
// CLI subcommand's --json flag. It's built field-by-field with
// github.com/tidwall/sjson the way a log-shipping pipeline appends fields to
// a byte buffer, rather than constructing a Go struct tree and calling
// encoding/json.Marshal (SPEC_FULL.md §2.1).
func EncodeJSON(items []Diagnostic) ([]byte, error) {
	buf := []byte(`{"diagnostics":[]}`)
	var err error
	for i, d := range items {
		path := func(field string) string { return sjsonPath(i, field) }
		if buf, err = sjson.SetBytes(buf, path("severity"), d.Severity); err != nil {
			return nil, err
		}
		if buf, err = sjson.SetBytes(buf, path("message"), d.Message); err != nil {
			return nil, err
		}
		if buf, err = sjson.SetBytes(buf, path("file"), d.File); err != nil {
			return nil, err
		}
		if buf, err = sjson.SetBytes(buf, path("line"), d.Line); err != nil {
			return nil, err
		}
		if d.Column > 0 {
			if buf, err = sjson.SetBytes(buf, path("column"), d.Column); err != nil {
				return nil, err
			}
		}
	}
	return buf, nil
}

func sjsonPath(index int, field string) string {
	return "diagnostics." + strconv.Itoa(index) + "." + field
}
