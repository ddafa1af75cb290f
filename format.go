package rill

import (
	"io"
	"strings"

	"rill/internal/types"
)

// formatter converts captured values into output lines.
type formatter struct {
	w   io.Writer
	ofs string // output join delimiter for list values
}

// write emits zero or one line for a captured value:
//
//   - unset sentinel or false: no output
//   - true with a default (per-line actions pass the raw line): the default
//   - true with no default (begin/end phases): no output
//   - list: string forms joined with the output delimiter
//   - anything else: its string form
//
// The trailing terminator is appended only if the text does not already end
// with one; an emitted line is never retracted.
func (f *formatter) write(v types.Value, whenTrue *string) error {
	var text string

	switch {
	case v.IsNull():
		return nil
	case v.IsBool():
		if !v.AsBool() || whenTrue == nil {
			return nil
		}
		text = *whenTrue
	case v.IsList():
		parts := make([]string, len(v.List()))
		for i, e := range v.List() {
			parts[i] = e.AsStr()
		}
		text = strings.Join(parts, f.ofs)
	default:
		text = v.AsStr()
	}

	if _, err := io.WriteString(f.w, text); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		if _, err := io.WriteString(f.w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
