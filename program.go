package rill

import (
	"bytes"
	"io"

	"rill/internal/compiler"
	"rill/internal/runtime"
)

// Program is a compiled set of rules plus optional begin and end expressions.
// A Program is immutable and can be reused across Run calls; each Run builds
// a fresh context.
type Program struct {
	actions  []*Action
	begin    *compiler.Snippet
	end      *compiler.Snippet
	autoMods []string
	config   Config
}

// Run executes the program against input.
//
// If Config.Output is nil, formatted results are captured and returned as a
// string; otherwise they are written to Config.Output and the returned string
// is empty. Begin and end evaluation faults are always fatal; per-line faults
// follow the strict setting.
func (p *Program) Run(input io.Reader) (string, error) {
	var buf bytes.Buffer
	out := p.config.Output
	capture := out == nil
	if capture {
		out = &buf
	}
	f := &formatter{w: out, ofs: p.config.OFS}

	result := func() string {
		if capture {
			return buf.String()
		}
		return ""
	}

	ctx, err := newContext(&p.config, p.autoMods)
	if err != nil {
		return "", err
	}

	if p.begin != nil {
		v, err := p.begin.Run(ctx.Env())
		if err != nil {
			return result(), toEvalError(err)
		}
		if err := f.write(v, nil); err != nil {
			return result(), err
		}
	}

	lr := runtime.NewLineReader(input)
	n := 0
	for {
		line, err := lr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result(), err
		}
		n++
		ctx.refresh(n, line)

		for _, a := range p.actions {
			v, fired, err := a.apply(ctx, line)
			if err != nil {
				return result(), err
			}
			if !fired {
				continue
			}
			if err := f.write(v, &line); err != nil {
				return result(), err
			}
		}
	}

	// The end expression sees the final per-line bindings, not fresh ones.
	if p.end != nil {
		v, err := p.end.Run(ctx.Env())
		if err != nil {
			return result(), toEvalError(err)
		}
		if err := f.write(v, nil); err != nil {
			return result(), err
		}
	}

	return result(), nil
}
