package parser

import (
	"testing"
)

// FuzzParse checks that the parser never panics and that a nil error implies
// a well-formed statement list.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"l",
		"t += line",
		"f[0] + f[-1]",
		"strings.upper(l)",
		`n % 2 == 0 ? l : ""`,
		"if nf > 2 { t += l } else { t }",
		"while x > 0 { x -= 1 }",
		"for w in f { t += w; t += ' ' }",
		"[1, 2, 3][1]",
		`"a\nb" + 'c'`,
		"0x1f + .5e2",
		"a # comment\nb",
		"((((x))))",
		"!!!x",
		"a < b < c",
		"1 = 2",
		`"unterminated`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		stmts, err := Parse(src)
		if err != nil {
			return
		}
		for i, s := range stmts {
			if s == nil {
				t.Errorf("Parse(%q): nil statement at %d", src, i)
			}
		}
	})
}
