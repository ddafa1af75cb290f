package rill

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"rill/internal/compiler"
	"rill/internal/interp"
	"rill/internal/parser"
	"rill/internal/runtime"
	"rill/internal/types"
)

// ruleSpecRe splits a rule specification into optional negation, optional
// /pattern/ and the trailing command text. The (?s) flag lets the command
// part span newlines.
var ruleSpecRe = runtime.MustCompile(`(?s)^(?:(!)?/((?:\\.|[^/])+)/)?(.*)$`)

// Action is one configured rule: an optional compiled pattern, a negate
// flag and a compiled snippet. Constructed once before the run, immutable
// thereafter except through the shared context it evaluates against.
type Action struct {
	pattern *runtime.Regex // nil means the rule fires for every line
	negate  bool
	snippet *compiler.Snippet
	strict  bool
	errw    io.Writer // sink for swallowed evaluation faults, may be nil
}

// newAction compiles one rule specification.
// An empty command defaults to identity-emit ("l"), or to accumulation
// ("t += line") when an end expression is configured.
func newAction(spec string, haveEnd bool, config *Config) (*Action, error) {
	negate, patternText, cmd := splitRuleSpec(spec)

	if cmd == "" {
		if haveEnd {
			cmd = "t += line"
		} else {
			cmd = "l"
		}
	}

	snippet, err := compiler.Compile(cmd)
	if err != nil {
		return nil, toParseError(err)
	}

	a := &Action{
		negate:  negate,
		snippet: snippet,
		strict:  config.Strict,
		errw:    config.Stderr,
	}
	if patternText != "" {
		re, err := runtime.Compile(patternText)
		if err != nil {
			return nil, &PatternError{Pattern: patternText, Message: err.Error()}
		}
		a.pattern = re
	}
	return a, nil
}

// splitRuleSpec parses `[!]/pattern/command` or bare `command`.
func splitRuleSpec(spec string) (negate bool, pattern, cmd string) {
	m := ruleSpecRe.FindStringSubmatch(spec)
	if m == nil {
		// The trailing (.*) makes ruleSpecRe total; treat the whole text
		// as a command if it somehow fails.
		return false, "", strings.TrimSpace(spec)
	}
	return m[1] == "!", m[2], strings.TrimSpace(m[3])
}

// match computes the fire decision and match-slot value for one line.
// The pattern sees the line without its trailing terminator, so $ anchors
// at the visible end of the line and unbounded captures stay newline-free;
// the raw line binding is unaffected.
//
//	pattern           negate  outcome        match-slot
//	none              false   fires          false
//	none              true    fires          true
//	present, matches  false   fires          captured groups (possibly empty)
//	present, matches  true    does not fire  -
//	present, no match false   does not fire  -
//	present, no match true    fires          empty group list
func (a *Action) match(line string) (types.Value, bool) {
	if a.pattern == nil {
		return types.Bool(a.negate), true
	}
	groups, ok := a.pattern.Search(strings.TrimSuffix(line, "\n"))
	if ok {
		if a.negate {
			return types.Null(), false
		}
		return types.StrList(groups), true
	}
	if a.negate {
		return types.List([]types.Value{}), true
	}
	return types.Null(), false
}

// apply runs the action against one line. It returns the captured value and
// whether the action fired. A runtime fault is returned only in strict mode;
// otherwise the fault is reported to the diagnostic sink and the line simply
// contributes no output. Context mutations applied before the fault persist.
func (a *Action) apply(ctx *Context, line string) (types.Value, bool, error) {
	m, fired := a.match(line)
	if !fired {
		return types.Null(), false, nil
	}
	ctx.setMatch(m)

	value, err := a.snippet.Run(ctx.Env())
	if err != nil {
		if a.strict {
			return types.Null(), false, toEvalError(err)
		}
		if a.errw != nil {
			fmt.Fprintf(a.errw, "rill: %v\n", err)
		}
		return types.Null(), false, nil
	}
	return value, true, nil
}

// toParseError converts an internal parser error to the public type.
func toParseError(err error) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return &ParseError{
			Line:    pe.Pos.Line,
			Column:  pe.Pos.Column,
			Message: pe.Message,
		}
	}
	var el parser.ErrorList
	if errors.As(err, &el) && len(el) > 0 {
		return &ParseError{
			Line:    el[0].Pos.Line,
			Column:  el[0].Pos.Column,
			Message: el[0].Message,
		}
	}
	return &ParseError{Message: err.Error()}
}

// toEvalError converts an internal evaluation error to the public type.
func toEvalError(err error) error {
	var ee *interp.EvalError
	if errors.As(err, &ee) {
		return &EvalError{Message: ee.Error()}
	}
	return &EvalError{Message: err.Error()}
}
