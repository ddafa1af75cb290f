// Package rill provides a streaming, line-oriented text transformer.
//
// A rill program is an ordered list of rules of the form [!]/pattern/command
// (pattern and negation optional) plus optional begin and end expressions.
// Each input line is matched against every rule in order; a rule that fires
// evaluates its command snippet against the shared context and the captured
// value of the snippet's trailing expression becomes output.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := rill.Run([]string{"strings.upper(l)"}, strings.NewReader("hello\n"), nil)
//	// output: "HELLO\n"
//
// With configuration:
//
//	output, err := rill.Run(rules, input, &rill.Config{
//	    FS:  ":",
//	    End: "t",
//	})
//
// # Compiled Programs
//
// For repeated execution of the same rules:
//
//	prog, err := rill.Compile([]string{`/error/ l`}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output1, _ := prog.Run(file1)
//	output2, _ := prog.Run(file2)
//
// # Context
//
// Snippets see a flat set of bindings, refreshed per line:
//
//   - line: raw line text, including its terminator
//   - l: right-trimmed line text
//   - f: list of non-empty tokens split on the input delimiter
//   - nf: token count
//   - n: 1-based line index
//   - t: accumulator string, persisting across lines, seeded empty
//   - m: match result of the firing rule (group list or boolean)
//
// Capability modules (strings, math, fmt, re) are available through explicit
// imports or the automatic module.member scan; the engine itself performs no
// dynamic imports.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors in snippet text
//   - [PatternError]: malformed rule patterns
//   - [EvalError]: runtime faults during snippet execution
//
// Runtime faults are swallowed per line (the line contributes no output)
// unless [Config].Strict is set, in which case the first fault aborts the run.
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent execution context.
package rill
