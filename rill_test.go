package rill

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRules is shorthand for Run with a nil-output config.
func runRules(t *testing.T, rules []string, input string, config *Config) string {
	t.Helper()
	out, err := Run(rules, strings.NewReader(input), config)
	require.NoError(t, err)
	return out
}

func TestDefaultRuleEchoesInput(t *testing.T) {
	out := runRules(t, nil, "one\ntwo\n", nil)
	assert.Equal(t, "one\ntwo\n", out)
}

func TestPatternFilter(t *testing.T) {
	out := runRules(t, []string{"/err/l"}, "ok\nerr 1\nfine\nerr 2\n", nil)
	assert.Equal(t, "err 1\nerr 2\n", out)
}

func TestNegatedPatternFilter(t *testing.T) {
	out := runRules(t, []string{"!/^#/l"}, "# comment\nvalue\n# more\nother\n", nil)
	assert.Equal(t, "value\nother\n", out)
}

func TestMatchGroups(t *testing.T) {
	// Pattern a(b) against "xaby": fires with m = ["b"].
	out := runRules(t, []string{"/a(b)/m[0]"}, "xaby\n", nil)
	assert.Equal(t, "b\n", out)

	// Same pattern negated does not fire on a matching line.
	out = runRules(t, []string{"!/a(b)/m"}, "xaby\n", nil)
	assert.Equal(t, "", out)

	// Negated against a non-matching line fires with empty group list.
	out = runRules(t, []string{"!/a(b)/len(m)"}, "xyz\n", nil)
	assert.Equal(t, "0\n", out)
}

func TestDollarAnchoredPattern(t *testing.T) {
	// $ anchors at the visible end of the line, not after its terminator.
	out := runRules(t, []string{"/b$/l"}, "ab\nbc\n", nil)
	assert.Equal(t, "ab\n", out)

	// An unterminated final line anchors the same way.
	out = runRules(t, []string{"/b$/l"}, "ab", nil)
	assert.Equal(t, "ab\n", out)
}

func TestCaptureExcludesLineTerminator(t *testing.T) {
	// An unbounded capture stops before the newline.
	out := runRules(t, []string{"/a(.*)/len(m[0])"}, "ab\n", nil)
	assert.Equal(t, "1\n", out)
}

func TestNoPatternMatchSlotIsFalse(t *testing.T) {
	out := runRules(t, []string{"m == false ? \"sentinel\" : \"groups\""}, "x\n", nil)
	assert.Equal(t, "sentinel\n", out)
}

func TestFieldBindings(t *testing.T) {
	input := "alice 30\nbob 25\n"
	out := runRules(t, []string{"f[0]"}, input, nil)
	assert.Equal(t, "alice\nbob\n", out)

	out = runRules(t, []string{"nf"}, input, nil)
	assert.Equal(t, "2\n2\n", out)

	out = runRules(t, []string{"n"}, input, nil)
	assert.Equal(t, "1\n2\n", out)
}

func TestLineVersusTrimmedLine(t *testing.T) {
	// line keeps the terminator, l is right-trimmed.
	out := runRules(t, []string{"len(line) - len(l)"}, "abc\n", nil)
	assert.Equal(t, "1\n", out)
}

func TestCustomFieldDelimiter(t *testing.T) {
	out := runRules(t, []string{"f[1]"}, "a:b:c\n", &Config{FS: ":"})
	assert.Equal(t, "b\n", out)
}

func TestCustomDelimiterDropsEmptyTokens(t *testing.T) {
	out := runRules(t, []string{"nf"}, "a::b::\n", &Config{FS: ":"})
	assert.Equal(t, "2\n", out)
}

func TestListResultJoinsWithOFS(t *testing.T) {
	out := runRules(t, []string{`["1", "2", "3"]`}, "x\n", &Config{OFS: ","})
	assert.Equal(t, "1,2,3\n", out)
}

func TestListResultDefaultOFS(t *testing.T) {
	out := runRules(t, []string{"f"}, "a b c\n", nil)
	assert.Equal(t, "a b c\n", out)
}

func TestTrueEmitsRawLineOnce(t *testing.T) {
	// A true result prints the raw line without duplicating its terminator.
	out := runRules(t, []string{"true"}, "hello\n", nil)
	assert.Equal(t, "hello\n", out)
}

func TestFalseAndNilEmitNothing(t *testing.T) {
	assert.Equal(t, "", runRules(t, []string{"false"}, "x\n", nil))
	assert.Equal(t, "", runRules(t, []string{"nil"}, "x\n", nil))
	assert.Equal(t, "", runRules(t, []string{"t = 1"}, "x\n", nil))
}

func TestNumberFormatting(t *testing.T) {
	out := runRules(t, []string{"num(f[0]) * 2"}, "21\n1.25\n", nil)
	assert.Equal(t, "42\n2.5\n", out)
}

func TestAccumulatorEndToEnd(t *testing.T) {
	out := runRules(t, []string{"t += line"}, "1\n2\n3\n", &Config{End: "t"})
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestEndConfiguredChangesDefaultRule(t *testing.T) {
	// With an end expression and no rules, lines accumulate instead of echo.
	out := runRules(t, nil, "a\nb\n", &Config{End: "t"})
	assert.Equal(t, "a\nb\n", out)
}

func TestBeginSeedsState(t *testing.T) {
	out := runRules(t, []string{"c += 1; nil"}, "x\ny\nz\n", &Config{
		Begin: "c = 0",
		End:   "c",
	})
	assert.Equal(t, "3\n", out)
}

func TestBeginResultIsEmitted(t *testing.T) {
	out := runRules(t, nil, "x\n", &Config{Begin: `"header"`})
	assert.Equal(t, "header\nx\n", out)
}

func TestBeginTrueEmitsNothing(t *testing.T) {
	// true only has a default line in per-line context.
	out := runRules(t, nil, "x\n", &Config{Begin: "true"})
	assert.Equal(t, "x\n", out)
}

func TestMultipleRulesInOrder(t *testing.T) {
	out := runRules(t, []string{`"<" + l`, `l + ">"`}, "a\n", nil)
	assert.Equal(t, "<a\na>\n", out)
}

func TestLaterRuleSeesEarlierMutation(t *testing.T) {
	out := runRules(t, []string{"x = nf; nil", "x * 10"}, "a b c\n", nil)
	assert.Equal(t, "30\n", out)
}

func TestAccumulatorPersistsAcrossLines(t *testing.T) {
	out := runRules(t, []string{"t += l; t"}, "a\nb\n", nil)
	assert.Equal(t, "a\nab\n", out)
}

func TestUnterminatedFinalLine(t *testing.T) {
	out := runRules(t, nil, "a\nb", nil)
	assert.Equal(t, "a\nb\n", out)
}

func TestVariablesSeeded(t *testing.T) {
	out := runRules(t, []string{"prefix + l"}, "x\n", &Config{
		Variables: map[string]string{"prefix": ">> "},
	})
	assert.Equal(t, ">> x\n", out)
}

func TestImportsFlattenMembers(t *testing.T) {
	out := runRules(t, []string{"upper(l)"}, "abc\n", &Config{
		Imports: []string{"strings"},
	})
	assert.Equal(t, "ABC\n", out)
}

func TestUnknownImport(t *testing.T) {
	_, err := Run([]string{"l"}, strings.NewReader("x\n"), &Config{Imports: []string{"nosuch"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuch")
}

func TestAutoImportModuleReference(t *testing.T) {
	// strings.upper works without an explicit import.
	out := runRules(t, []string{"strings.upper(l)"}, "abc\n", nil)
	assert.Equal(t, "ABC\n", out)
}

func TestAutoImportInBeginAndEnd(t *testing.T) {
	out := runRules(t, nil, "x\n", &Config{
		Begin: `h = strings.upper("head"); h`,
		End:   `strings.lower("TAIL")`,
	})
	assert.Equal(t, "HEAD\nx\ntail\n", out)
}

func TestNonStrictSwallowsEvalErrors(t *testing.T) {
	var diag bytes.Buffer
	out, err := Run([]string{"f[10]"}, strings.NewReader("a\nb\n"), &Config{Stderr: &diag})
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Contains(t, diag.String(), "out of range")
}

func TestNonStrictKeepsProcessingOtherRules(t *testing.T) {
	out := runRules(t, []string{"f[10]", "l"}, "a\n", nil)
	assert.Equal(t, "a\n", out)
}

func TestStrictAbortsOnFirstFailingLine(t *testing.T) {
	var sink bytes.Buffer
	err := Exec([]string{"t += l; f[10]"}, strings.NewReader("a\nb\nc\n"), &sink, &Config{Strict: true})
	require.Error(t, err)

	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	// Nothing was written and later lines were never processed.
	assert.Equal(t, "", sink.String())
}

func TestStrictErrorAfterPartialOutput(t *testing.T) {
	// Output written before the failing line is kept.
	var sink bytes.Buffer
	err := Exec([]string{"/b/f[10]", "l"}, strings.NewReader("a\nb\n"), &sink, &Config{Strict: true})
	require.Error(t, err)
	assert.Equal(t, "a\n", sink.String())
}

func TestBeginErrorAlwaysFatal(t *testing.T) {
	_, err := Run(nil, strings.NewReader("x\n"), &Config{Begin: "1 / 0"})
	require.Error(t, err)

	var ee *EvalError
	assert.ErrorAs(t, err, &ee)
}

func TestEndErrorAlwaysFatal(t *testing.T) {
	_, err := Run(nil, strings.NewReader("x\n"), &Config{End: "undefined_name"})
	require.Error(t, err)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile([]string{"a +"}, nil)
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	_, err = Compile(nil, &Config{Begin: "("})
	require.Error(t, err)
	assert.ErrorAs(t, err, &pe)

	_, err = Compile([]string{"/(/l"}, nil)
	require.Error(t, err)
	var patErr *PatternError
	require.ErrorAs(t, err, &patErr)
	assert.Equal(t, "(", patErr.Pattern)
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile([]string{"a +"}, nil) })
	assert.NotPanics(t, func() { MustCompile([]string{"l"}, nil) })
}

func TestProgramReusable(t *testing.T) {
	p, err := Compile([]string{"strings.upper(l)"}, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		out, err := p.Run(strings.NewReader("ab\n"))
		require.NoError(t, err)
		assert.Equal(t, "AB\n", out)
	}
}

func TestProgramRunsAreIsolated(t *testing.T) {
	// The accumulator does not leak between runs of the same Program.
	p, err := Compile([]string{"t += l; t"}, nil)
	require.NoError(t, err)

	first, err := p.Run(strings.NewReader("a\n"))
	require.NoError(t, err)
	second, err := p.Run(strings.NewReader("b\n"))
	require.NoError(t, err)
	assert.Equal(t, "a\n", first)
	assert.Equal(t, "b\n", second)
}

func TestExecWritesToOutput(t *testing.T) {
	var sink bytes.Buffer
	err := Exec([]string{"l"}, strings.NewReader("x\n"), &sink, nil)
	require.NoError(t, err)
	assert.Equal(t, "x\n", sink.String())
}

func TestEmptyInput(t *testing.T) {
	assert.Equal(t, "", runRules(t, nil, "", nil))

	// Begin and end still run with no input.
	out := runRules(t, nil, "", &Config{Begin: `"start"`, End: `"stop"`})
	assert.Equal(t, "start\nstop\n", out)
}

func TestConditionalOutput(t *testing.T) {
	out := runRules(t, []string{`num(f[0]) % 2 == 0 ? l : nil`}, "1\n2\n3\n4\n", nil)
	assert.Equal(t, "2\n4\n", out)
}

func TestPatternWithEscapedSlash(t *testing.T) {
	out := runRules(t, []string{`/a\/b/l`}, "a/b\nplain\n", nil)
	assert.Equal(t, "a/b\n", out)
}
