// Package runtime provides run support for rill: pattern matching and
// line-oriented I/O.
package runtime

import (
	"regexp"

	"github.com/coregx/coregex"
)

// Regex pairs two engines behind one type: coregex answers the boolean match
// question on the hot per-line path, and the standard engine extracts capture
// groups on the (rarer) hit path, since the coregex surface has no submatch
// API. Both are compiled once at Action construction.
//
// The pattern is compiled as-is: `.` does not match a newline and `$` anchors
// at end of text, so callers matching per-line strip the terminator first.
type Regex struct {
	pattern string
	match   *coregex.Regexp
	groups  *regexp.Regexp
}

// Compile creates a new Regex from pattern.
// Matching is leftmost-first (Perl-like), which is what group extraction
// against the standard engine requires for agreement between the two engines.
func Compile(pattern string) (*Regex, error) {
	groups, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	match, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return &Regex{
		pattern: pattern,
		match:   match,
		groups:  groups,
	}, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the original pattern string.
func (r *Regex) Pattern() string {
	return r.pattern
}

// MatchString reports whether s contains any match.
func (r *Regex) MatchString(s string) bool {
	return r.match.MatchString(s)
}

// Search returns the capture groups of the first match in s.
// The whole-match slice element is excluded: a pattern with no groups yields
// an empty, non-nil slice. Returns (nil, false) when there is no match.
func (r *Regex) Search(s string) ([]string, bool) {
	if !r.match.MatchString(s) {
		return nil, false
	}
	m := r.groups.FindStringSubmatch(s)
	if m == nil {
		// The engines disagree on an edge; trust the one that captures.
		return nil, false
	}
	groups := m[1:]
	if groups == nil {
		groups = []string{}
	}
	return groups, true
}

// FindStringSubmatch returns the full submatch slice (whole match first),
// or nil if there is no match.
func (r *Regex) FindStringSubmatch(s string) []string {
	return r.groups.FindStringSubmatch(s)
}

// FindAllStringSubmatch returns the submatch slices of up to n matches,
// or nil if there is none. Skips the fast engine: callers scanning for all
// matches want the groups anyway.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	return r.groups.FindAllStringSubmatch(s, n)
}

// ReplaceAllString replaces all matches in s with repl.
func (r *Regex) ReplaceAllString(s, repl string) string {
	return r.groups.ReplaceAllString(s, repl)
}

// Split slices s into substrings separated by matches.
func (r *Regex) Split(s string, n int) []string {
	return r.groups.Split(s, n)
}
