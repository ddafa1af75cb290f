package main

import (
	"bufio"

	"rill"
	"rill/internal/runtime"
)

// runInPlace rewrites path through the rules, leaving the original content in
// a path~ backup. The backup stays behind even on success, matching sed -i~.
func runInPlace(path string, rules []string, config *rill.Config) error {
	f, err := runtime.OpenInPlace(path)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(f.Writer())
	execErr := rill.Exec(rules, f.Reader(), out, config)
	if execErr == nil {
		execErr = out.Flush()
	}

	if err := f.Close(); err != nil && execErr == nil {
		return err
	}
	return execErr
}
