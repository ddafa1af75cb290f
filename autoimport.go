package rill

import (
	"rill/internal/modules"
	"rill/internal/runtime"
)

// autoImportRe finds module.member references in rule text.
// The scan is deliberately unsophisticated: any name followed by a dot and a
// member-looking character counts, and unknown names are simply ignored.
var autoImportRe = runtime.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\.[A-Za-z_]`)

// scanModules collects the registered module names referenced by the
// combined begin/rules/end text, in first-appearance order.
func scanModules(texts ...string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, text := range texts {
		for _, m := range autoImportRe.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, ok := modules.Lookup(name); ok {
				found = append(found, name)
			}
		}
	}
	return found
}
