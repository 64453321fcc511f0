package emit

import "github.com/LegacyCodeHQ/unify/headers"

// HoistSystemIncludes walks the emission order and collects every header's
// system includes in first-seen order, dropping duplicates. The result is
// the exact sequence of #include <...> lines the writer emits at the top of
// the bundle.
func HoistSystemIncludes(order []string, edges *headers.IncludeEdges) []string {
	seen := make(map[string]bool)
	var hoisted []string
	for _, name := range order {
		for _, include := range edges.System(name) {
			if seen[include] {
				continue
			}
			seen[include] = true
			hoisted = append(hoisted, include)
		}
	}
	return hoisted
}
