package depgraph

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/unify/headers"

	graphlib "github.com/dominikbraun/graph"
)

// CircularDependencyError reports that the collected headers cannot be
// ordered because their includes form a cycle.
type CircularDependencyError struct {
	From string
	To   string
}

func (e *CircularDependencyError) Error() string {
	if e.From == "" {
		return "circular dependency detected among headers"
	}
	return fmt.Sprintf("circular dependency detected: %s includes %s", e.From, e.To)
}

// FromIncludes materializes the parser's local-include edges as a
// DependencyGraph keyed by header filename.
func FromIncludes(set *headers.HeaderSet, edges *headers.IncludeEdges) DependencyGraph {
	g := make(DependencyGraph, set.Len())
	for _, name := range set.Names() {
		g[name] = append([]string(nil), edges.Local(name)...)
	}
	return g
}

// Resolve computes the order in which headers can be emitted so that every
// header appears after all headers it includes.
//
// Cycles are rejected while the graph is built, so the error can name the
// include that closed the cycle. The order itself comes from batched removal
// of zero-dependency headers: each pass scans the remaining headers in
// collection order and admits every header whose includes have all been
// emitted, which keeps the result deterministic for a given scan order.
func Resolve(set *headers.HeaderSet, edges *headers.IncludeEdges) ([]string, error) {
	return ResolveGraph(set.Names(), FromIncludes(set, edges))
}

// ResolveGraph orders the given header names so that dependencies precede
// dependents. Names defines the per-pass scan order; deps must only reference
// names present in the list.
func ResolveGraph(names []string, deps DependencyGraph) ([]string, error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed(), graphlib.PreventCycles())
	for _, name := range names {
		if err := g.AddVertex(name); err != nil {
			return nil, fmt.Errorf("failed to add header %s to graph: %w", name, err)
		}
	}
	for _, name := range names {
		for _, dep := range deps[name] {
			if dep == name {
				return nil, &CircularDependencyError{From: name, To: dep}
			}
			err := g.AddEdge(dep, name)
			if errors.Is(err, graphlib.ErrEdgeCreatesCycle) {
				return nil, &CircularDependencyError{From: name, To: dep}
			}
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", dep, name, err)
			}
		}
	}

	// Owned working copy; the caller's dependency slices stay untouched.
	remaining := make(map[string]map[string]bool, len(names))
	for _, name := range names {
		depSet := make(map[string]bool)
		for _, dep := range deps[name] {
			depSet[dep] = true
		}
		remaining[name] = depSet
	}

	order := make([]string, 0, len(names))
	for len(remaining) > 0 {
		var ready []string
		for _, name := range names {
			depSet, ok := remaining[name]
			if !ok || len(depSet) > 0 {
				continue
			}
			ready = append(ready, name)
		}

		// Backstop: graph construction above already rejects cycles, but a
		// zero-progress pass must never spin.
		if len(ready) == 0 {
			return nil, &CircularDependencyError{}
		}

		for _, name := range ready {
			order = append(order, name)
			delete(remaining, name)
			for _, depSet := range remaining {
				delete(depSet, name)
			}
		}
	}

	return order, nil
}
