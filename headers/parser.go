package headers

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// IncludeKind distinguishes between system and local includes.
type IncludeKind int

const (
	IncludeLocal IncludeKind = iota
	IncludeSystem
)

// Include represents a single parsed include directive.
type Include struct {
	Name string
	Kind IncludeKind
}

// IncludeEdges records each header's local and system includes. Duplicates
// within one header are collapsed; the surviving entries keep first-seen line
// order so include hoisting stays deterministic.
type IncludeEdges struct {
	local  map[string][]string
	system map[string][]string
}

// Local returns the local includes of a header in first-seen order.
func (e *IncludeEdges) Local(name string) []string {
	return e.local[name]
}

// System returns the system includes of a header in first-seen order.
func (e *IncludeEdges) System(name string) []string {
	return e.system[name]
}

// A directive must be the only thing on its line: delimiter pairs must match
// and nothing but whitespace may trail the closing delimiter.
var includeLinePattern = regexp.MustCompile(`^#\s*include\s*(?:<([^<>"]+)>|"([^<>"]+)")\s*$`)

// ParseIncludes reads every header in the set and classifies its include
// directives. Quoted includes must name another collected header; angle
// includes are passed through verbatim. A nil reader reads from the
// filesystem.
func ParseIncludes(set *HeaderSet, read ContentReader) (*IncludeEdges, error) {
	if read == nil {
		read = os.ReadFile
	}

	edges := &IncludeEdges{
		local:  make(map[string][]string, set.Len()),
		system: make(map[string][]string, set.Len()),
	}

	for _, name := range set.Names() {
		path, _ := set.Path(name)
		content, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read header %s: %w", path, err)
		}

		local, system, err := parseHeaderIncludes(set, path, content)
		if err != nil {
			return nil, err
		}

		edges.local[name] = local
		edges.system[name] = system
	}

	return edges, nil
}

func parseHeaderIncludes(set *HeaderSet, path string, content []byte) (local, system []string, err error) {
	seenLocal := make(map[string]bool)
	seenSystem := make(map[string]bool)

	// Split rather than scan: bufio.Scanner caps line length, and headers
	// with very long lines (string tables, generated data) are valid input.
	for _, rawLine := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(rawLine)
		if !strings.HasPrefix(line, "#include") {
			continue
		}

		include, parseErr := ParseIncludeLine(line)
		if parseErr != nil {
			return nil, nil, &InvalidIncludeLineError{File: path, Line: line}
		}

		switch include.Kind {
		case IncludeSystem:
			if !seenSystem[include.Name] {
				seenSystem[include.Name] = true
				system = append(system, include.Name)
			}
		case IncludeLocal:
			if !set.Contains(include.Name) {
				return nil, nil, &UnknownHeaderError{Name: include.Name, File: path, Line: line}
			}
			if !seenLocal[include.Name] {
				seenLocal[include.Name] = true
				local = append(local, include.Name)
			}
		}
	}

	return local, system, nil
}

// ParseIncludeLine parses one trimmed include directive. Angle brackets mean
// a system include, quotes a local one; anything else is malformed.
func ParseIncludeLine(line string) (Include, error) {
	m := includeLinePattern.FindStringSubmatch(line)
	if m == nil {
		return Include{}, fmt.Errorf("malformed #include directive: %q", line)
	}
	if m[1] != "" {
		return Include{Name: m[1], Kind: IncludeSystem}, nil
	}
	return Include{Name: m[2], Kind: IncludeLocal}, nil
}
