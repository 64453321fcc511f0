package depgraph

// DependencyGraph represents a mapping from header filenames to the headers
// they include locally.
type DependencyGraph map[string][]string
