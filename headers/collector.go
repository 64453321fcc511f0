package headers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HeaderSet maps bare header filenames to their absolute paths. Names keep
// the order in which headers were first seen during the directory scan, so
// every later stage that iterates the set is reproducible.
type HeaderSet struct {
	paths map[string]string
	names []string
}

func newHeaderSet() *HeaderSet {
	return &HeaderSet{paths: make(map[string]string)}
}

// Names returns the header filenames in collection order.
func (s *HeaderSet) Names() []string {
	return s.names
}

// Path returns the absolute path a header filename was collected from.
func (s *HeaderSet) Path(name string) (string, bool) {
	path, ok := s.paths[name]
	return path, ok
}

// Contains reports whether a header filename is part of the set.
func (s *HeaderSet) Contains(name string) bool {
	_, ok := s.paths[name]
	return ok
}

// Len returns the number of collected headers.
func (s *HeaderSet) Len() int {
	return len(s.names)
}

func (s *HeaderSet) add(name, path string) error {
	if existing, ok := s.paths[name]; ok {
		return &DuplicateHeaderError{Name: name, FirstPath: existing, SecondPath: path}
	}
	s.paths[name] = path
	s.names = append(s.names, name)
	return nil
}

// Collect scans the given directories (non-recursively) for header files and
// registers each under its bare filename. Directory entries are visited in
// the order os.ReadDir returns them (sorted by filename), directories in
// argument order. A filename seen twice across the combined scan is an error.
func Collect(dirs []string) (*HeaderSet, error) {
	set := newHeaderSet()

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if !IsHeaderFile(name) {
				continue
			}
			if !isRegularFile(entry, filepath.Join(dir, name)) {
				continue
			}

			absPath, err := filepath.Abs(filepath.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("failed to resolve path for %s: %w", name, err)
			}

			if err := set.add(name, absPath); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// isRegularFile reports whether a directory entry is a regular file,
// following symlinks so linked headers still qualify.
func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsHeaderFile reports whether a filename looks like a C/C++ header.
func IsHeaderFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".h") || strings.HasSuffix(lower, ".hpp")
}
