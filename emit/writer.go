package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/unify/headers"
)

const banner = "/// DO NOT EDIT THIS AUTO-GENERATED FILE"

// GuardName derives the include-guard token from the last two components of
// the output path: joined with an underscore, uppercased, with each of
// '-', ' ', '/', '+', '.' replaced by an underscore, plus the _INCLUDED_
// suffix.
func GuardName(outputPath string) string {
	cleaned := filepath.Clean(outputPath)
	file := filepath.Base(cleaned)

	parts := []string{file}
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent != "." && parent != string(filepath.Separator) {
		parts = []string{parent, file}
	}

	name := strings.ToUpper(strings.Join(parts, "_"))
	for _, forbidden := range []string{"-", " ", "/", "+", "."} {
		name = strings.ReplaceAll(name, forbidden, "_")
	}
	return name + "_INCLUDED_"
}

// Write assembles the single header and writes it to outputPath, creating
// the parent directory if needed. The whole document is built in memory
// first, so a failing read never leaves a truncated output file behind.
// A nil reader reads from the filesystem.
func Write(set *headers.HeaderSet, order []string, hoisted []string, outputPath string, read headers.ContentReader) error {
	if read == nil {
		read = os.ReadFile
	}

	guard := GuardName(outputPath)

	var sb strings.Builder
	fmt.Fprintf(&sb, "#ifndef %s\n", guard)
	fmt.Fprintf(&sb, "#define %s\n\n", guard)
	sb.WriteString(banner + "\n\n")

	sb.WriteString("/// Standard library includes\n")
	for _, include := range hoisted {
		fmt.Fprintf(&sb, "#include <%s>\n", include)
	}

	sb.WriteString("\n/// Project headers concatenated into a single header\n")
	for _, name := range order {
		path, ok := set.Path(name)
		if !ok {
			return fmt.Errorf("header %s missing from collected set", name)
		}
		content, err := read(path)
		if err != nil {
			return fmt.Errorf("failed to read header %s: %w", path, err)
		}

		fmt.Fprintf(&sb, "/// Original header: #include \"%s\"\n", name)
		writeBody(&sb, content)
		fmt.Fprintf(&sb, "/// End original header: '%s'\n\n", name)
	}

	fmt.Fprintf(&sb, "#endif // %s\n", guard)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}
	return nil
}

// writeBody copies a header's text, dropping every line that carries an
// include directive; those were either hoisted or replaced by ordering.
func writeBody(sb *strings.Builder, content []byte) {
	for _, line := range strings.SplitAfter(string(content), "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#include") {
			continue
		}
		sb.WriteString(line)
	}
}
