// Package verify re-parses a generated single header with the tree-sitter
// C++ grammar and checks that bundling left no include directives behind:
// quoted includes must all have been resolved into the concatenation, and
// every surviving angle include must be one of the hoisted system includes.
package verify

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Check validates the bundle written to outputPath against the hoisted
// system-include list.
func Check(outputPath string, hoisted []string) error {
	source, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read generated header: %w", err)
	}

	includes, err := parseIncludeDirectives(source)
	if err != nil {
		return err
	}

	allowed := make(map[string]bool, len(hoisted))
	for _, include := range hoisted {
		allowed[include] = true
	}

	for _, include := range includes {
		if include.quoted {
			return fmt.Errorf("generated header %s still contains local include %q", outputPath, include.path)
		}
		if !allowed[include.path] {
			return fmt.Errorf("generated header %s contains unhoisted system include <%s>", outputPath, include.path)
		}
	}

	return nil
}

type includeDirective struct {
	path   string
	quoted bool
}

func parseIncludeDirectives(source []byte) ([]includeDirective, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated header: %w", err)
	}
	defer tree.Close()

	var directives []includeDirective

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		if n.Type() == "preproc_include" {
			if d, ok := directiveFromNode(n, source); ok {
				directives = append(directives, d)
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(tree.RootNode())
	return directives, nil
}

func directiveFromNode(node *sitter.Node, source []byte) (includeDirective, bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "string_literal":
			return includeDirective{path: strings.Trim(child.Content(source), "\"' "), quoted: true}, true
		case "system_lib_string":
			path := strings.TrimSpace(child.Content(source))
			path = strings.TrimPrefix(path, "<")
			path = strings.TrimSuffix(path, ">")
			return includeDirective{path: strings.TrimSpace(path)}, true
		}
	}
	return includeDirective{}, false
}
