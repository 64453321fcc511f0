package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/unify/headers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"single/out.h", "SINGLE_OUT_H_INCLUDED_"},
		{"out.h", "OUT_H_INCLUDED_"},
		{"/abs/path/my-lib/header.hpp", "MY_LIB_HEADER_HPP_INCLUDED_"},
		{"dist/my lib+v2.h", "DIST_MY_LIB_V2_H_INCLUDED_"},
		{"a/b/c/propagator.h", "C_PROPAGATOR_H_INCLUDED_"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GuardName(tt.path), "path %q", tt.path)
	}
}

func collectFixture(t *testing.T, files map[string]string) (*headers.HeaderSet, *headers.IncludeEdges) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	set, err := headers.Collect([]string{dir})
	require.NoError(t, err)
	edges, err := headers.ParseIncludes(set, nil)
	require.NoError(t, err)
	return set, edges
}

func TestHoistSystemIncludes_FirstSeenOrderAcrossEmissionOrder(t *testing.T) {
	_, edges := collectFixture(t, map[string]string{
		"base.h": "#include <vector>\n#include <cstdint>\n",
		"top.h":  "#include \"base.h\"\n#include <string>\n#include <vector>\n",
	})

	hoisted := HoistSystemIncludes([]string{"base.h", "top.h"}, edges)

	assert.Equal(t, []string{"vector", "cstdint", "string"}, hoisted)
}

func TestHoistSystemIncludes_EmptyOrder(t *testing.T) {
	_, edges := collectFixture(t, map[string]string{"a.h": ""})

	assert.Empty(t, HoistSystemIncludes(nil, edges))
}

func TestWrite_EmitsGuardHoistedIncludesAndBodies(t *testing.T) {
	set, edges := collectFixture(t, map[string]string{
		"base.h": "#include <cstdint>\nstruct Base { uint32_t id; };\n",
		"top.h":  "#include \"base.h\"\nstruct Top : Base {};\n",
	})
	order := []string{"base.h", "top.h"}
	hoisted := HoistSystemIncludes(order, edges)
	outputPath := filepath.Join(t.TempDir(), "single", "mylib.h")

	require.NoError(t, Write(set, order, hoisted, outputPath, nil))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	output := string(content)

	assert.True(t, strings.HasPrefix(output, "#ifndef SINGLE_MYLIB_H_INCLUDED_\n#define SINGLE_MYLIB_H_INCLUDED_\n"))
	assert.True(t, strings.HasSuffix(output, "#endif // SINGLE_MYLIB_H_INCLUDED_\n"))
	assert.Contains(t, output, "/// DO NOT EDIT THIS AUTO-GENERATED FILE\n")
	assert.Contains(t, output, "#include <cstdint>\n")
	assert.Contains(t, output, "/// Original header: #include \"base.h\"\n")
	assert.Contains(t, output, "/// End original header: 'top.h'\n")
	assert.Contains(t, output, "struct Base { uint32_t id; };\n")
	assert.Contains(t, output, "struct Top : Base {};\n")

	// The copied bodies must not retain any include line.
	assert.NotContains(t, output, "#include \"base.h\"\nstruct Top")
	assert.Less(t, strings.Index(output, "struct Base"), strings.Index(output, "struct Top"))
}

func TestWrite_StripsIndentedIncludeLines(t *testing.T) {
	set, edges := collectFixture(t, map[string]string{
		"a.h": "   #include <vector>\nint x;\n",
	})
	order := []string{"a.h"}
	outputPath := filepath.Join(t.TempDir(), "out.h")

	require.NoError(t, Write(set, order, HoistSystemIncludes(order, edges), outputPath, nil))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "   #include <vector>")
	assert.Contains(t, string(content), "int x;\n")
}

func TestWrite_CreatesParentDirectoryAndOverwrites(t *testing.T) {
	set, edges := collectFixture(t, map[string]string{"a.h": "int a;\n"})
	outputPath := filepath.Join(t.TempDir(), "deep", "nested", "out.h")

	require.NoError(t, Write(set, []string{"a.h"}, nil, outputPath, nil))
	first, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	require.NoError(t, Write(set, []string{"a.h"}, HoistSystemIncludes([]string{"a.h"}, edges), outputPath, nil))
	second, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestWrite_ReadFailureLeavesNoOutput(t *testing.T) {
	set, _ := collectFixture(t, map[string]string{"a.h": "int a;\n"})
	outputPath := filepath.Join(t.TempDir(), "single", "out.h")

	failing := headers.ContentReader(func(string) ([]byte, error) {
		return nil, os.ErrNotExist
	})
	err := Write(set, []string{"a.h"}, nil, outputPath, failing)

	require.Error(t, err)
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}
