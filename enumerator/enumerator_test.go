package enumerator

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cascadefig/cascade/cascade"
	cascadetest "github.com/cascadefig/cascade/internal/test"
	"github.com/cascadefig/cascade/loader"
	"github.com/cascadefig/cascade/model"
	"github.com/cascadefig/cascade/normalizer"
	"github.com/cascadefig/cascade/resolver"
)

func newTestCascade() *cascade.Cascade {
	r := resolver.New()
	l := loader.New()
	n := normalizer.New(r, l.Load, nil)
	return cascade.New(l, n, nil)
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func resultPaths(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Path
	}
	sort.Strings(out)
	return out
}

func TestEnumerateSingleFile(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, dir, "a.js", "")

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"a.js"}
	e.Extensions = map[string]bool{".js": true}
	e.Base = model.NewElementArray(nil)

	results, err := e.Enumerate()
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.Equal(t, filepath.Join(dir, "a.js"), results[0].Path)
	}
}

func TestEnumerateDirectoryByExtension(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, dir, "a.js", "")
	writeFile(t, dir, "b.ts", "")
	writeFile(t, dir, "c.js", "")

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"."}
	e.Extensions = map[string]bool{".js": true}
	e.Base = model.NewElementArray(nil)

	results, err := e.Enumerate()
	assert.NoError(t, err)
	assert.Len(t, resultPaths(results), 2)
}

func TestEnumerateDeduplicatesAcrossPatterns(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, dir, "a.js", "")

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"a.js", "."}
	e.Extensions = map[string]bool{".js": true}
	e.Base = model.NewElementArray(nil)

	results, err := e.Enumerate()
	assert.NoError(t, err)
	assert.Len(t, results, 1, "expected the file named explicitly and discovered again via '.' to be deduplicated")
}

func TestEnumerateRespectsUseEslintrcFlag(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, dir, "a.js", "")
	writeFile(t, dir, ".eslintrc.json", `{"rules": {"dir-rule": "error"}}`)

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"a.js"}
	e.Extensions = map[string]bool{".js": true}
	e.Base = model.NewElementArray(nil)
	e.UseEslintrc = false

	results, err := e.Enumerate()
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		_, ok := results[0].Config.Rules["dir-rule"]
		assert.False(t, ok, "expected UseEslintrc=false to skip the directory's own .eslintrc.json")
	}
}

type ignoreAll struct{}

func (ignoreAll) Ignored(string) bool { return true }

func TestEnumerateExplicitFileFlaggedWarningWhenIgnored(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, dir, "a.js", "")

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"a.js"}
	e.Extensions = map[string]bool{".js": true}
	e.Base = model.NewElementArray(nil)
	e.Ignored = ignoreAll{}

	results, err := e.Enumerate()
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.Equal(t, Warning, results[0].Flag)
	}
}

func TestEnumerateDiscoveredFileFlaggedIgnored(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, dir, "a.js", "")

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"."}
	e.Extensions = map[string]bool{".js": true}
	e.Base = model.NewElementArray(nil)
	e.Ignored = ignoreAll{}

	results, err := e.Enumerate()
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.Equal(t, Ignored, results[0].Flag)
	}
}

func TestExpandGlobMatchesRecursively(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()
	writeFile(t, filepath.Join(dir, "src", "nested"), "a.ts", "")
	writeFile(t, dir, "b.ts", "")

	e := New()
	e.Cascade = newTestCascade()
	e.Cwd = dir
	e.Patterns = []string{"src/**/*.ts"}
	e.Base = model.NewElementArray(nil)

	results, err := e.Enumerate()
	assert.NoError(t, err)
	assert.Len(t, results, 1, "expected only the file under src/")
}

func TestGlobParentNonRecursive(t *testing.T) {
	parent, remainder := globParent("*.ts")
	assert.Equal(t, ".", parent)
	assert.Equal(t, "*.ts", remainder)
}

func TestGlobParentWithLiteralPrefix(t *testing.T) {
	parent, remainder := globParent("src/**/*.ts")
	assert.Equal(t, "src", parent)
	assert.Equal(t, "**/*.ts", remainder)
}

func TestGlobParentSingleSegmentNotRecursive(t *testing.T) {
	parent, remainder := globParent("src/*.ts")
	recursive := parent != "." && len(remainder) > 0 && containsSlash(remainder)
	assert.False(t, recursive, "expected a single-segment remainder to not be recursive")
}

func containsSlash(s string) bool {
	for _, r := range s {
		if r == '/' {
			return true
		}
	}
	return false
}

func TestIdentityKeyDiffersByPointer(t *testing.T) {
	a := model.NewElementArray(nil)
	b := model.NewElementArray(nil)
	assert.NotEqual(t, identityKey(a), identityKey(b))
	assert.Equal(t, identityKey(a), identityKey(a))
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "ignored", Ignored.String())
}
