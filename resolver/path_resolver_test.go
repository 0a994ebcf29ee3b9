package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	cascadetest "github.com/cascadefig/cascade/internal/test"
)

func TestPathPackageResolverFindsNodeModulesSibling(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()

	pkgDir := filepath.Join(dir, "node_modules", "eslint-plugin-react")
	assert.NoError(t, os.MkdirAll(pkgDir, 0o755))

	p := &PathPackageResolver{}
	importer := filepath.Join(dir, ".eslintrc.json")
	path, err := p.ResolvePackage("eslint-plugin-react", importer)
	assert.NoError(t, err)
	assert.Equal(t, pkgDir, path)
}

func TestPathPackageResolverFindsConfiguredRoot(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()

	root := filepath.Join(dir, "shared-plugins")
	pkgFile := filepath.Join(root, "eslint-plugin-custom.js")
	assert.NoError(t, os.MkdirAll(root, 0o755))
	assert.NoError(t, os.WriteFile(pkgFile, []byte("module.exports = {}"), 0o644))

	p := &PathPackageResolver{Roots: []string{root}}
	path, err := p.ResolvePackage("eslint-plugin-custom", filepath.Join(dir, ".eslintrc.json"))
	assert.NoError(t, err)
	assert.Equal(t, pkgFile, path)
}

func TestPathPackageResolverNotFound(t *testing.T) {
	dir, cleanup := cascadetest.TempDir(t)
	defer cleanup()

	p := &PathPackageResolver{}
	_, err := p.ResolvePackage("eslint-plugin-missing", filepath.Join(dir, ".eslintrc.json"))
	assert.Error(t, err)
}
