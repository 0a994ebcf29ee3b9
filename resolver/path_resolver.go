package resolver

import (
	"os"
	"path/filepath"

	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
)

// PathPackageResolver is the default PackageResolver: it searches a fixed,
// ordered list of directories (relative to the importer's directory, then
// relative to each configured root) for a subdirectory matching the package
// name, returning the first hit.
//
// Real node_modules-style resolution is out of scope; this is enough
// to let a caller lay out shareable configs/plugins in predictable
// directories without writing their own PackageResolver.
type PathPackageResolver struct {
	// Roots are searched, in order, for a directory or file matching name.
	Roots []string
}

// ResolvePackage implements PackageResolver.
func (p *PathPackageResolver) ResolvePackage(name, importerPath string) (string, error) {
	candidates := make([]string, 0, len(p.Roots)+1)
	candidates = append(candidates, filepath.Join(filepath.Dir(importerPath), "node_modules", name))
	for _, root := range p.Roots {
		candidates = append(candidates, filepath.Join(root, name))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(candidate + ".js"); err == nil {
			return candidate + ".js", nil
		}
	}
	return "", cascadeerrors.NewNotFoundError(name)
}
