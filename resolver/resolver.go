// Package resolver resolves `extends`/`plugins`/`parser` specifiers to file
// paths or in-memory definitions. The actual package/module name
// resolution algorithm -- walking node_modules-equivalent search paths --
// is an external collaborator scope note; this package only
// classifies a specifier and hands off to an injected PackageResolver.
package resolver

import (
	"path/filepath"
	"regexp"
	"strings"

	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/model"
)

// packageNamePattern matches specifiers that should be treated as shareable
// package names rather than file paths: a leading word character or `@`,
// not immediately followed by `:` (which would make it a `plugin:`/`eslint:`
// prefix instead).
var packageNamePattern = regexp.MustCompile(`^(\w|@)([^:]|$)`)

// PackageResolver resolves an already-normalized package name (e.g.
// "eslint-plugin-foo" or "eslint-config-bar") relative to the file that
// referenced it, to a filesystem path. This is the seam for the
// out-of-scope module resolution algorithm; the default
// implementation used by Factory just joins paths under a configured root,
// which is enough to exercise the rest of the cascade deterministically in
// tests.
type PackageResolver interface {
	ResolvePackage(name, importerPath string) (string, error)
}

// PluginLoader loads the in-memory definition of a plugin module given its
// resolved filesystem path.
type PluginLoader func(path string) (*model.PluginDefinition, error)

// ParserLoader loads the in-memory definition of a parser module given its
// resolved filesystem path.
type ParserLoader func(path string) (*model.ParserDefinition, error)

// PluginPool is a caller-supplied mapping of long name and shorthand id to
// preloaded plugin definitions, consulted before any filesystem resolution.
type PluginPool map[string]*model.PluginDefinition

// Resolver turns parser/plugin/extends specifiers into resolved
// definitions or deferred errors.
type Resolver struct {
	Plugins PackageResolver
	Configs PackageResolver
	Parsers PackageResolver

	LoadPlugin PluginLoader
	LoadParser ParserLoader

	AdditionalPlugins PluginPool

	// Builtins holds the `eslint:recommended`/`eslint:all` config tables.
	// This module does not ship rule definitions (rule execution is out of
	// scope, ) -- only the two named stubs needed to exercise the
	// `eslint:*` code path.
	Builtins map[string]*model.ConfigData
}

// New returns a Resolver with the built-in `eslint:recommended`/`eslint:all`
// table seeded.
func New() *Resolver {
	return &Resolver{
		AdditionalPlugins: PluginPool{},
		Builtins: map[string]*model.ConfigData{
			"eslint:recommended": {},
			"eslint:all":         {},
		},
	}
}

// ExtendResult is the outcome of resolving one `extends` entry: either an
// already-loaded ConfigData (builtins, plugin-provided shareable configs) or
// a file path the caller (the normalizer) should load and recursively
// normalize.
type ExtendResult struct {
	ConfigData *model.ConfigData
	FilePath   string
}

// ResolveExtend resolves one `extends` entry classification
// rules.
func (r *Resolver) ResolveExtend(name, importerPath string) (*ExtendResult, error) {
	switch {
	case strings.HasPrefix(name, "eslint:"):
		cfg, ok := r.Builtins[name]
		if !ok {
			return nil, cascadeerrors.NewExtendConfigMissingError(name, importerPath)
		}
		return &ExtendResult{ConfigData: cfg}, nil

	case strings.HasPrefix(name, "plugin:"):
		return r.resolvePluginExtend(name, importerPath)

	case filepath.IsAbs(name):
		return &ExtendResult{FilePath: name}, nil

	case packageNamePattern.MatchString(name):
		return r.resolvePackageExtend(name, importerPath)

	default:
		return &ExtendResult{FilePath: filepath.Join(filepath.Dir(importerPath), name)}, nil
	}
}

// resolvePluginExtend handles `plugin:<pkg>/<name>`.
func (r *Resolver) resolvePluginExtend(spec, importerPath string) (*ExtendResult, error) {
	body := strings.TrimPrefix(spec, "plugin:")
	pkg, configName, ok := splitLast(body, "/")
	if !ok {
		return nil, cascadeerrors.NewExtendConfigMissingError(spec, importerPath)
	}

	ref := r.ResolvePlugin(pkg, importerPath)
	def, err := ref.Resolve()
	if err != nil {
		return nil, err
	}
	pluginDef := def.(*model.PluginDefinition)
	cfg, ok := pluginDef.Configs[configName]
	if !ok {
		return nil, cascadeerrors.NewExtendConfigMissingError(spec, importerPath)
	}
	return &ExtendResult{ConfigData: cfg}, nil
}

func (r *Resolver) resolvePackageExtend(name, importerPath string) (*ExtendResult, error) {
	if err := checkNoWhitespace(name); err != nil {
		return nil, err
	}
	longName := normalizeScopedName(name, "eslint-config-")
	path, err := r.resolveConfigsPackage(longName, importerPath)
	if err != nil {
		return nil, cascadeerrors.NewExtendConfigMissingError(name, importerPath)
	}
	return &ExtendResult{FilePath: path}, nil
}

func (r *Resolver) resolveConfigsPackage(longName, importerPath string) (string, error) {
	if r.Configs == nil {
		return "", cascadeerrors.NewExtendConfigMissingError(longName, importerPath)
	}
	return r.Configs.ResolvePackage(longName, importerPath)
}

// ResolvePlugin resolves a `plugins` entry to a Reference. Failures
// are stored lazily on the returned Reference rather than returned
// directly.
func (r *Resolver) ResolvePlugin(name, importerPath string) *model.Reference {
	if err := checkNoWhitespace(name); err != nil {
		return &model.Reference{ID: name, ImporterPath: importerPath, Err: err}
	}

	longName := normalizeScopedName(name, "eslint-plugin-")
	shortID := shorthand(longName, "eslint-plugin-")

	if pool := r.AdditionalPlugins; pool != nil {
		if def, ok := pool[longName]; ok {
			return &model.Reference{ID: shortID, ImporterPath: importerPath, Definition: def}
		}
		if def, ok := pool[shortID]; ok {
			return &model.Reference{ID: shortID, ImporterPath: importerPath, Definition: def}
		}
	}

	if r.Plugins == nil || r.LoadPlugin == nil {
		err := cascadeerrors.NewPluginMissingError(longName, importerPath, errNoPluginResolver)
		return &model.Reference{ID: shortID, ImporterPath: importerPath, Err: err}
	}

	path, err := r.Plugins.ResolvePackage(longName, importerPath)
	if err != nil {
		wrapped := cascadeerrors.NewPluginMissingError(longName, importerPath, err)
		return &model.Reference{ID: shortID, ImporterPath: importerPath, Err: wrapped}
	}

	def, err := r.LoadPlugin(path)
	if err != nil {
		wrapped := cascadeerrors.NewPluginMissingError(longName, importerPath, err)
		return &model.Reference{ID: shortID, ImporterPath: importerPath, FilePath: path, Err: wrapped}
	}

	return &model.Reference{ID: shortID, ImporterPath: importerPath, FilePath: path, Definition: def}
}

// ResolveParser resolves a `parser` specifier to a Reference. Same lazy
// failure semantics as ResolvePlugin.
func (r *Resolver) ResolveParser(name, importerPath string) *model.Reference {
	if err := checkNoWhitespace(name); err != nil {
		return &model.Reference{ID: name, ImporterPath: importerPath, Err: err}
	}

	path := name
	if !filepath.IsAbs(name) && r.Parsers != nil {
		if resolved, err := r.Parsers.ResolvePackage(name, importerPath); err == nil {
			path = resolved
		} else {
			wrapped := cascadeerrors.NewParserMissingError(name, importerPath, err)
			return &model.Reference{ID: name, ImporterPath: importerPath, Err: wrapped}
		}
	}

	if r.LoadParser == nil {
		err := cascadeerrors.NewParserMissingError(name, importerPath, errNoParserResolver)
		return &model.Reference{ID: name, ImporterPath: importerPath, Err: err}
	}

	def, err := r.LoadParser(path)
	if err != nil {
		wrapped := cascadeerrors.NewParserMissingError(name, importerPath, err)
		return &model.Reference{ID: name, ImporterPath: importerPath, FilePath: path, Err: wrapped}
	}

	return &model.Reference{ID: name, ImporterPath: importerPath, FilePath: path, Definition: def}
}
