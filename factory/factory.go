// Package factory is the public entry point: it wires the Loader,
// Validator, Resolver, Normalizer, Cascade, and Enumerator components
// together and exposes the four operations callers actually need --
// Create, LoadFile, LoadOnDirectory, LoadInAncestors -- plus Enumerate for
// expanding a file/pattern list end to end.
package factory

import (
	"errors"

	"github.com/creasty/defaults"

	"github.com/cascadefig/cascade/cascade"
	"github.com/cascadefig/cascade/enumerator"
	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/loader"
	"github.com/cascadefig/cascade/model"
	"github.com/cascadefig/cascade/normalizer"
	"github.com/cascadefig/cascade/policy"
	"github.com/cascadefig/cascade/resolver"
	"github.com/cascadefig/cascade/validator"
)

// Options configures a Factory. Zero-value fields are filled in declaratively
// by creasty/defaults from the `default` struct tags below.
type Options struct {
	// UseEslintrc controls whether the cascade consults per-directory and
	// ancestor config files at all.
	UseEslintrc bool `default:"true"`

	// UsePersonalConfig controls whether an empty ancestor walk falls back
	// to the user's home directory config.
	UsePersonalConfig bool `default:"false"`

	// Extensions is the default file-extension allowlist used by the
	// Enumerator when a directory/glob walk has no glob selector.
	Extensions []string

	// PackageRoots is consulted by the default PathPackageResolver for
	// `extends`/`plugins`/`parser` specifiers that name a package.
	PackageRoots []string

	// Policies governs which config sources are required vs. optional.
	// Defaults to policy.NewDefaultPolicies() when nil.
	Policies *policy.Policies

	// LoadPlugin and LoadParser evaluate a resolved plugin/parser module
	// path into its in-memory definition. Actually executing a JS module is
	// out of this library's scope; a caller embedding a JS runtime
	// supplies these. Left nil, any `plugins`/`parser` reference fails
	// lazily instead of resolving.
	LoadPlugin resolver.PluginLoader
	LoadParser resolver.ParserLoader
}

// Factory holds the wired components a resolution run needs.
type Factory struct {
	opts *Options

	Loader     *loader.Loader
	Resolver   *resolver.Resolver
	Normalizer *normalizer.Normalizer
	Cascade    *cascade.Cascade
}

// New builds a Factory from opts (nil means all defaults), wiring a
// PathPackageResolver for both plugin and config package resolution.
func New(opts *Options) (*Factory, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := defaults.Set(opts); err != nil {
		return nil, err
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".js"}
	}
	if opts.Policies == nil {
		opts.Policies = policy.NewDefaultPolicies()
	}

	pathResolver := &resolver.PathPackageResolver{Roots: opts.PackageRoots}
	r := resolver.New()
	r.Plugins = pathResolver
	r.Configs = pathResolver
	r.Parsers = pathResolver
	r.LoadPlugin = opts.LoadPlugin
	r.LoadParser = opts.LoadParser

	l := loader.New()

	n := normalizer.New(r, l.Load, validator.ValidateAny)

	c := cascade.New(l, n, opts.Policies)

	return &Factory{
		opts:       opts,
		Loader:     l,
		Resolver:   r,
		Normalizer: n,
		Cascade:    c,
	}, nil
}

// CreateOptions parameterizes Create.
type CreateOptions struct {
	FilePath string
	Name     string
	Parent   *model.ElementArray
}

// Create normalizes cfg and concatenates it with opts.Parent :
// "normalize + concatenate with parent if present and the result is not
// root".
func (f *Factory) Create(cfg *model.ConfigData, opts CreateOptions) (*model.ElementArray, error) {
	elements, err := f.Normalizer.Normalize(cfg, normalizer.Options{FilePath: opts.FilePath, Name: opts.Name})
	if err != nil {
		return nil, err
	}
	collected, err := normalizer.Collect(elements)
	if err != nil {
		return nil, err
	}
	arr := model.NewElementArray(collected)
	return model.Concat(arr, opts.Parent), nil
}

// LoadFileOptions parameterizes LoadFile.
type LoadFileOptions struct {
	Name   string
	Parent *model.ElementArray
}

// LoadFile loads, validates, decodes, and normalizes the config at path,
// concatenating it with opts.Parent. path's top-level value may be an
// ordinary object or the array-of-fragments input form (a sequence of
// top-level-or-override fragments, normalized in order and concatenated).
func (f *Factory) LoadFile(path string, opts LoadFileOptions) (*model.ElementArray, error) {
	raw, err := f.Loader.Load(path)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return opts.Parent, nil
	}
	if err := validator.ValidateAny(raw, validator.TopLevel, path); err != nil {
		return nil, err
	}
	cfgs, err := model.DecodeConfigDataList(raw)
	if err != nil {
		return nil, err
	}
	arr, err := f.Normalizer.NormalizeAll(cfgs, normalizer.Options{FilePath: path, Name: opts.Name})
	if err != nil {
		return nil, err
	}
	return model.Concat(arr, opts.Parent), nil
}

// loadCLIConfigPath loads an explicit --config path under opts.Policies.CLIConfig:
// a missing path is an error when the policy is Required (the default), but
// is swallowed -- falling back to opts.Parent, as if no --config had been
// given -- when the policy is Optional. An empty path is always a no-op.
func (f *Factory) loadCLIConfigPath(path string, opts LoadFileOptions) (*model.ElementArray, error) {
	if path == "" {
		return opts.Parent, nil
	}
	arr, err := f.LoadFile(path, opts)
	if err != nil {
		var notFound *cascadeerrors.NotFoundError
		if f.opts.Policies.CLIConfig == policy.Optional && errors.As(err, &notFound) {
			return opts.Parent, nil
		}
		return nil, err
	}
	return arr, nil
}

// LoadOnDirectoryOptions parameterizes LoadOnDirectory.
type LoadOnDirectoryOptions struct {
	Name   string
	Parent *model.ElementArray
}

// LoadOnDirectory loads dir's own per-directory config file (if any) and
// concatenates it with opts.Parent. Returns (nil, nil) if dir has no config
// file at all.
func (f *Factory) LoadOnDirectory(dir string, opts LoadOnDirectoryOptions) (*model.ElementArray, error) {
	arr, err := f.Cascade.LoadOnDirectory(dir)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, nil
	}
	return model.Concat(arr, opts.Parent), nil
}

// LoadInAncestorsOptions parameterizes LoadInAncestors.
type LoadInAncestorsOptions struct {
	Parent            *model.ElementArray
	UsePersonalConfig bool
}

// LoadInAncestors runs the full ancestor cascade above dir and
// concatenates the result with opts.Parent.
func (f *Factory) LoadInAncestors(dir string, opts LoadInAncestorsOptions) (*model.ElementArray, error) {
	arr, err := f.Cascade.LoadInAncestors(dir, opts.UsePersonalConfig)
	if err != nil {
		return nil, err
	}
	return model.Concat(arr, opts.Parent), nil
}

// EnumerateOptions parameterizes Enumerate.
type EnumerateOptions struct {
	Patterns   []string
	Cwd        string
	Base       *model.ElementArray
	ConfigPath string
	CLIConfig  *model.ConfigData
	Ignored    enumerator.IgnoredPaths
}

// Enumerate expands opts.Patterns against opts.Cwd into resolved
// (path, config) pairs, wiring an explicit --config file and CLI-level
// options onto the Enumerator's finalization chain if given.
func (f *Factory) Enumerate(opts EnumerateOptions) ([]enumerator.Result, error) {
	if !f.opts.UseEslintrc {
		return f.enumerateWithoutEslintrc(opts)
	}

	ancestors, err := f.Cascade.LoadInAncestors(opts.Cwd, f.opts.UsePersonalConfig)
	if err != nil {
		return nil, err
	}
	base := model.Concat(ancestors, opts.Base)

	configPathElements, err := f.loadCLIConfigPath(opts.ConfigPath, LoadFileOptions{Name: opts.ConfigPath})
	if err != nil {
		return nil, err
	}

	var cliElements *model.ElementArray
	if opts.CLIConfig != nil {
		cliElements, err = f.Create(opts.CLIConfig, CreateOptions{Name: "<cli>"})
		if err != nil {
			return nil, err
		}
	}

	extSet := make(map[string]bool, len(f.opts.Extensions))
	for _, ext := range f.opts.Extensions {
		extSet[ext] = true
	}

	e := enumerator.New()
	e.Cascade = f.Cascade
	e.Patterns = opts.Patterns
	e.Cwd = opts.Cwd
	e.Extensions = extSet
	e.Base = base
	e.ConfigPathElements = configPathElements
	e.CLIElements = cliElements
	e.UseEslintrc = f.opts.UseEslintrc
	e.UsePersonalConfig = f.opts.UsePersonalConfig
	e.Ignored = opts.Ignored

	return e.Enumerate()
}

// enumerateWithoutEslintrc skips the cascade entirely: only --config and
// CLI-level options apply, uniformly to every matched file.
func (f *Factory) enumerateWithoutEslintrc(opts EnumerateOptions) ([]enumerator.Result, error) {
	base, err := f.loadCLIConfigPath(opts.ConfigPath, LoadFileOptions{Name: opts.ConfigPath, Parent: opts.Base})
	if err != nil {
		return nil, err
	}
	if opts.CLIConfig != nil {
		base, err = f.Create(opts.CLIConfig, CreateOptions{Name: "<cli>", Parent: base})
		if err != nil {
			return nil, err
		}
	}
	if base == nil {
		base = model.NewElementArray(nil)
	}

	extSet := make(map[string]bool, len(f.opts.Extensions))
	for _, ext := range f.opts.Extensions {
		extSet[ext] = true
	}

	e := enumerator.New()
	e.Cascade = f.Cascade
	e.Patterns = opts.Patterns
	e.Cwd = opts.Cwd
	e.Extensions = extSet
	e.Base = base
	// UseEslintrc left false (the zero value): the Enumerator skips
	// per-directory/ancestor discovery entirely and resolves every matched
	// file against base alone.

	return e.Enumerate()
}
