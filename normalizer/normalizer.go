// Package normalizer flattens a tree-shaped ConfigData (with nested
// `extends` and `overrides`) into an ordered lazy sequence of elements.
package normalizer

import (
	"strings"

	"github.com/cascadefig/cascade/internal/logger"
	"github.com/cascadefig/cascade/matcher"
	"github.com/cascadefig/cascade/model"
	"github.com/cascadefig/cascade/resolver"
	"github.com/cascadefig/cascade/validator"
)

// RawLoader loads a raw decoded top-level value (a map, or the
// array-of-fragments form) at a resolved file path, used to follow an
// `extends` reference that names a file on disk (as opposed to one
// resolved to an in-memory builtin/plugin config).
type RawLoader func(path string) (interface{}, error)

// Validate checks a raw top-level value against one of validator's schema
// modes, accepting either shape RawLoader can return.
type Validate func(raw interface{}, mode validator.Mode, path string) error

// Options carries the identity a ConfigData is normalized under: the file
// it came from (possibly empty, for in-memory input) and a
// human-readable name for diagnostics.
type Options struct {
	FilePath string
	Name     string
}

// Normalizer implements the extends/overrides flattening algorithm.
type Normalizer struct {
	Resolver *resolver.Resolver
	Load     RawLoader
	Validate Validate
}

// New returns a Normalizer wired to r for reference resolution, load for
// following file-based `extends` targets, and validate for schema-checking
// anything loaded that way.
func New(r *resolver.Resolver, load RawLoader, validate Validate) *Normalizer {
	return &Normalizer{Resolver: r, Load: load, Validate: validate}
}

// Normalize flattens cfg into a lazy Elements sequence via an 8-step
// algorithm: resolve this node's predicate, recurse into extends, recurse
// into auto-processor plugins, emit the body, then recurse into overrides.
func (n *Normalizer) Normalize(cfg *model.ConfigData, opts Options) (Elements, error) {
	// Step 1/2: compute this node's predicate.
	m, err := matcher.Compile(cfg.Files, cfg.ExcludedFiles)
	if err != nil {
		return nil, err
	}

	var stages []Elements

	// Step 3: extends, each recursively normalized with m conjoined onto
	// every element it yields.
	for _, name := range cfg.Extends {
		extendName := name
		importerPath := opts.FilePath
		stage := &lazyElements{build: func() (Elements, error) {
			return n.normalizeExtend(extendName, importerPath)
		}}
		stages = append(stages, &conjoinElements{inner: stage, predicate: m})
	}

	// Step 4: resolve parser now, attach as a Reference on the body.
	var parserRef *model.Reference
	if cfg.Parser != "" {
		parserRef = n.Resolver.ResolveParser(cfg.Parser, opts.FilePath)
	}

	// Step 5: resolve each plugin, building an id->Reference mapping.
	var pluginRefs map[string]*model.Reference
	var resolvedPlugins []*model.Reference
	if len(cfg.Plugins) > 0 {
		pluginRefs = make(map[string]*model.Reference, len(cfg.Plugins))
		for _, p := range cfg.Plugins {
			ref := n.Resolver.ResolvePlugin(p, opts.FilePath)
			pluginRefs[ref.ID] = ref
			resolvedPlugins = append(resolvedPlugins, ref)
		}
	}

	// Step 6: for every successfully loaded plugin exporting processors,
	// synthesize a child config for each extension-style processor id.
	// Plugins that failed to load carry their error lazily -- we must
	// not force that error here just to check for auto-processors.
	for _, ref := range resolvedPlugins {
		if !ref.Loaded() {
			continue
		}
		def, ok := ref.Definition.(*model.PluginDefinition)
		if !ok || def == nil {
			continue
		}
		for procID := range def.Processors {
			if !strings.HasPrefix(procID, ".") {
				continue
			}
			ext := procID
			pluginID := ref.ID
			importerPath := opts.FilePath
			name := opts.Name
			stage := &lazyElements{build: func() (Elements, error) {
				child := &model.ConfigData{
					Files:     []string{"*" + ext},
					Processor: pluginID + "/" + ext,
				}
				return n.Normalize(child, Options{FilePath: importerPath, Name: name})
			}}
			stages = append(stages, &conjoinElements{inner: stage, predicate: m})
		}
	}

	// Step 7: the body element itself. Its root is suppressed to nil
	// whenever a predicate is present ( invariant: only unconditional
	// elements may declare root-ness).
	var rootPtr *bool
	if m == nil {
		r := cfg.Root
		rootPtr = &r
	}
	body := &model.Element{
		Name:          opts.Name,
		FilePath:      opts.FilePath,
		MatchFile:     m,
		Env:           cfg.Env,
		Globals:       cfg.Globals,
		Parser:        parserRef,
		ParserOptions: cfg.ParserOptions,
		Plugins:       pluginRefs,
		Processor:     cfg.Processor,
		Root:          rootPtr,
		Rules:         cfg.Rules,
		Settings:      cfg.Settings,
	}
	stages = append(stages, &sliceElements{items: []*model.Element{body}})

	// Step 8: overrides, in order, each recursively normalized with m
	// conjoined onto every element it yields.
	for _, override := range cfg.Overrides {
		ov := override
		stage := &lazyElements{build: func() (Elements, error) {
			return n.Normalize(&ov.ConfigData, opts)
		}}
		stages = append(stages, &conjoinElements{inner: stage, predicate: m})
	}

	return &chainElements{stages: stages}, nil
}

// NormalizeAll normalizes each ConfigData fragment in cfgs, in order,
// folding the results together via model.Concat -- later fragments take
// precedence, and a later fragment marked root discards everything before
// it. This is how the array-of-fragments top-level input form is
// processed: "normalize each in order and concatenate".
func (n *Normalizer) NormalizeAll(cfgs []*model.ConfigData, opts Options) (*model.ElementArray, error) {
	acc := model.NewElementArray(nil)
	for _, cfg := range cfgs {
		elements, err := n.Normalize(cfg, opts)
		if err != nil {
			return nil, err
		}
		collected, err := Collect(elements)
		if err != nil {
			return nil, err
		}
		acc = model.Concat(model.NewElementArray(collected), acc)
	}
	return acc, nil
}

// normalizeExtend resolves one `extends` entry and recursively normalizes
// whatever it resolves to: an in-memory ConfigData (builtin or
// plugin-provided shareable config), a single-fragment file on disk, or a
// file on disk holding the array-of-fragments input form.
func (n *Normalizer) normalizeExtend(name, importerPath string) (Elements, error) {
	result, err := n.Resolver.ResolveExtend(name, importerPath)
	if err != nil {
		return nil, err
	}

	if result.ConfigData != nil {
		return n.Normalize(result.ConfigData, Options{FilePath: importerPath, Name: name})
	}

	logger.WithFields(logger.Fields{"extends": name, "path": result.FilePath}).Debug("[normalizer] loading extends target")

	raw, err := n.Load(result.FilePath)
	if err != nil {
		return nil, err
	}
	if n.Validate != nil {
		if err := n.Validate(raw, validator.TopLevel, result.FilePath); err != nil {
			return nil, err
		}
	}
	cfgs, err := model.DecodeConfigDataList(raw)
	if err != nil {
		return nil, err
	}
	if len(cfgs) == 1 {
		return n.Normalize(cfgs[0], Options{FilePath: result.FilePath, Name: name})
	}
	arr, err := n.NormalizeAll(cfgs, Options{FilePath: result.FilePath, Name: name})
	if err != nil {
		return nil, err
	}
	return &sliceElements{items: arr.Elements}, nil
}
