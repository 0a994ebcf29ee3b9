package model

// PluginDefinition is the in-memory representation of a resolved plugin
// module: the shareable configs it exports under `configs[name]`, and the
// processors it exports under `processors[id]`. Rule execution is out of
// scope; a PluginDefinition only carries what the cascade itself
// consumes.
type PluginDefinition struct {
	LongName   string
	Configs    map[string]*ConfigData
	Processors map[string]*ProcessorDefinition
}

// ProcessorDefinition is an opaque handle to a plugin-exported processor.
// What a processor actually does with file contents is a lint-engine
// concern and out of scope; the cascade only needs to resolve `processor`
// strings to one of these.
type ProcessorDefinition struct {
	Name string
}

// ParserDefinition is an opaque handle to a resolved parser module.
type ParserDefinition struct {
	Name string
}

// Reference models a resolved parser or plugin specifier. It is a
// tagged Loaded|Failed variant, but modeled as a single struct (not an
// interface) so its zero value is inert rather than needing a type switch
// at every call site.
//
// A Failed reference carries Err and a nil Definition; its FilePath is set
// only when the package path resolved but loading it failed. Under the
// lazy-error policy, constructing a Failed reference never itself returns an
// error -- only Resolve() does, and only when called.
type Reference struct {
	// ID is the shorthand key the reference is stored under (e.g. in an
	// ElementArray's plugin mapping).
	ID string

	// ImporterPath is the file that referenced this specifier.
	ImporterPath string

	// FilePath is the resolved file path backing the definition, empty for
	// pool-supplied plugins and for references that failed before a path
	// was resolved.
	FilePath string

	// Definition is the loaded parser or plugin definition. Exactly one of
	// Definition/Err is set.
	Definition interface{}

	// Err holds a deferred resolution failure (PluginMissingError or
	// ParserMissingError). nil for a successfully loaded reference.
	Err error
}

// Loaded reports whether the reference resolved successfully.
func (r *Reference) Loaded() bool {
	return r.Err == nil
}

// Resolve returns the reference's definition, or its stored error if the
// reference failed to load. This is the use-time inspection point where a
// deferred resolution failure finally propagates.
func (r *Reference) Resolve() (interface{}, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Definition, nil
}

// Same reports whether two references refer to the same underlying
// definition. Two references with equal FilePath, or identical Definition
// pointers, are considered the same for plugin-conflict detection: if the
// definitions are the same object, there is no conflict to report.
func (r *Reference) Same(other *Reference) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if r.FilePath != "" && r.FilePath == other.FilePath {
		return true
	}
	return r.Definition == other.Definition
}

// ResolvedProcessor is the `{ definition, id }` shape a `processor` string
// resolves to once the Extractor has looked it up in the merged plugin
// mapping.
type ResolvedProcessor struct {
	Definition *ProcessorDefinition
	ID         string
}
