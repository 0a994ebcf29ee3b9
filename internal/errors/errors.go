// Package errors defines the typed error conditions the cascade resolver can
// surface, plus a MultiError for aggregating validation failures.
package errors

import (
	"bytes"
	"fmt"
)

// MultiError is a collection of errors that also fulfills the error interface.
//
// It is used by the validator to collect every schema violation found during
// a walk instead of failing on the first one.
type MultiError struct {
	// Errors is the collection of errors the MultiError tracks.
	Errors []error

	// For describes the process/function the MultiError is used for.
	For string
}

// NewMultiError creates a new instance of a MultiError.
func NewMultiError(source string) *MultiError {
	return &MultiError{
		Errors: []error{},
		For:    source,
	}
}

// Add adds an error to the MultiError.
func (e *MultiError) Add(err error) {
	e.Errors = append(e.Errors, err)
}

// HasErrors checks whether the MultiError is tracking any errors.
func (e *MultiError) HasErrors() bool {
	return len(e.Errors) != 0
}

// Err returns the MultiError if it has tracked errors, otherwise nil. This
// lets callers build up a MultiError unconditionally and only propagate it
// at the end of a validation pass.
func (e *MultiError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error returns the error string and fulfills the error interface.
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}

	src := e.For
	if src == "" {
		src = "unspecified"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d error(s) for: %s\n", len(e.Errors), src) // nolint: errcheck
	for _, err := range e.Errors {
		fmt.Fprintf(&buf, "%s\n", err.Error()) // nolint: errcheck
	}
	return buf.String()
}

// CannotReadConfigError is returned when the loader cannot open or parse a
// config file. It propagates immediately.
type CannotReadConfigError struct {
	Path  string
	Cause error
}

// NewCannotReadConfigError returns a new CannotReadConfigError.
func NewCannotReadConfigError(path string, cause error) *CannotReadConfigError {
	return &CannotReadConfigError{Path: path, Cause: cause}
}

func (e *CannotReadConfigError) Error() string {
	return fmt.Sprintf("cannot read config %q: %v", e.Path, e.Cause)
}

// Unwrap lets callers errors.Is/As through to the underlying cause.
func (e *CannotReadConfigError) Unwrap() error {
	return e.Cause
}

// NotFoundError models a missing config file. The cascade treats this as a
// recoverable condition: it is used to skip to the next candidate filename.
type NotFoundError struct {
	Path string
}

// NewNotFoundError returns a new NotFoundError.
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{Path: path}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config not found: %q", e.Path)
}

// InvalidConfigError is returned when raw config data fails schema
// validation.
type InvalidConfigError struct {
	Path   string
	Detail string
}

// NewInvalidConfigError returns a new InvalidConfigError.
func NewInvalidConfigError(path, detail string) *InvalidConfigError {
	return &InvalidConfigError{Path: path, Detail: detail}
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config %q: %s", e.Path, e.Detail)
}

// ExtendConfigMissingError is returned when a reference resolver cannot
// locate a config named by `extends` (a bare `eslint:*` name, a missing
// plugin config, etc). It propagates immediately.
type ExtendConfigMissingError struct {
	Name         string
	ImporterPath string
}

// NewExtendConfigMissingError returns a new ExtendConfigMissingError.
func NewExtendConfigMissingError(name, importerPath string) *ExtendConfigMissingError {
	return &ExtendConfigMissingError{Name: name, ImporterPath: importerPath}
}

func (e *ExtendConfigMissingError) Error() string {
	return fmt.Sprintf("could not find config %q to extend, referenced from %q", e.Name, e.ImporterPath)
}

// PluginMissingError models a plugin module that could not be resolved. It
// is stored lazily on a Reference and only raised if that reference is used
// during extraction.
type PluginMissingError struct {
	LongName     string
	ImporterPath string
	Cause        error
}

// NewPluginMissingError returns a new PluginMissingError.
func NewPluginMissingError(longName, importerPath string, cause error) *PluginMissingError {
	return &PluginMissingError{LongName: longName, ImporterPath: importerPath, Cause: cause}
}

func (e *PluginMissingError) Error() string {
	return fmt.Sprintf("plugin %q could not be resolved (referenced from %q): %v", e.LongName, e.ImporterPath, e.Cause)
}

func (e *PluginMissingError) Unwrap() error {
	return e.Cause
}

// ParserMissingError models a parser module that could not be resolved. Same
// lazy semantics as PluginMissingError.
type ParserMissingError struct {
	Name         string
	ImporterPath string
	Cause        error
}

// NewParserMissingError returns a new ParserMissingError.
func NewParserMissingError(name, importerPath string, cause error) *ParserMissingError {
	return &ParserMissingError{Name: name, ImporterPath: importerPath, Cause: cause}
}

func (e *ParserMissingError) Error() string {
	return fmt.Sprintf("parser %q could not be resolved (referenced from %q): %v", e.Name, e.ImporterPath, e.Cause)
}

func (e *ParserMissingError) Unwrap() error {
	return e.Cause
}

// PluginConflictError is raised at extraction time when two elements
// contribute different definitions for the same plugin id.
type PluginConflictError struct {
	ID      string
	ImportA string
	ImportB string
}

// NewPluginConflictError returns a new PluginConflictError.
func NewPluginConflictError(id, importA, importB string) *PluginConflictError {
	return &PluginConflictError{ID: id, ImportA: importA, ImportB: importB}
}

func (e *PluginConflictError) Error() string {
	return fmt.Sprintf("conflicting definitions for plugin %q: imported from %q and %q", e.ID, e.ImportA, e.ImportB)
}

// ProcessorNotFoundError is raised at extraction time when a resolved
// plugin does not export the named processor.
type ProcessorNotFoundError struct {
	PluginID string
	Name     string
}

// NewProcessorNotFoundError returns a new ProcessorNotFoundError.
func NewProcessorNotFoundError(pluginID, name string) *ProcessorNotFoundError {
	return &ProcessorNotFoundError{PluginID: pluginID, Name: name}
}

func (e *ProcessorNotFoundError) Error() string {
	return fmt.Sprintf("plugin %q does not export a processor named %q", e.PluginID, e.Name)
}

// InvalidProcessorNameError is raised at extraction time when a `processor`
// string does not have the `pluginId/processorName` shape.
type InvalidProcessorNameError struct {
	Raw string
}

// NewInvalidProcessorNameError returns a new InvalidProcessorNameError.
func NewInvalidProcessorNameError(raw string) *InvalidProcessorNameError {
	return &InvalidProcessorNameError{Raw: raw}
}

func (e *InvalidProcessorNameError) Error() string {
	return fmt.Sprintf("invalid processor name %q: expected 'pluginId/processorName'", e.Raw)
}

// ConfigRequiredError is returned when a policy marks a config source as
// required but the cascade did not find one there.
type ConfigRequiredError struct {
	Source string
	Path   string
}

// NewConfigRequiredError returns a new ConfigRequiredError.
func NewConfigRequiredError(source, path string) *ConfigRequiredError {
	return &ConfigRequiredError{Source: source, Path: path}
}

func (e *ConfigRequiredError) Error() string {
	return fmt.Sprintf("%s config is required but was not found at %q", e.Source, e.Path)
}

// PermissionDeniedError models an EACCES/EPERM hit during the ancestor walk.
// The cascade recovers from this locally by treating it as if it had
// reached the filesystem root.
type PermissionDeniedError struct {
	Path  string
	Cause error
}

// NewPermissionDeniedError returns a new PermissionDeniedError.
func NewPermissionDeniedError(path string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{Path: path, Cause: cause}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied reading %q: %v", e.Path, e.Cause)
}

func (e *PermissionDeniedError) Unwrap() error {
	return e.Cause
}
