// Package validator validates raw decoded config data against a two-mode
// schema (top-level vs. override), collecting every violation into a
// single MultiError by walking the raw map field by field instead of
// stopping at the first problem.
package validator

import (
	"fmt"

	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/internal/logger"
)

// commonKeys are permitted in both top-level and override fragments.
var commonKeys = map[string]bool{
	"env":           true,
	"extends":       true,
	"globals":       true,
	"overrides":     true,
	"parser":        true,
	"parserOptions": true,
	"plugins":       true,
	"rules":         true,
	"settings":      true,
	"processor":     true,
}

// Mode selects which schema a fragment is checked against.
type Mode int

const (
	// TopLevel allows `root` and the deprecated `ecmaFeatures`, in addition
	// to the common key set.
	TopLevel Mode = iota

	// Override requires `files`, allows `excludedFiles`, and forbids
	// `root`.
	Override
)

// ValidateAny checks a loader's raw decoded top-level value against the
// schema for mode. raw is either a map[string]interface{} (validated
// directly) or a []interface{} -- the array-of-fragments input form --
// whose entries are each validated as their own fragment of mode, with
// every violation across every entry collected into one MultiError.
func ValidateAny(raw interface{}, mode Mode, path string) error {
	switch v := raw.(type) {
	case map[string]interface{}:
		return Validate(v, mode, path)
	case []interface{}:
		errs := cascadeerrors.NewMultiError("config validation: " + path)
		for i, entry := range v {
			fragment, ok := entry.(map[string]interface{})
			if !ok {
				errs.Add(fmt.Errorf("fragment %d must be an object, got %T", i, entry))
				continue
			}
			if err := Validate(fragment, mode, path); err != nil {
				errs.Add(err)
			}
		}
		if errs.HasErrors() {
			return cascadeerrors.NewInvalidConfigError(path, errs.Error())
		}
		return nil
	default:
		return cascadeerrors.NewInvalidConfigError(path, fmt.Sprintf("top-level config must be an object or a sequence of fragments, got %T", raw))
	}
}

// Validate checks raw config data against the schema for mode, returning an
// *internal/errors.InvalidConfigError wrapping a MultiError of every
// violation found, or nil if the data is valid.
func Validate(raw map[string]interface{}, mode Mode, path string) error {
	errs := cascadeerrors.NewMultiError("config validation: " + path)

	switch mode {
	case TopLevel:
		validateTopLevel(raw, errs)
	case Override:
		validateOverride(raw, errs)
	}

	validatePlugins(raw, errs)

	if errs.HasErrors() {
		return cascadeerrors.NewInvalidConfigError(path, errs.Error())
	}
	return nil
}

func validateTopLevel(raw map[string]interface{}, errs *cascadeerrors.MultiError) {
	if v, ok := raw["root"]; ok {
		if _, ok := v.(bool); !ok {
			errs.Add(fmt.Errorf("'root' must be a boolean, got %T", v))
		}
	}
	if _, ok := raw["ecmaFeatures"]; ok {
		logger.WithField("path", "top-level").Warn("[validator] 'ecmaFeatures' is deprecated")
	}
	if v, ok := raw["overrides"]; ok {
		if _, ok := v.([]interface{}); !ok {
			errs.Add(fmt.Errorf("'overrides' must be a sequence, got %T", v))
		}
	}
}

func validateOverride(raw map[string]interface{}, errs *cascadeerrors.MultiError) {
	if _, ok := raw["root"]; ok {
		errs.Add(fmt.Errorf("'root' is not allowed inside an override"))
	}

	files, ok := raw["files"]
	if !ok {
		errs.Add(fmt.Errorf("override is missing required field 'files'"))
	} else if err := validateFilesField(files, "files"); err != nil {
		errs.Add(err)
	}

	if excluded, ok := raw["excludedFiles"]; ok {
		if err := validateFilesField(excluded, "excludedFiles"); err != nil {
			errs.Add(err)
		}
	}
}

// validateFilesField checks that a `files`/`excludedFiles` value is a
// string, or a non-empty sequence of strings (: "a sequence must have at
// least one entry; all items are strings").
func validateFilesField(v interface{}, field string) error {
	switch t := v.(type) {
	case string:
		return nil
	case []interface{}:
		if len(t) == 0 {
			return fmt.Errorf("'%s' must have at least one entry", field)
		}
		for _, item := range t {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("'%s' entries must all be strings, got %T", field, item)
			}
		}
		return nil
	default:
		return fmt.Errorf("'%s' must be a string or a sequence of strings, got %T", field, v)
	}
}

// validatePlugins checks the `plugins` field shape common to both modes:
// a sequence of strings, or a mapping of prefix->string.
func validatePlugins(raw map[string]interface{}, errs *cascadeerrors.MultiError) {
	v, ok := raw["plugins"]
	if !ok {
		return
	}
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if _, ok := item.(string); !ok {
				errs.Add(fmt.Errorf("'plugins' entries must all be strings, got %T", item))
			}
		}
	case map[string]interface{}:
		for prefix, val := range t {
			if _, ok := val.(string); !ok {
				errs.Add(fmt.Errorf("'plugins' mapping value for %q must be a string, got %T", prefix, val))
			}
		}
	default:
		errs.Add(fmt.Errorf("'plugins' must be a sequence of strings or a mapping of prefix->string, got %T", v))
	}
}
