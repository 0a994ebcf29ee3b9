// Package extractor reduces an ElementArray and a target file path into a
// single ResolvedConfig, applying field-specific merge policies: first-
// writer-wins, deep-merge-without-overwrite, or full-replace, depending on
// the field.
//
// Extraction could live as a method on ElementArray itself, but living here
// as a free function over *model.ElementArray avoids a model<->extractor
// import cycle -- model has no reason to know about merge policy.
package extractor

import (
	"strings"
	"time"

	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/internal/metrics"
	"github.com/cascadefig/cascade/model"
)

// Extract reduces arr against relPath into a ResolvedConfig, walking the
// array from end to start and applying first-writer-wins / deep-merge /
// conflict-detection policies per element field.
func Extract(arr *model.ElementArray, relPath string) (*model.ResolvedConfig, error) {
	timer := time.Now()
	defer func() { metrics.ExtractDuration.Observe(time.Since(timer).Seconds()) }()

	result := model.NewResolvedConfig()
	var processorRaw string

	if arr != nil {
		for i := len(arr.Elements) - 1; i >= 0; i-- {
			e := arr.Elements[i]
			if !e.Matches(relPath) {
				continue
			}

			if result.Parser == nil && e.Parser != nil {
				result.Parser = e.Parser
			}
			if processorRaw == "" && e.Processor != "" {
				processorRaw = e.Processor
			}

			if err := deepAssignBool(result.Env, e.Env); err != nil {
				return nil, err
			}
			if err := deepAssignString(result.Globals, e.Globals); err != nil {
				return nil, err
			}
			if err := deepAssignAny(result.ParserOptions, e.ParserOptions); err != nil {
				return nil, err
			}
			if err := deepAssignAny(result.Settings, e.Settings); err != nil {
				return nil, err
			}

			if err := mergePlugins(result, e); err != nil {
				return nil, err
			}
			mergeRules(result, e)
		}
	}

	if result.Parser != nil {
		if _, err := result.Parser.Resolve(); err != nil {
			return nil, err
		}
	}

	resolved, err := resolveProcessor(processorRaw, result)
	if err != nil {
		return nil, err
	}
	result.Processor = resolved

	return result, nil
}

// deepAssignBool implements the "deep assign-without-overwrite" policy
// for env: assign a key from source into target only if target
// doesn't already have it.
func deepAssignBool(target, source map[string]bool) error {
	for k, v := range source {
		if _, ok := target[k]; !ok {
			target[k] = v
		}
	}
	return nil
}

func deepAssignString(target, source map[string]string) error {
	for k, v := range source {
		if _, ok := target[k]; !ok {
			target[k] = v
		}
	}
	return nil
}

// deepAssignAny implements the same policy for parserOptions/settings,
// which hold arbitrarily nested map values: a key already present in
// target is kept whatever its value, and where both sides hold a nested
// map the policy recurses into it. A nested map missing from target is
// filled into a fresh map rather than shared with source; arrays are
// assigned whole, never concatenated.
func deepAssignAny(target, source map[string]interface{}) error {
	for key, sv := range source {
		sm, isMap := sv.(map[string]interface{})
		tv, exists := target[key]
		if !exists {
			if !isMap {
				target[key] = sv
				continue
			}
			tv = map[string]interface{}{}
			target[key] = tv
		}
		if tm, ok := tv.(map[string]interface{}); ok && isMap {
			_ = deepAssignAny(tm, sm)
		}
	}
	return nil
}

// mergePlugins attaches e's plugin references onto result, raising a
// reference's stored lazy error at the moment it is actually attached
// (which is what "used during extraction" means), and detecting
// conflicting definitions for the same plugin id.
func mergePlugins(result *model.ResolvedConfig, e *model.Element) error {
	for id, ref := range e.Plugins {
		existing, ok := result.Plugins[id]
		if !ok {
			if _, err := ref.Resolve(); err != nil {
				return err
			}
			result.Plugins[id] = ref
			continue
		}
		if !existing.Same(ref) {
			return cascadeerrors.NewPluginConflictError(id, existing.ImporterPath, ref.ImporterPath)
		}
	}
	return nil
}

// mergeRules implements the rules merge policy: a rule absent from
// the target is copied in (promoting a bare severity to a single-element
// slice); a target holding only a severity inherits a subsequently-merged
// source's option tail.
func mergeRules(result *model.ResolvedConfig, e *model.Element) {
	for id, raw := range e.Rules {
		source := normalizeRuleValue(raw)
		existing, ok := result.Rules[id]
		if !ok {
			result.Rules[id] = source
			continue
		}
		existingSlice, ok := existing.([]interface{})
		if !ok || len(existingSlice) != 1 || len(source) <= 1 {
			continue
		}
		merged := make([]interface{}, 0, len(existingSlice)+len(source)-1)
		merged = append(merged, existingSlice...)
		merged = append(merged, source[1:]...)
		result.Rules[id] = merged
	}
}

// normalizeRuleValue promotes a bare severity (a string or number) to a
// single-element slice so every rule value the merge deals with is
// uniformly `[]interface{}{severity, options...}`.
func normalizeRuleValue(v interface{}) []interface{} {
	if slice, ok := v.([]interface{}); ok {
		return slice
	}
	return []interface{}{v}
}

// resolveProcessor turns a winning `processor` string into a {definition,
// id} pair, looking the plugin id up in the already-merged plugins map.
func resolveProcessor(raw string, result *model.ResolvedConfig) (*model.ResolvedProcessor, error) {
	if raw == "" {
		return nil, nil
	}

	idx := strings.LastIndex(raw, "/")
	if idx < 0 {
		return nil, cascadeerrors.NewInvalidProcessorNameError(raw)
	}
	pluginID, procName := raw[:idx], raw[idx+1:]
	if pluginID == "" || procName == "" {
		return nil, cascadeerrors.NewInvalidProcessorNameError(raw)
	}

	ref, ok := result.Plugins[pluginID]
	if !ok {
		return nil, cascadeerrors.NewProcessorNotFoundError(pluginID, procName)
	}
	def, ok := ref.Definition.(*model.PluginDefinition)
	if !ok || def == nil {
		return nil, cascadeerrors.NewProcessorNotFoundError(pluginID, procName)
	}
	procDef, ok := def.Processors[procName]
	if !ok {
		return nil, cascadeerrors.NewProcessorNotFoundError(pluginID, procName)
	}
	return &model.ResolvedProcessor{Definition: procDef, ID: raw}, nil
}
