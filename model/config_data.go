// Package model defines the core data types the cascade resolver operates
// on: the tree-shaped ConfigData/OverrideData input, the flattened Element/
// ElementArray produced by normalization, the Reference a parser or plugin
// specifier resolves to, and the ResolvedConfig an extraction produces.
package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ConfigData is the tree-shaped input config. It mirrors the raw shape
// a `.eslintrc.*` file or `package.json#eslintConfig` member decodes to,
// after `extends`/`plugins` have been normalized from their "string or
// array" input forms into slices.
type ConfigData struct {
	Root          bool                   `mapstructure:"root"`
	Extends       []string               `mapstructure:"-"`
	Overrides     []*OverrideData        `mapstructure:"-"`
	Parser        string                 `mapstructure:"parser"`
	ParserOptions map[string]interface{} `mapstructure:"parserOptions"`
	Plugins       []string               `mapstructure:"-"`
	Env           map[string]bool        `mapstructure:"env"`
	Globals       map[string]string      `mapstructure:"globals"`
	Rules         map[string]interface{} `mapstructure:"rules"`
	Settings      map[string]interface{} `mapstructure:"settings"`
	Processor     string                 `mapstructure:"processor"`

	// EcmaFeatures is deprecated top-level-only input; the validator emits a
	// warning when it is present but it is otherwise inert.
	EcmaFeatures map[string]interface{} `mapstructure:"ecmaFeatures"`

	// Files/ExcludedFiles are only meaningful inside an override fragment,
	// but they are parsed here too since a nested `extends` target can, in
	// principle, be normalized through the same decode path as a top-level
	// fragment.
	Files         []string `mapstructure:"-"`
	ExcludedFiles []string `mapstructure:"-"`
}

// OverrideData is like ConfigData but requires `files` and forbids `root`.
// It embeds ConfigData so override fragments decode through the same
// field set.
type OverrideData struct {
	ConfigData `mapstructure:",squash"`
}

// DecodeConfigData decodes a raw map (as produced by the loader's JSON/YAML
// parsing) into a ConfigData, normalizing the "string or array" input shapes
// for `extends`, `plugins`, `files`, and `excludedFiles` along the way.
//
// It uses the standard mapstructure.NewDecoder + ComposeDecodeHookFunc
// pattern to decode a loosely-typed map into a typed struct, then
// separately normalizes the "string or array" fields, which mapstructure's
// built-in hooks do not handle uniformly across arbitrarily-nested map/slice
// shapes on their own.
func DecodeConfigData(raw map[string]interface{}) (*ConfigData, error) {
	cfg := &ConfigData{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToSliceHookFunc(",")),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	cfg.Extends = toStringSlice(raw["extends"])
	cfg.Plugins = pluginsToStringSlice(raw["plugins"])
	cfg.Files = toStringSlice(raw["files"])
	cfg.ExcludedFiles = toStringSlice(raw["excludedFiles"])

	if overridesRaw, ok := raw["overrides"].([]interface{}); ok {
		for _, o := range overridesRaw {
			om, ok := o.(map[string]interface{})
			if !ok {
				continue
			}
			base, err := DecodeConfigData(om)
			if err != nil {
				return nil, err
			}
			cfg.Overrides = append(cfg.Overrides, &OverrideData{ConfigData: *base})
		}
	}

	return cfg, nil
}

// DecodeConfigDataList decodes a loader's raw top-level value into an
// ordered list of ConfigData fragments. raw is either a
// map[string]interface{} (the ordinary case, yielding a single-element
// list) or a []interface{} -- the array-of-fragments input form -- whose
// entries are each decoded as their own fragment, in order.
func DecodeConfigDataList(raw interface{}) ([]*ConfigData, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		cfg, err := DecodeConfigData(v)
		if err != nil {
			return nil, err
		}
		return []*ConfigData{cfg}, nil
	case []interface{}:
		out := make([]*ConfigData, 0, len(v))
		for i, entry := range v {
			fragment, ok := entry.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("top-level fragment %d must be an object, got %T", i, entry)
			}
			cfg, err := DecodeConfigData(fragment)
			if err != nil {
				return nil, err
			}
			out = append(out, cfg)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("top-level config must be an object or a sequence of fragments, got %T", raw)
	}
}

// toStringSlice normalizes a field that may be absent, a single string, or a
// sequence of strings into a []string. A missing/nil value yields nil.
func toStringSlice(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return nil
	}
}

// pluginsToStringSlice normalizes the `plugins` field, which may be either
// a sequence of strings or a mapping of prefix->string. For the
// mapping form, only the values (the actual package specifiers) matter for
// resolution; the prefix is a caller-side alias that the resolver does not
// need to reproduce the rest of the cascade's behavior.
func pluginsToStringSlice(v interface{}) []string {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make([]string, 0, len(t))
		for _, val := range t {
			out = append(out, fmt.Sprintf("%v", val))
		}
		return out
	default:
		return toStringSlice(v)
	}
}
