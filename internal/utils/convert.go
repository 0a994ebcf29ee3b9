// Package utils holds small, dependency-light helpers shared across the
// cascade resolver's components: map normalization, redaction for logging,
// and stable descriptor IDs.
package utils

import "fmt"

// NormalizeYAMLMap recursively converts the map[interface{}]interface{}
// nodes that gopkg.in/yaml.v2 produces into map[string]interface{}, so that
// YAML-sourced config data and JSON-sourced config data can be treated
// identically by everything downstream (the validator, the normalizer,
// mapstructure decoding).
//
// This is the same normalization a viper-backed config loader performs on
// nested YAML values before handing them to a generic decoder.
func NormalizeYAMLMap(in interface{}) interface{} {
	switch v := in.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[fmt.Sprintf("%v", key)] = NormalizeYAMLMap(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[key] = NormalizeYAMLMap(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = NormalizeYAMLMap(val)
		}
		return out
	default:
		return in
	}
}
