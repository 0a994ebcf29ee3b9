package utils

import "strings"

// RedactSecrets walks a decoded config value (the map/slice/scalar tree that
// comes out of the JSON/YAML loaders) and returns a copy with any string
// value whose key contains "pass", "secret", or "token" (case-insensitive)
// replaced by "REDACTED". It is used before logging a config's `settings`/
// `parserOptions` fields so a debug trace never leaks credentials a user
// stashed in their config.
//
// Every value flowing through the cascade's loaders is already a generic
// map[string]interface{}/[]interface{}/scalar tree, so a plain type-switch
// walk covers it without reflection.
func RedactSecrets(in interface{}) interface{} {
	switch v := in.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			if isSecretKey(key) {
				if _, ok := val.(string); ok {
					out[key] = "REDACTED"
					continue
				}
			}
			out[key] = RedactSecrets(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = RedactSecrets(val)
		}
		return out
	default:
		return in
	}
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range []string{"pass", "secret", "token"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
