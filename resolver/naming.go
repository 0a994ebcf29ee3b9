package resolver

import (
	"errors"
	"strings"
	"unicode"
)

var (
	errNoPluginResolver = errors.New("no plugin package resolver configured")
	errNoParserResolver = errors.New("no parser package resolver configured")
)

// checkNoWhitespace fails fast on a specifier containing whitespace.
func checkNoWhitespace(name string) error {
	for _, r := range name {
		if unicode.IsSpace(r) {
			return errors.New("resolver: reference name must not contain whitespace: " + name)
		}
	}
	return nil
}

// normalizeScopedName normalizes a bare or scoped package specifier to its
// long form, e.g. "foo" -> "eslint-plugin-foo", "@scope/foo" ->
// "@scope/eslint-plugin-foo", "@scope" -> "@scope/eslint-plugin". Already
// prefixed names are returned unchanged.
func normalizeScopedName(name, prefix string) string {
	if strings.HasPrefix(name, "@") {
		scope, rest, ok := splitFirst(name, "/")
		if !ok {
			return scope + "/" + prefix[:len(prefix)-1]
		}
		if strings.HasPrefix(rest, prefix) {
			return name
		}
		return scope + "/" + prefix + rest
	}
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// shorthand computes the id a long package name is keyed under once
// normalized, stripping the eslint-plugin-/eslint-config- prefix (preserving
// any scope).
func shorthand(longName, prefix string) string {
	if strings.HasPrefix(longName, "@") {
		scope, rest, ok := splitFirst(longName, "/")
		if !ok {
			return longName
		}
		return scope + "/" + strings.TrimPrefix(rest, prefix)
	}
	return strings.TrimPrefix(longName, prefix)
}

// splitFirst splits s on the first occurrence of sep.
func splitFirst(s, sep string) (before, after string, ok bool) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// splitLast splits s on the last occurrence of sep, used to pull
// `pkg/configName` apart from a `plugin:pkg/configName` body where pkg
// itself may contain a `/` (scoped packages).
func splitLast(s, sep string) (before, after string, ok bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}
