package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScopedNameBare(t *testing.T) {
	assert.Equal(t, "eslint-plugin-foo", normalizeScopedName("foo", "eslint-plugin-"))
}

func TestNormalizeScopedNameAlreadyPrefixed(t *testing.T) {
	assert.Equal(t, "eslint-plugin-foo", normalizeScopedName("eslint-plugin-foo", "eslint-plugin-"))
}

func TestNormalizeScopedNameScoped(t *testing.T) {
	assert.Equal(t, "@scope/eslint-plugin-foo", normalizeScopedName("@scope/foo", "eslint-plugin-"))
}

func TestNormalizeScopedNameScopedAlreadyPrefixed(t *testing.T) {
	assert.Equal(t, "@scope/eslint-plugin-foo", normalizeScopedName("@scope/eslint-plugin-foo", "eslint-plugin-"))
}

func TestShorthandBare(t *testing.T) {
	assert.Equal(t, "foo", shorthand("eslint-plugin-foo", "eslint-plugin-"))
}

func TestShorthandScoped(t *testing.T) {
	assert.Equal(t, "@scope/foo", shorthand("@scope/eslint-plugin-foo", "eslint-plugin-"))
}

func TestCheckNoWhitespace(t *testing.T) {
	assert.NoError(t, checkNoWhitespace("eslint-plugin-foo"))
	assert.Error(t, checkNoWhitespace("eslint plugin foo"))
}

func TestSplitLastHandlesScopedPackages(t *testing.T) {
	pkg, name, ok := splitLast("@scope/thing/configName", "/")
	if assert.True(t, ok) {
		assert.Equal(t, "@scope/thing", pkg)
		assert.Equal(t, "configName", name)
	}
}

func TestSplitFirstNoSeparator(t *testing.T) {
	before, after, ok := splitFirst("nosep", "/")
	assert.False(t, ok)
	assert.Equal(t, "nosep", before)
	assert.Empty(t, after)
}
