package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceLoadedAndResolve(t *testing.T) {
	ref := &Reference{ID: "foo", Definition: &PluginDefinition{LongName: "eslint-plugin-foo"}}
	assert.True(t, ref.Loaded())
	def, err := ref.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, ref.Definition, def)
}

func TestReferenceFailedResolvePropagatesErr(t *testing.T) {
	cause := errors.New("boom")
	ref := &Reference{ID: "foo", Err: cause}
	assert.False(t, ref.Loaded())
	_, err := ref.Resolve()
	assert.True(t, errors.Is(err, cause))
}

func TestReferenceSame(t *testing.T) {
	a := &Reference{FilePath: "/plugins/foo.js"}
	b := &Reference{FilePath: "/plugins/foo.js"}
	assert.True(t, a.Same(b))

	c := &Reference{FilePath: "/plugins/bar.js"}
	assert.False(t, a.Same(c))

	def := &PluginDefinition{}
	d := &Reference{Definition: def}
	e := &Reference{Definition: def}
	assert.True(t, d.Same(e))

	assert.False(t, d.Same(nil))
}

func TestReferenceSameIdentity(t *testing.T) {
	ref := &Reference{}
	assert.True(t, ref.Same(ref))
}
