package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiErrorEmptyHasNoErrors(t *testing.T) {
	me := NewMultiError("test")
	assert.False(t, me.HasErrors())
	assert.NoError(t, me.Err())
}

func TestMultiErrorAccumulates(t *testing.T) {
	me := NewMultiError("config validation: /x/.eslintrc.json")
	me.Add(errors.New("bad root"))
	me.Add(errors.New("bad files"))

	assert.True(t, me.HasErrors())
	assert.Error(t, me.Err())
	msg := me.Error()
	assert.Contains(t, msg, "2 error(s)")
	assert.Contains(t, msg, "bad root")
	assert.Contains(t, msg, "bad files")
}

func TestCannotReadConfigErrorUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewCannotReadConfigError("/x/.eslintrc.json", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestPluginMissingErrorUnwraps(t *testing.T) {
	cause := errors.New("not found")
	err := NewPluginMissingError("eslint-plugin-foo", "/x/.eslintrc.json", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestNotFoundErrorAsTarget(t *testing.T) {
	var wrapped error = NewNotFoundError("/x/.eslintrc.json")
	var notFound *NotFoundError
	if assert.True(t, errors.As(wrapped, &notFound)) {
		assert.Equal(t, "/x/.eslintrc.json", notFound.Path)
	}
}

func TestPermissionDeniedErrorUnwraps(t *testing.T) {
	cause := errors.New("eacces")
	err := NewPermissionDeniedError("/root/.eslintrc.json", cause)
	assert.True(t, errors.Is(err, cause))
}
