package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinExistsFindsAnExecutableOnPath(t *testing.T) {
	c := newCommand("sh")
	assert.True(t, c.binExists())
}

func TestBinExistsMissingBinary(t *testing.T) {
	c := newCommand("definitely-not-a-real-interpreter-binary")
	assert.False(t, c.binExists())
}

func TestCommandRunCapturesStdout(t *testing.T) {
	c := newCommand("sh", "-c", "echo -n hello")
	assert.NoError(t, c.run())
	assert.Equal(t, "hello", c.out.String())
}

func TestCommandRunMissingBinaryErrors(t *testing.T) {
	c := newCommand("definitely-not-a-real-interpreter-binary")
	assert.Error(t, c.run())
}
