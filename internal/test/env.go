package test

import (
	"os"
	"testing"
)

// SetEnv is a wrapper around os.Setenv with test-failure handling, used to
// scope HOME overrides for personal-config fallback tests.
func SetEnv(t *testing.T, key, value string) {
	if err := os.Setenv(key, value); err != nil {
		t.Fatal(err)
	}
}

// RemoveEnv is a wrapper around os.Unsetenv with test-failure handling,
// meant to be deferred right after SetEnv.
func RemoveEnv(t *testing.T, key string) {
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}
