package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultPolicies(t *testing.T) {
	p := NewDefaultPolicies()
	assert.Equal(t, Optional, p.DirectoryConfig)
	assert.Equal(t, Optional, p.PersonalConfig)
	assert.Equal(t, Required, p.CLIConfig)
}

// The enforcement behavior each Policy value gates -- a Required source
// missing turns into a *cascadeerrors.ConfigRequiredError (DirectoryConfig,
// PersonalConfig) or propagates the loader's *cascadeerrors.NotFoundError
// unchanged (CLIConfig), while Optional silently falls back -- is exercised
// end to end in cascade_test.go's
// TestLoadInAncestorsRequiredDirectoryConfigErrorsWhenAncestorHasNone /
// TestLoadInAncestorsRequiredPersonalConfigErrorsWhenHomeHasNone and
// factory_test.go's TestEnumerateRequiredCLIConfigMissingPropagatesError /
// TestEnumerateOptionalCLIConfigMissingIsSkipped, which need a real
// directory tree and Cascade/Factory wiring that this package does not have
// access to.
