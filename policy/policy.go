// Package policy defines whether a given piece of configuration is required
// or optional, used by the Cascade and Factory to decide whether a missing
// file is an error or something to silently skip.
package policy

// Policy is a string which defines whether a given configuration source is
// optional or required.
type Policy string

const (
	// Required designates that a configuration source must be found. If it
	// is not, the caller should fail.
	Required Policy = "required"

	// Optional designates that a configuration source is optional. If it is
	// not found, the caller should continue as if an empty config were
	// found.
	Optional Policy = "optional"
)

// Policies bundles the policies relevant to a single cascade resolution:
// whether the per-directory config file is required, whether the personal
// (home directory) config must exist when it is consulted, and whether a
// CLI-specified `--config` path must exist.
type Policies struct {
	DirectoryConfig Policy
	PersonalConfig  Policy
	CLIConfig       Policy
}

// NewDefaultPolicies returns the default policy set: per-directory configs
// are optional (a directory need not have one), the personal config is
// optional (most cascades never touch it), and an explicitly specified
// `--config` path is required (if the caller names one, it must exist).
func NewDefaultPolicies() *Policies {
	return &Policies{
		DirectoryConfig: Optional,
		PersonalConfig:  Optional,
		CLIConfig:       Required,
	}
}
