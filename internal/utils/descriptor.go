package utils

import "github.com/google/uuid"

// descriptorNamespace is the namespace used to derive deterministic
// descriptor IDs. Using a fixed namespace (rather than a random one) means
// the same descriptor input always yields the same UUID across process
// restarts, which is required for stable matchFile identity and Element
// naming.
var descriptorNamespace = uuid.MustParse("6f7c9e0a-9b2e-4b8a-9b1e-2f6a7b9c0d1e")

// Descriptor computes a deterministic, content-addressed identifier for the
// given origin string (e.g. a JSON-ish rendering of a glob pattern set, or a
// config file path + name pair), using uuid.NewSHA1 keyed off a fixed
// namespace for a standard, collision-resistant identity.
func Descriptor(origin string) string {
	return uuid.NewSHA1(descriptorNamespace, []byte(origin)).String()
}
