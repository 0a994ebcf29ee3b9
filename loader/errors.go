package loader

import "fmt"

func errNotAMapping(path string) error {
	return fmt.Errorf("config at %q does not decode to a mapping or a sequence of fragments", path)
}
