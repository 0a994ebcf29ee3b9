// Package matcher compiles `files`/`excludedFiles` glob lists into a
// predicate over relative file paths, using github.com/gobwas/glob for
// pattern matching.
package matcher

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/cascadefig/cascade/internal/utils"
)

// separator is the path separator gobwas/glob uses to decide where `*`
// stops and `**` is required to cross a directory boundary.
const separator = '/'

// Matcher is a compiled predicate over relative file paths, implementing
// model.Predicate.
type Matcher struct {
	includes   []glob.Glob
	excludes   []glob.Glob
	descriptor string
}

// Compile builds a Matcher from `files`/`excludedFiles` pattern lists. A
// pattern with no `/` matches at any depth (base-name matching); dot-files
// are matched like any other file; matching is case-sensitive.
//
// Compile returns (nil, nil) when both lists are empty: "neither specified"
// means no predicate, and the caller (the normalizer) should leave the
// element's MatchFile unset rather than attach an always-true Matcher.
func Compile(files, excludedFiles []string) (*Matcher, error) {
	if len(files) == 0 && len(excludedFiles) == 0 {
		return nil, nil
	}

	includes, err := compileAll(files)
	if err != nil {
		return nil, err
	}
	excludes, err := compileAll(excludedFiles)
	if err != nil {
		return nil, err
	}

	return &Matcher{
		includes:   includes,
		excludes:   excludes,
		descriptor: utils.Descriptor(descriptorSource(files, excludedFiles)),
	}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := compileOne(pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, g)
		if !strings.ContainsRune(pattern, separator) {
			top, err := glob.Compile(pattern, separator)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, top)
		}
	}
	return compiled, nil
}

// compileOne compiles a single pattern, enabling base-name matching (a
// pattern with no `/` is implicitly prefixed with `**/` so it matches in
// any subdirectory; compileAll pairs it with the bare pattern, which
// matches at the top level).
func compileOne(pattern string) (glob.Glob, error) {
	if !strings.ContainsRune(pattern, separator) {
		pattern = "**/" + pattern
	}
	return glob.Compile(pattern, separator)
}

// Match implements model.Predicate.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return true
	}

	switch {
	case len(m.includes) > 0 && len(m.excludes) > 0:
		return anyMatch(m.includes, relPath) && !anyMatch(m.excludes, relPath)
	case len(m.includes) > 0:
		return anyMatch(m.includes, relPath)
	case len(m.excludes) > 0:
		return !anyMatch(m.excludes, relPath)
	default:
		return true
	}
}

// Descriptor implements model.Predicate.
func (m *Matcher) Descriptor() string {
	if m == nil {
		return ""
	}
	return m.descriptor
}

func anyMatch(globs []glob.Glob, relPath string) bool {
	for _, g := range globs {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

func descriptorSource(files, excludedFiles []string) string {
	sortedFiles := append([]string(nil), files...)
	sortedExcludes := append([]string(nil), excludedFiles...)
	sort.Strings(sortedFiles)
	sort.Strings(sortedExcludes)
	return "files=" + strings.Join(sortedFiles, ",") + ";excludedFiles=" + strings.Join(sortedExcludes, ",")
}
