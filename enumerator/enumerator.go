// Package enumerator expands a list of input patterns (files, directories,
// globs) into the file/config pairs a consumer should process, walking
// directories recursively where required and finalizing each distinct
// per-directory configuration at most once.
package enumerator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cascadefig/cascade/cascade"
	"github.com/cascadefig/cascade/extractor"
	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/internal/metrics"
	"github.com/cascadefig/cascade/model"
)

// Flag annotates why a yielded result is notable to the caller.
type Flag int

const (
	// None is the ordinary case: the file matched and was not ignored.
	None Flag = iota

	// Warning marks a file that was directly named by an input pattern but
	// is covered by IgnoredPaths -- ESLint's historical behavior of
	// complaining loudly about an explicit but ignored argument.
	Warning

	// Ignored marks a file discovered via directory/glob expansion that
	// IgnoredPaths excludes; it is reported, not silently dropped, so a
	// caller can show why nothing was linted.
	Ignored
)

func (f Flag) String() string {
	switch f {
	case Warning:
		return "warning"
	case Ignored:
		return "ignored"
	default:
		return "none"
	}
}

// IgnoredPaths decides whether an absolute path should be excluded from
// expansion (the `.eslintignore`-equivalent predicate).
type IgnoredPaths interface {
	Ignored(absPath string) bool
}

// Result is one (path, resolved config) pair the Enumerator yields.
type Result struct {
	Path   string
	Config *model.ResolvedConfig
	Flag   Flag
}

// Enumerator expands Patterns against Cwd, finalizing each file's
// configuration against Base, an optional ConfigPath-derived override, and
// optional CLI-level elements.
type Enumerator struct {
	Cascade  *cascade.Cascade
	Patterns []string
	Cwd      string

	// Extensions is the default file-extension allowlist consulted when a
	// directory/glob walk encounters a file with no applicable selector.
	Extensions map[string]bool

	// Base is the configuration in effect above Cwd (ancestors + any
	// caller-supplied base array), already normalized and concatenated by
	// the caller (Factory).
	Base *model.ElementArray

	// ConfigPathElements, if set, are elements from an explicit --config
	// file, applied after the per-directory chain but before CLI options.
	ConfigPathElements *model.ElementArray

	// CLIElements, if set, are elements from CLI-level options (the
	// highest-precedence layer).
	CLIElements *model.ElementArray

	UseEslintrc       bool
	UsePersonalConfig bool
	Ignored           IgnoredPaths

	finalizeCache *gocache.Cache
}

// New returns an Enumerator ready to run, with its own finalize cache.
func New() *Enumerator {
	return &Enumerator{
		finalizeCache: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Enumerate expands every configured pattern in order, deduplicating
// yielded files by absolute path across patterns.
func (e *Enumerator) Enumerate() ([]Result, error) {
	if e.finalizeCache == nil {
		e.finalizeCache = gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	}
	seen := make(map[string]bool)
	var out []Result

	for _, pattern := range e.Patterns {
		results, err := e.expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			if seen[r.Path] {
				continue
			}
			seen[r.Path] = true
			out = append(out, r)
			metrics.FilesYielded.Inc()
		}
	}
	return out, nil
}

func (e *Enumerator) expandPattern(pattern string) ([]Result, error) {
	candidate := pattern
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(e.Cwd, candidate)
	}

	info, err := os.Stat(candidate)
	if err == nil {
		if info.IsDir() {
			return e.walkDirectory(candidate, nil, true)
		}
		return e.expandFile(candidate)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	return e.expandGlob(pattern)
}

// expandFile handles a directly-named file: its config is the chain
// for its containing directory (ancestors plus the directory's own
// fragment), finalized the same way any walk-discovered file would be.
func (e *Enumerator) expandFile(absPath string) ([]Result, error) {
	config := model.Concat(e.Base, nil)

	if e.UseEslintrc {
		dir := filepath.Dir(absPath)

		ownArr, err := e.Cascade.LoadOnDirectory(dir)
		if err != nil {
			return nil, err
		}
		ancestors, err := e.Cascade.LoadInAncestors(dir, e.UsePersonalConfig)
		if err != nil {
			return nil, err
		}
		config = model.Concat(ancestorsOrEmpty(ancestors), config)
		if ownArr != nil {
			config = model.Concat(ownArr, config)
		}
	}

	flag := None
	if e.Ignored != nil && e.Ignored.Ignored(absPath) {
		flag = Warning
	}

	resolved, err := e.extractFinal(config, absPath)
	if err != nil {
		return nil, err
	}
	return []Result{{Path: absPath, Config: resolved, Flag: flag}}, nil
}

func ancestorsOrEmpty(arr *model.ElementArray) *model.ElementArray {
	if arr == nil {
		return model.NewElementArray(nil)
	}
	return arr
}

// walkDirectory drives `iterateRecursive` over dir, with selector
// nil meaning "fall back to the extension/matchesFile test".
func (e *Enumerator) walkDirectory(dir string, selector glob.Glob, recursive bool) ([]Result, error) {
	parentConfig := model.Concat(e.Base, nil)
	return e.iterateRecursive(dir, parentConfig, selector, recursive)
}

func (e *Enumerator) iterateRecursive(dir string, parentConfig *model.ElementArray, selector glob.Glob, recursive bool) ([]Result, error) {
	metrics.DirectoriesWalked.Inc()

	config := parentConfig
	if e.UseEslintrc {
		ownArr, err := e.Cascade.LoadOnDirectory(dir)
		if err != nil {
			return nil, err
		}
		if ownArr != nil {
			config = model.Concat(ownArr, parentConfig)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Result
	for _, entry := range entries {
		absPath := filepath.Join(dir, entry.Name())
		relPath := e.relativize(absPath)
		ignored := e.Ignored != nil && e.Ignored.Ignored(absPath)

		if entry.IsDir() {
			if ignored {
				continue
			}
			if recursive {
				sub, err := e.iterateRecursive(absPath, config, selector, recursive)
				if err != nil {
					return nil, err
				}
				out = append(out, sub...)
			}
			continue
		}

		matched := false
		switch {
		case selector != nil:
			matched = selector.Match(relPath)
		default:
			matched = e.extensionAllowed(relPath) || config.MatchesFile(relPath)
		}
		if !matched {
			continue
		}

		flag := None
		if ignored {
			flag = Ignored
		}
		resolved, err := e.extractFinal(config, absPath)
		if err != nil {
			return nil, err
		}
		out = append(out, Result{Path: absPath, Config: resolved, Flag: flag})
	}
	return out, nil
}

func (e *Enumerator) extensionAllowed(relPath string) bool {
	if len(e.Extensions) == 0 {
		return false
	}
	return e.Extensions[filepath.Ext(relPath)]
}

func (e *Enumerator) relativize(absPath string) string {
	rel, err := filepath.Rel(e.Cwd, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(rel)
}

// extractFinal finalizes config (memoized by identity) and extracts the
// resolved configuration for absPath.
func (e *Enumerator) extractFinal(config *model.ElementArray, absPath string) (*model.ResolvedConfig, error) {
	final := e.finalize(config)
	relPath := e.relativize(absPath)
	return extractor.Extract(final, relPath)
}

// finalize composes base->ancestors->per-dir (already folded into config by
// the caller) -> --config file -> CLI options, memoized by config's
// pointer identity since the same *model.ElementArray is shared by every
// file discovered under one directory.
func (e *Enumerator) finalize(config *model.ElementArray) *model.ElementArray {
	key := identityKey(config)
	if cached, ok := e.finalizeCache.Get(key); ok {
		metrics.CacheHits.WithLabelValues("enumerator.finalize").Inc()
		return cached.(*model.ElementArray)
	}
	metrics.CacheMisses.WithLabelValues("enumerator.finalize").Inc()

	final := config
	if e.ConfigPathElements != nil {
		final = model.Concat(e.ConfigPathElements, final)
	}
	if e.CLIElements != nil {
		final = model.Concat(e.CLIElements, final)
	}

	e.finalizeCache.Set(key, final, gocache.DefaultExpiration)
	return final
}

// identityKey renders config's pointer as a cache key. This is the Go
// stand-in for "boxed pointer compared by address" -- there is no value
// equality involved, only address identity.
func identityKey(config *model.ElementArray) string {
	return fmt.Sprintf("%p", config)
}

// expandGlob handles the glob case: compute the glob parent (the
// literal path prefix before the first magic segment), then walk that
// directory with selector set to the compiled pattern, recursing only if
// the remainder can span more than one path segment.
func (e *Enumerator) expandGlob(pattern string) ([]Result, error) {
	parent, remainder := globParent(pattern)
	recursive := parent != "." && strings.Contains(remainder, "/")

	dir := parent
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.Cwd, dir)
	}

	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.ToSlash(filepath.Join(".", pattern))
	}
	selector, err := glob.Compile(full, '/')
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, cascadeerrors.NewNotFoundError(dir)
	}

	return e.walkDirectory(dir, selector, recursive)
}

// globMagic are the characters gobwas/glob treats specially.
const globMagic = "*?[]{}!"

// globParent splits pattern into its literal directory prefix (everything
// before the first path segment containing a magic character) and the
// remaining pattern tail, e.g. "src/**/*.ts" -> ("src", "**/*.ts").
func globParent(pattern string) (parent, remainder string) {
	segments := strings.Split(pattern, "/")
	idx := len(segments)
	for i, seg := range segments {
		if strings.ContainsAny(seg, globMagic) {
			idx = i
			break
		}
	}
	if idx == 0 {
		return ".", strings.Join(segments, "/")
	}
	return strings.Join(segments[:idx], "/"), strings.Join(segments[idx:], "/")
}
