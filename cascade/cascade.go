// Package cascade handles per-directory config discovery and the ancestor
// walk that assembles the configuration in effect above a leaf directory,
// memoizing per-directory results against a patrickmn/go-cache instance.
package cascade

import (
	"errors"
	"os"
	"path/filepath"

	gocache "github.com/patrickmn/go-cache"

	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/internal/logger"
	"github.com/cascadefig/cascade/internal/metrics"
	"github.com/cascadefig/cascade/loader"
	"github.com/cascadefig/cascade/model"
	"github.com/cascadefig/cascade/normalizer"
	"github.com/cascadefig/cascade/policy"
	"github.com/cascadefig/cascade/validator"
)

// filenames is the fixed, ordered list of config file names searched for in
// every directory. The first one present and yielding a non-null
// config wins; the rest are ignored.
var filenames = []string{
	".eslintrc.js",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc.json",
	".eslintrc",
	"package.json",
}

// Cascade assembles per-directory and ancestor configuration, wiring the
// Loader, Validator, and Normalizer components together.
type Cascade struct {
	Loader     *loader.Loader
	Normalizer *normalizer.Normalizer
	Policies   *policy.Policies

	// dirCache memoizes LoadOnDirectory results by absolute directory path,
	// so repeated ancestor walks sharing a prefix (siblings within one
	// enumeration) don't re-read and re-normalize the same file twice.
	dirCache *gocache.Cache
}

// New returns a Cascade using the given components, with a directory
// result cache that never expires entries on its own: a long-lived
// cache.Cache instance scoped to one resolution run.
func New(l *loader.Loader, n *normalizer.Normalizer, policies *policy.Policies) *Cascade {
	if policies == nil {
		policies = policy.NewDefaultPolicies()
	}
	return &Cascade{
		Loader:     l,
		Normalizer: n,
		Policies:   policies,
		dirCache:   gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// LoadOnDirectory implements `loadConfigDataOnDirectory`: try each
// candidate filename in dir, in order, and normalize the first one found
// that yields a non-null config. Returns (nil, nil) if no config file is
// present (or every present file yields "no config here", e.g. a
// package.json lacking an `eslintConfig` member).
func (c *Cascade) LoadOnDirectory(dir string) (*model.ElementArray, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if cached, ok := c.dirCache.Get(abs); ok {
		metrics.CacheHits.WithLabelValues("cascade.directory").Inc()
		arr, _ := cached.(*model.ElementArray)
		return arr, nil
	}
	metrics.CacheMisses.WithLabelValues("cascade.directory").Inc()

	arr, err := c.loadOnDirectoryUncached(abs)
	if err != nil {
		return nil, err
	}
	c.dirCache.Set(abs, arr, gocache.DefaultExpiration)
	return arr, nil
}

func (c *Cascade) loadOnDirectoryUncached(dir string) (*model.ElementArray, error) {
	for _, name := range filenames {
		path := filepath.Join(dir, name)

		raw, err := c.Loader.Load(path)
		if err != nil {
			var notFound *cascadeerrors.NotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		if raw == nil {
			// Present on disk but "no config here" (a package.json with
			// no eslintConfig) -- keep looking.
			continue
		}

		if err := validator.ValidateAny(raw, validator.TopLevel, path); err != nil {
			return nil, err
		}
		cfgs, err := model.DecodeConfigDataList(raw)
		if err != nil {
			return nil, err
		}

		arr, err := c.Normalizer.NormalizeAll(cfgs, normalizer.Options{FilePath: path, Name: path})
		if err != nil {
			return nil, err
		}
		logger.WithFields(logger.Fields{"dir": dir, "file": name}).Debug("[cascade] loaded directory config")
		return arr, nil
	}
	return nil, nil
}

// LoadInAncestors implements `loadInAncestors`: starting from
// parent(leafDir), step upward prepending each ancestor's elements ahead of
// what has already been accumulated, stopping early at a `root: true`
// config or silently at a permission error, and continuing until the
// filesystem root is reached. If nothing was found and usePersonalConfig is
// set, a single attempt is made against the user's home directory.
func (c *Cascade) LoadInAncestors(leafDir string, usePersonalConfig bool) (*model.ElementArray, error) {
	acc := model.NewElementArray(nil)

	dir := filepath.Dir(leafDir)
	for {
		metrics.DirectoriesWalked.Inc()

		arr, err := c.LoadOnDirectory(dir)
		if err != nil {
			if isPermissionError(err) {
				logger.WithField("dir", dir).Debug("[cascade] permission denied, truncating ancestor walk")
				break
			}
			return nil, err
		}

		if arr == nil && c.Policies.DirectoryConfig == policy.Required {
			return nil, cascadeerrors.NewConfigRequiredError("directory", dir)
		}

		if arr != nil {
			acc = prepend(arr, acc)
			if arr.IsRoot() {
				break
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(acc.Elements) == 0 && usePersonalConfig {
		home, err := os.UserHomeDir()
		if err == nil {
			personalArr, err := c.LoadOnDirectory(home)
			if err != nil && !isPermissionError(err) {
				return nil, err
			}
			if personalArr != nil {
				acc = personalArr
			} else if c.Policies.PersonalConfig == policy.Required {
				return nil, cascadeerrors.NewConfigRequiredError("personal", home)
			}
		}
	}

	return acc, nil
}

// prepend returns a new ElementArray with dirArr's elements placed before
// acc's: the ancestor walk runs leafward->rootward, but the emitted array
// must read root->leaf.
func prepend(dirArr, acc *model.ElementArray) *model.ElementArray {
	combined := make([]*model.Element, 0, len(dirArr.Elements)+len(acc.Elements))
	combined = append(combined, dirArr.Elements...)
	combined = append(combined, acc.Elements...)
	return model.NewElementArray(combined)
}

func isPermissionError(err error) bool {
	var perm *cascadeerrors.PermissionDeniedError
	if errors.As(err, &perm) {
		return true
	}
	var cannotRead *cascadeerrors.CannotReadConfigError
	if errors.As(err, &cannotRead) {
		return os.IsPermission(cannotRead.Cause)
	}
	return false
}
