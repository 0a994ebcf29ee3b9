// Package loader reads a config file by path and dispatches to the right
// parsing strategy by file name/extension: a single-file, format-dispatching
// reader over JSON, YAML, and executable config scripts.
package loader

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	cascadeerrors "github.com/cascadefig/cascade/internal/errors"
	"github.com/cascadefig/cascade/internal/logger"
	"github.com/cascadefig/cascade/internal/metrics"
	"github.com/cascadefig/cascade/internal/utils"
)

// ScriptRunner runs a script-evaluated config file and returns the JSON it
// prints to stdout, e.g. `node -e "console.log(JSON.stringify(require(path)))"`.
// Script-evaluated configs are out of the Go runtime's reach to `require`
// directly, so the runner is injectable; Loader falls back to
// DefaultScriptRunner (sdk/scripts/command.go's Command, adapted) when none
// is set.
type ScriptRunner func(path string) ([]byte, error)

// Loader reads config files and returns their raw decoded contents (or nil
// for "no config here", distinct from NotFound -- see Load).
type Loader struct {
	// Script runs `.js`/script-semantics config files. Defaults to
	// DefaultScriptRunner.
	Script ScriptRunner
}

// New returns a Loader using DefaultScriptRunner.
func New() *Loader {
	return &Loader{Script: DefaultScriptRunner}
}

// Load reads the file at path and returns its raw decoded top-level value:
// either a map[string]interface{} (the ordinary object form) or a
// []interface{} (the array-of-fragments form, each entry itself a
// top-level-or-override fragment).
//
// A missing file returns a *cascadeerrors.NotFoundError, a condition the
// Cascade treats as locally recoverable. A parse failure, or a top-level
// value that is neither a mapping nor a sequence, returns a
// *cascadeerrors.CannotReadConfigError. A package.json with no
// `eslintConfig` member returns (nil, nil) -- "no config here", not an
// error. A YAML file containing only a null document returns an empty
// map, i.e. an empty config.
func (l *Loader) Load(path string) (interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, cascadeerrors.NewNotFoundError(path)
		}
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(path)

	logger.WithFields(logger.Fields{"path": path, "ext": ext}).Debug("[loader] loading config file")

	var (
		data interface{}
		err  error
	)

	switch {
	case base == "package.json":
		data, err = l.loadPackageJSON(path)
	case ext == ".json":
		data, err = l.loadJSON(path)
	case ext == ".yaml", ext == ".yml":
		data, err = l.loadYAML(path)
	case base == ".eslintrc":
		data, err = l.loadYAML(path)
	case ext == ".js", ext == "":
		data, err = l.loadScript(path)
	default:
		data, err = l.loadYAML(path)
	}
	if err != nil {
		return nil, err
	}

	if data != nil {
		metrics.ConfigsLoaded.Inc()
		logger.WithFields(logger.Fields{
			"path": path,
			"data": utils.RedactSecrets(data),
		}).Debug("[loader] loaded config data")
	}
	return data, nil
}

// asTopLevelShape accepts v only if it is a map[string]interface{} or a
// []interface{} (the two shapes Validate/DecodeConfigDataList know how to
// handle), rejecting a bare scalar or any other decoded shape.
func asTopLevelShape(path string, v interface{}) (interface{}, error) {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return v, nil
	default:
		return nil, cascadeerrors.NewCannotReadConfigError(path, errNotAMapping(path))
	}
}

func (l *Loader) loadJSON(path string) (interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}
	stripped := StripComments(raw)

	var out interface{}
	if err := json.Unmarshal(stripped, &out); err != nil {
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}
	return asTopLevelShape(path, out)
}

func (l *Loader) loadYAML(path string) (interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}
	if doc == nil {
		// A null YAML document is an empty config, not an error.
		return map[string]interface{}{}, nil
	}

	return asTopLevelShape(path, utils.NormalizeYAMLMap(doc))
}

func (l *Loader) loadPackageJSON(path string) (interface{}, error) {
	full, err := l.loadJSON(path)
	if err != nil {
		return nil, err
	}
	fullMap, ok := full.(map[string]interface{})
	if !ok {
		return nil, cascadeerrors.NewCannotReadConfigError(path, errNotAMapping(path))
	}
	eslintConfig, ok := fullMap["eslintConfig"]
	if !ok {
		// No eslintConfig member: "no config here", not an error.
		return nil, nil
	}
	return asTopLevelShape(path, eslintConfig)
}

func (l *Loader) loadScript(path string) (interface{}, error) {
	runner := l.Script
	if runner == nil {
		runner = DefaultScriptRunner
	}

	out, err := runner(path)
	if err != nil {
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}

	var cfg interface{}
	if err := json.Unmarshal(out, &cfg); err != nil {
		return nil, cascadeerrors.NewCannotReadConfigError(path, err)
	}
	return asTopLevelShape(path, cfg)
}
