package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeConfigDataBasicFields(t *testing.T) {
	raw := map[string]interface{}{
		"root":    true,
		"extends": "eslint:recommended",
		"parser":  "babel-eslint",
		"env":     map[string]interface{}{"browser": true},
		"rules": map[string]interface{}{
			"no-console": "error",
		},
	}

	cfg, err := DecodeConfigData(raw)
	assert.NoError(t, err)
	assert.True(t, cfg.Root)
	assert.Equal(t, []string{"eslint:recommended"}, cfg.Extends)
	assert.Equal(t, "babel-eslint", cfg.Parser)
	assert.True(t, cfg.Env["browser"])
}

func TestDecodeConfigDataExtendsArray(t *testing.T) {
	raw := map[string]interface{}{
		"extends": []interface{}{"eslint:recommended", "plugin:react/recommended"},
	}
	cfg, err := DecodeConfigData(raw)
	assert.NoError(t, err)
	assert.Len(t, cfg.Extends, 2)
}

func TestDecodeConfigDataPluginsMapForm(t *testing.T) {
	raw := map[string]interface{}{
		"plugins": map[string]interface{}{
			"r": "react",
		},
	}
	cfg, err := DecodeConfigData(raw)
	assert.NoError(t, err)
	if assert.Len(t, cfg.Plugins, 1) {
		assert.Equal(t, "react", cfg.Plugins[0])
	}
}

func TestDecodeConfigDataOverrides(t *testing.T) {
	raw := map[string]interface{}{
		"overrides": []interface{}{
			map[string]interface{}{
				"files": []interface{}{"*.ts"},
				"rules": map[string]interface{}{"no-var": "error"},
			},
		},
	}
	cfg, err := DecodeConfigData(raw)
	assert.NoError(t, err)
	if assert.Len(t, cfg.Overrides, 1) {
		ov := cfg.Overrides[0]
		assert.Equal(t, []string{"*.ts"}, ov.Files)
		assert.Equal(t, "error", ov.Rules["no-var"])
	}
}

func TestDecodeConfigDataMissingFieldsAreNil(t *testing.T) {
	cfg, err := DecodeConfigData(map[string]interface{}{})
	assert.NoError(t, err)
	assert.Nil(t, cfg.Extends)
	assert.False(t, cfg.Root)
}

func TestDecodeConfigDataListSingleObject(t *testing.T) {
	raw := map[string]interface{}{"rules": map[string]interface{}{"no-console": "error"}}
	cfgs, err := DecodeConfigDataList(raw)
	assert.NoError(t, err)
	if assert.Len(t, cfgs, 1) {
		assert.Equal(t, "error", cfgs[0].Rules["no-console"])
	}
}

func TestDecodeConfigDataListArrayOfFragments(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"rules": map[string]interface{}{"a": "error"}},
		map[string]interface{}{"root": true},
	}
	cfgs, err := DecodeConfigDataList(raw)
	assert.NoError(t, err)
	if assert.Len(t, cfgs, 2) {
		assert.Equal(t, "error", cfgs[0].Rules["a"])
		assert.True(t, cfgs[1].Root)
	}
}

func TestDecodeConfigDataListRejectsNonObjectFragment(t *testing.T) {
	raw := []interface{}{"not-an-object"}
	_, err := DecodeConfigDataList(raw)
	assert.Error(t, err)
}

func TestDecodeConfigDataListRejectsScalarTopLevel(t *testing.T) {
	_, err := DecodeConfigDataList("not-a-config")
	assert.Error(t, err)
}
