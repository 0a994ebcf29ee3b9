package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeYAMLMapConvertsNestedInterfaceMaps(t *testing.T) {
	in := map[interface{}]interface{}{
		"env": map[interface{}]interface{}{
			"browser": true,
		},
		"list": []interface{}{
			map[interface{}]interface{}{"a": 1},
		},
	}

	out, ok := NormalizeYAMLMap(in).(map[string]interface{})
	if !assert.True(t, ok) {
		return
	}

	env, ok := out["env"].(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, true, env["browser"])
	}

	list, ok := out["list"].([]interface{})
	if assert.True(t, ok) && assert.Len(t, list, 1) {
		item, ok := list[0].(map[string]interface{})
		if assert.True(t, ok) {
			assert.Equal(t, 1, item["a"])
		}
	}
}

func TestNormalizeYAMLMapPassesThroughScalars(t *testing.T) {
	assert.Equal(t, 42, NormalizeYAMLMap(42))
	assert.Equal(t, "hi", NormalizeYAMLMap("hi"))
}

func TestDescriptorIsDeterministic(t *testing.T) {
	a := Descriptor("files=*.ts;excludedFiles=")
	b := Descriptor("files=*.ts;excludedFiles=")
	assert.Equal(t, a, b)
	c := Descriptor("files=*.js;excludedFiles=")
	assert.NotEqual(t, a, c)
}

func TestRedactSecretsRedactsMatchingKeys(t *testing.T) {
	in := map[string]interface{}{
		"apiToken": "sekrit",
		"password": "hunter2",
		"nested": map[string]interface{}{
			"secretKey": "abc",
			"safe":      "value",
		},
		"count": 3,
	}

	out, ok := RedactSecrets(in).(map[string]interface{})
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "REDACTED", out["apiToken"])
	assert.Equal(t, "REDACTED", out["password"])
	nested := out["nested"].(map[string]interface{})
	assert.Equal(t, "REDACTED", nested["secretKey"])
	assert.Equal(t, "value", nested["safe"])
	assert.Equal(t, 3, out["count"])
}
