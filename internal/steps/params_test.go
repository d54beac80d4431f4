package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	params := map[string]interface{}{
		"name":    "ok.png",
		"num":     3,
		"float":   2.5,
		"text":    "7",
		"flag":    true,
		"images":  []interface{}{"a.png", "b.png"},
		"single":  "c.png",
		"nested":  map[string]interface{}{"image": "d.png"},
		"numtext": 12,
	}

	assert.Equal(t, "ok.png", StringParam(params, "name", ""))
	assert.Equal(t, "12", StringParam(params, "numtext", ""))
	assert.Equal(t, "dflt", StringParam(params, "missing", "dflt"))

	ints := map[string]int{"num": 3, "float": 2, "text": 7}
	for key, want := range ints {
		got, err := IntParam(params, key, 0)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
	n, err := IntParam(params, "missing", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	floats := map[string]float64{"float": 2.5, "num": 3, "text": 7}
	for key, want := range floats {
		got, err := FloatParam(params, key, 0)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
	f, err := FloatParam(params, "missing", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	assert.True(t, BoolParam(params, "flag", false))
	assert.True(t, BoolParam(params, "name", true))

	assert.Equal(t, []string{"a.png", "b.png"}, StringsParam(params, "images"))
	assert.Equal(t, []string{"c.png"}, StringsParam(params, "single"))
	assert.Nil(t, StringsParam(params, "missing"))

	nested, ok := MapParam(params, "nested")
	assert.True(t, ok)
	assert.Equal(t, "d.png", nested["image"])
	_, ok = MapParam(params, "name")
	assert.False(t, ok)
}

func TestNumericParams_RejectUnparsable(t *testing.T) {
	params := map[string]interface{}{"timeout": "abc", "screen": "two", "flag": true}

	_, err := FloatParam(params, "timeout", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid timeout "abc"`)

	_, err = IntParam(params, "screen", 0)
	assert.Error(t, err)

	_, err = FloatParam(params, "flag", 0)
	assert.Error(t, err)
	_, err = IntParam(params, "flag", 0)
	assert.Error(t, err)
}
