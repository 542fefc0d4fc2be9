package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"max int64", Int(9223372036854775807), "9223372036854775807"},
		{"float", Float(1.5), "1.5"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"nil", nil, "null"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"array of ints", Array{Int(1), Int(2), Int(3)}, "[1,2,3]"},
		{"simple object", Object{"a": Int(1)}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := Object{
		"zebra": Int(1),
		"$uri":  String("http://x/1"),
		"@en":   String("hi"),
		"alpha": Object{"b": Int(1), "a": Int(2)},
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"$uri":"http://x/1","@en":"hi","alpha":{"a":2,"b":1},"zebra":1}`, string(result))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical(String("<a & b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// "o" + combining diaeresis normalizes to a single code point.
	result, err := MarshalCanonical(String("Stro\u0308m"))
	require.NoError(t, err)
	assert.Equal(t, "\"Str\u00f6m\"", string(result))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	result, err := MarshalCanonical(String("a\u2028b\u2029c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(result))

	// An escaped backslash followed by the text u2028 must stay escaped.
	result, err = MarshalCanonical(String(`x\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"x\\u2028"`, string(result))
}

func TestMarshalCanonicalRejectsNonFinite(t *testing.T) {
	_, err := MarshalCanonical(Float(math.NaN()))
	assert.Error(t, err)

	_, err = MarshalCanonical(Array{Float(math.Inf(1))})
	assert.Error(t, err)
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	obj := Object{
		"person": Array{
			Object{"$uri": String("http://x/1"), "name": String("Ann"), "age": Int(30)},
			Object{"$id": String("b0"), "name": Object{"@en": String("Bob"), "@sv": String("Bo")}},
		},
	}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
