package openapi

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSamples(t *testing.T) {
	tests := []struct {
		name     string
		input    *Schema
		expected []any
	}{
		{"string", &Schema{Type: Types("string")}, []any{"", "0"}},
		{"uuid", &Schema{Type: Types("string"), Format: "uuid"}, []any{sampleUUID, "", "0"}},
		{"date-time", &Schema{Type: Types("string"), Format: "date-time"}, []any{"1970-01-01T00:00:00Z", "", "0"}},
		{"integer", &Schema{Type: Types("integer")}, []any{0, 1}},
		{"number", &Schema{Type: Types("number")}, []any{0.0, 1.0}},
		{"boolean", &Schema{Type: Types("boolean")}, []any{false, true}},
		{"object", &Schema{Type: Types("object")}, []any{map[string]any{}}},
		{"array", &Schema{Type: Types("array")}, []any{[]any{}}},
		{"null", &Schema{Type: Types("null")}, []any{nil}},
		{"untyped", &Schema{Format: "any"}, []any{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, makeSamples(tt.input))
		})
	}

	t.Run("uuid sample is a valid name based uuid", func(t *testing.T) {
		id, err := uuid.Parse(sampleUUID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), id.Version())
		assert.NotEqual(t, uuid.Nil, id)
	})
}

func TestScalarType(t *testing.T) {
	tests := []struct {
		value    any
		expected string
		ok       bool
	}{
		{"x", "string", true},
		{true, "boolean", true},
		{42, "integer", true},
		{uint8(1), "integer", true},
		{1.5, "number", true},
		{float32(1), "number", true},
		{nil, "", false},
		{[]int{1}, "", false},
		{map[string]any{}, "", false},
	}

	for _, tt := range tests {
		got, ok := scalarType(tt.value)
		assert.Equal(t, tt.expected, got, "%v", tt.value)
		assert.Equal(t, tt.ok, ok, "%v", tt.value)
	}
}

func TestJSONType(t *testing.T) {
	assert.Equal(t, "null", jsonType(nil))
	assert.Equal(t, "number", jsonType(1))
	assert.Equal(t, "number", jsonType(1.5))
	assert.Equal(t, "string", jsonType("a"))
	assert.Equal(t, "boolean", jsonType(true))
	assert.Equal(t, "array", jsonType([]string{}))
	assert.Equal(t, "object", jsonType(map[string]any{}))
}
