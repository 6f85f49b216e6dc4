package tsgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"keyword", KeywordString, "string"},
		{"string literal", Literal{Value: "a"}, `"a"`},
		{"number literal", Literal{Value: 1.5}, "1.5"},
		{"boolean literal", Literal{Value: true}, "true"},
		{"union", Union{Types: []Type{KeywordString, KeywordNull}}, "string | null"},
		{"empty union", Union{}, "never"},
		{"array of union", Array{Elem: Union{Types: []Type{KeywordString, KeywordNumber}}}, "(string | number)[]"},
		{"intersection with union", Intersection{Types: []Type{Union{Types: []Type{Ref{Name: "A"}, Ref{Name: "B"}}}, Ref{Name: "C"}}}, "(A | B) & C"},
		{"tuple with rest", Tuple{Items: []Type{KeywordString}, Rest: KeywordNumber}, "[string, ...number[]]"},
		{"rest only", Tuple{Rest: KeywordBoolean}, "[...boolean[]]"},
		{"generic ref", Ref{Name: "Record", Args: []Type{KeywordString, KeywordNumber}}, "Record<string, number>"},
		{"empty object", Object{}, "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Print(tt.typ))
		})
	}
}

func TestPrintObject(t *testing.T) {
	t.Run("properties", func(t *testing.T) {
		obj := Object{Props: []Property{
			{Name: "id", Type: KeywordString},
			{Name: "x-key", Type: KeywordNumber, Optional: true, Comment: "the key"},
		}}
		assert.Equal(t, "{\n  id: string;\n  /** the key */\n  \"x-key\"?: number;\n}", Print(obj))
	})

	t.Run("nested", func(t *testing.T) {
		obj := Object{Props: []Property{
			{Name: "inner", Type: Object{Props: []Property{{Name: "a", Type: KeywordBoolean}}}},
		}}
		assert.Equal(t, "{\n  inner: {\n    a: boolean;\n  };\n}", Print(obj))
	})

	t.Run("multiline comment and deprecation", func(t *testing.T) {
		obj := Object{Props: []Property{
			{Name: "old", Type: KeywordString, Comment: "first\n\nsecond", Deprecated: true},
		}}
		assert.Equal(t, "{\n  /**\n   * first\n   *\n   * second\n   * @deprecated\n   */\n  old: string;\n}", Print(obj))
	})
}

func TestPropertyKey(t *testing.T) {
	assert.Equal(t, "id", propertyKey("id"))
	assert.Equal(t, "a1", propertyKey("a1"))
	assert.Equal(t, "$ref", propertyKey("$ref"))
	assert.Equal(t, `"1a"`, propertyKey("1a"))
	assert.Equal(t, `"get /v1/user"`, propertyKey("get /v1/user"))
	assert.Equal(t, `""`, propertyKey(""))
}
