package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalvas/zodoc/schema"
)

func TestHasNested(t *testing.T) {
	hasUpload := IsKind(schema.KindUpload)

	t.Run("finds deep upload", func(t *testing.T) {
		node := schema.Object(
			schema.Prop("meta", schema.Object(
				schema.Prop("files", schema.Array(schema.Upload()).Optional()),
			)),
		)
		assert.True(t, HasNested(node, hasUpload, 0))
	})

	t.Run("no match", func(t *testing.T) {
		node := schema.Union(schema.String(), schema.Tuple(schema.Number()).WithRest(schema.Boolean()))
		assert.False(t, HasNested(node, hasUpload, 0))
	})

	t.Run("cutoff answers false", func(t *testing.T) {
		node := schema.Object(schema.Prop("a", schema.Object(schema.Prop("b", schema.Upload()))))
		assert.False(t, HasNested(node, hasUpload, 1))
		assert.True(t, HasNested(node, hasUpload, 2))
	})

	t.Run("recursive schema terminates", func(t *testing.T) {
		var tree *schema.Node
		tree = schema.Object(
			schema.Prop("children", schema.Array(schema.Lazy(func() *schema.Node { return tree }))),
		)
		assert.False(t, HasNested(tree, hasUpload, 1000))
		assert.True(t, HasNested(tree, IsKind(schema.KindArray), 1000))
	})

	t.Run("pipeline and record children", func(t *testing.T) {
		assert.True(t, HasNested(schema.String().Pipe(schema.Raw()), IsKind(schema.KindRaw), 0))
		assert.True(t, HasNested(schema.Record(schema.String(), schema.Upload()), hasUpload, 0))
	})
}

func TestChildren(t *testing.T) {
	assert.Len(t, Children(schema.Object(schema.Prop("a", schema.String()), schema.Prop("b", schema.String()))), 2)
	assert.Len(t, Children(schema.Tuple(schema.String()).WithRest(schema.Number())), 2)
	assert.Len(t, Children(schema.Intersection(schema.Any(), schema.Any())), 2)
	assert.Len(t, Children(schema.String().Optional()), 1)
	assert.Empty(t, Children(schema.String()))
}
