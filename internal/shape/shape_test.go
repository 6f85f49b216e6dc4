package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/zodoc/schema"
)

func TestHash(t *testing.T) {
	user := func() *schema.Node {
		return schema.Object(
			schema.Prop("id", schema.Number().Int()),
			schema.Prop("name", schema.String().Describe("full name")),
		)
	}

	t.Run("identical structures match", func(t *testing.T) {
		assert.Equal(t, Hash(user(), "output"), Hash(user(), "output"))
	})

	t.Run("scope separates", func(t *testing.T) {
		n := user()
		assert.NotEqual(t, Hash(n, "input"), Hash(n, "output"))
	})

	t.Run("annotations and checks count", func(t *testing.T) {
		base := Hash(schema.String(), "input")
		assert.NotEqual(t, base, Hash(schema.String().Describe("x"), "input"))
		assert.NotEqual(t, base, Hash(schema.String().Email(), "input"))
		assert.NotEqual(t, base, Hash(schema.String().Optional(), "input"))
	})

	t.Run("field order counts", func(t *testing.T) {
		a := schema.Object(schema.Prop("a", schema.String()), schema.Prop("b", schema.String()))
		b := schema.Object(schema.Prop("b", schema.String()), schema.Prop("a", schema.String()))
		assert.NotEqual(t, Hash(a, "input"), Hash(b, "input"))
	})

	t.Run("recursive schema terminates", func(t *testing.T) {
		var tree *schema.Node
		lazy := schema.Lazy(func() *schema.Node { return tree })
		tree = schema.Object(schema.Prop("children", schema.Array(lazy)))

		assert.Equal(t, Hash(lazy, "input"), Hash(lazy, "input"))
		assert.NotEqual(t, Hash(lazy, "input"), Hash(tree, "input"))
	})

	t.Run("fresh lazy nodes hash alike at every level", func(t *testing.T) {
		var tree func() *schema.Node
		tree = func() *schema.Node {
			return schema.Object(schema.Prop("children", schema.Array(schema.Lazy(tree))))
		}
		outer := schema.Lazy(tree)
		inner := outer.Resolve().Fields()[0].Schema.Inner()
		require.Equal(t, schema.KindLazy, inner.Kind())

		assert.Equal(t, Hash(outer, "output"), Hash(inner, "output"))
		assert.Equal(t, Hash(outer, "output"), Hash(schema.Lazy(tree), "output"))
	})

	t.Run("distinct recursive shapes differ", func(t *testing.T) {
		var a, b func() *schema.Node
		a = func() *schema.Node {
			return schema.Object(schema.Prop("children", schema.Array(schema.Lazy(a))))
		}
		b = func() *schema.Node {
			return schema.Object(schema.Prop("nodes", schema.Array(schema.Lazy(b))))
		}
		assert.NotEqual(t, Hash(schema.Lazy(a), "output"), Hash(schema.Lazy(b), "output"))
	})

	t.Run("mutual recursion terminates", func(t *testing.T) {
		var person, company func() *schema.Node
		person = func() *schema.Node {
			return schema.Object(schema.Prop("employer", schema.Lazy(company)))
		}
		company = func() *schema.Node {
			return schema.Object(schema.Prop("staff", schema.Array(schema.Lazy(person))))
		}
		p := schema.Lazy(person)
		assert.Equal(t, Hash(p, "input"), Hash(schema.Lazy(person), "input"))
		assert.NotEqual(t, Hash(p, "input"), Hash(schema.Lazy(company), "input"))
	})
}
