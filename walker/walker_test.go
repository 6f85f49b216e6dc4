package walker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/schema"
)

func printRules() *Rules[string, Context] {
	return &Rules[string, Context]{
		Kinds: map[schema.Kind]Rule[string, Context]{
			schema.KindString: func(_ *schema.Node, _ Context, _ Next[string]) (string, error) {
				return "string", nil
			},
			schema.KindNumber: func(_ *schema.Node, _ Context, _ Next[string]) (string, error) {
				return "number", nil
			},
			schema.KindArray: func(node *schema.Node, _ Context, next Next[string]) (string, error) {
				item, err := next(node.Inner())
				return item + "[]", err
			},
			schema.KindObject: func(node *schema.Node, _ Context, next Next[string]) (string, error) {
				parts := make([]string, 0, len(node.Fields()))
				for _, f := range node.Fields() {
					s, err := next(f.Schema)
					if err != nil {
						return "", err
					}
					parts = append(parts, f.Name+": "+s)
				}
				return "{ " + strings.Join(parts, "; ") + " }", nil
			},
			schema.KindOptional: func(node *schema.Node, _ Context, next Next[string]) (string, error) {
				return next(node.Inner())
			},
		},
	}
}

func TestWalk(t *testing.T) {
	t.Run("dispatches by kind", func(t *testing.T) {
		node := schema.Object(
			schema.Prop("a", schema.String()),
			schema.Prop("b", schema.Array(schema.Number())),
		)
		out, err := Walk(node, Context{}, printRules())
		require.NoError(t, err)
		assert.Equal(t, "{ a: string; b: number[] }", out)
	})

	t.Run("missing rule is fatal", func(t *testing.T) {
		node := schema.Object(schema.Prop("flag", schema.Boolean().Describe("toggle")))
		ctx := Context{Direction: schema.DirectionOut, Method: "get", Path: "/flags"}

		_, err := Walk(node, ctx, printRules())
		require.Error(t, err)
		assert.ErrorIs(t, err, apierrors.ErrUnsupportedKind)

		var target *apierrors.UnsupportedKindError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "boolean", target.Kind)
		assert.Equal(t, "toggle", target.Description)
		assert.Equal(t, "output", target.Direction)
		assert.Equal(t, "/flags", target.Path)
	})

	t.Run("custom missing handler", func(t *testing.T) {
		rules := printRules()
		rules.Missing = func(node *schema.Node, _ Context) (string, error) {
			return "unknown<" + node.Kind().String() + ">", nil
		}
		out, err := Walk(schema.Boolean(), Context{}, rules)
		require.NoError(t, err)
		assert.Equal(t, "unknown<boolean>", out)
	})

	t.Run("each merges after the rule", func(t *testing.T) {
		rules := printRules()
		rules.Each = func(node *schema.Node, prev string, _ Context) (string, error) {
			if node.Description() != "" {
				return prev + " /* " + node.Description() + " */", nil
			}
			return prev, nil
		}
		out, err := Walk(schema.Array(schema.String().Describe("tag")), Context{}, rules)
		require.NoError(t, err)
		assert.Equal(t, "string /* tag */[]", out)
	})

	t.Run("brand rules take precedence", func(t *testing.T) {
		rules := printRules()
		rules.Brands = map[string]Rule[string, Context]{
			"slug": func(_ *schema.Node, _ Context, _ Next[string]) (string, error) {
				return "Slug", nil
			},
		}
		node := schema.Object(schema.Prop("s", schema.String().Branded("slug")))
		out, err := Walk(node, Context{}, rules)
		require.NoError(t, err)
		assert.Equal(t, "{ s: Slug }", out)
	})

	t.Run("unknown brand falls back to kind", func(t *testing.T) {
		_, err := Walk(schema.String().Branded("other"), Context{}, printRules())
		assert.ErrorIs(t, err, apierrors.ErrUnsupportedKind)
	})
}

type customContext struct {
	Context
	depth int
}

func TestWalkCustomContext(t *testing.T) {
	rules := &Rules[int, customContext]{
		Kinds: map[schema.Kind]Rule[int, customContext]{
			schema.KindString: func(_ *schema.Node, ctx customContext, _ Next[int]) (int, error) {
				return ctx.depth, nil
			},
		},
	}
	out, err := Walk(schema.String(), customContext{depth: 7}, rules)
	require.NoError(t, err)
	assert.Equal(t, 7, out)
}

func TestContext(t *testing.T) {
	ctx := Context{Direction: schema.DirectionOut, Method: "post", Path: "/a"}
	assert.True(t, ctx.IsResponse())
	assert.False(t, Context{}.IsResponse())
	assert.Equal(t, apierrors.Location{Method: "post", Path: "/a", Direction: "output"}, ctx.Location())
	assert.Equal(t, ctx, ctx.Base())
}

func TestDirectionViolation(t *testing.T) {
	err := DirectionViolation(schema.Upload(), Context{Method: "get", Path: "/f"}, "use upload only within input schemas")
	assert.ErrorIs(t, err, apierrors.ErrDirection)
	assert.Contains(t, err.Error(), "upload at get /f (input)")
}
