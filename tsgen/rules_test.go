package tsgen

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/internal/schematest"
	"github.com/vitalvas/zodoc/logging"
	"github.com/vitalvas/zodoc/registry"
	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/walker"
)

type warning struct {
	msg   string
	attrs []any
}

// recordingLogger keeps the warnings it receives.
type recordingLogger struct {
	logging.NopLogger
	warnings *[]warning
}

func (l recordingLogger) Warn(msg string, attrs ...any) {
	*l.warnings = append(*l.warnings, warning{msg: msg, attrs: attrs})
}

func (l recordingLogger) With(_ ...any) logging.Logger { return l }

func testContext(dir schema.Direction) Context {
	return Context{
		Context:   walker.Context{Direction: dir, Method: "get", Path: "/test"},
		Optional:  OptionalQuestionMark,
		aliases:   registry.New[*schema.Node, Type]("Type"),
		expanding: make(map[uint64]string),
		logger:    logging.NopLogger{},
	}
}

func typeWith(t *testing.T, node *schema.Node, ctx Context) string {
	t.Helper()
	typ, err := walker.Walk(node, ctx, newRules(nil))
	require.NoError(t, err)
	return Print(typ)
}

func typeIn(t *testing.T, node *schema.Node) string {
	t.Helper()
	return typeWith(t, node, testContext(schema.DirectionIn))
}

func typeOut(t *testing.T, node *schema.Node) string {
	t.Helper()
	return typeWith(t, node, testContext(schema.DirectionOut))
}

func TestRulesCoverEveryKind(t *testing.T) {
	rules := newRules(nil)
	for _, k := range schema.Kinds() {
		assert.Contains(t, rules.Kinds, k, "no rule for %s", k)
	}
}

func TestTypePrimitives(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want string
	}{
		{"string", schema.String().Email(), "string"},
		{"integer", schema.Number().Int(), "number"},
		{"bigint", schema.BigInt(), "bigint"},
		{"boolean", schema.Boolean(), "boolean"},
		{"null", schema.Null(), "null"},
		{"any", schema.Any(), "any"},
		{"literal", schema.Literal("user"), `"user"`},
		{"numeric literal", schema.Literal(42), "42"},
		{"enum", schema.Enum("asc", "desc"), `"asc" | "desc"`},
		{"single enum", schema.Enum("only"), `"only"`},
		{"native enum", schema.NativeEnum("a", 1), `"a" | 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typeIn(t, tt.node))
		})
	}
}

func TestTypeObject(t *testing.T) {
	node := schema.Object(
		schema.Prop("id", schema.String()),
		schema.Prop("name", schema.String().Optional().Describe("the name")),
	)

	t.Run("question mark", func(t *testing.T) {
		assert.Equal(t, "{\n  id: string;\n  /** the name */\n  name?: string;\n}", typeIn(t, node))
	})

	t.Run("undefined union", func(t *testing.T) {
		ctx := testContext(schema.DirectionIn)
		ctx.Optional = OptionalUndefined
		assert.Equal(t, "{\n  id: string;\n  /** the name */\n  name: string | undefined;\n}", typeWith(t, node, ctx))
	})

	t.Run("both styles", func(t *testing.T) {
		ctx := testContext(schema.DirectionIn)
		ctx.Optional = OptionalQuestionMark | OptionalUndefined
		assert.Equal(t, "{\n  id: string;\n  /** the name */\n  name?: string | undefined;\n}", typeWith(t, node, ctx))
	})

	t.Run("default is optional", func(t *testing.T) {
		assert.Equal(t, "{\n  page?: number;\n}", typeIn(t, schema.Object(schema.Prop("page", schema.Number().Default(1)))))
	})

	t.Run("deprecated property", func(t *testing.T) {
		assert.Equal(t, "{\n  /** @deprecated */\n  old: string;\n}", typeIn(t, schema.Object(schema.Prop("old", schema.String().Deprecated()))))
	})

	t.Run("coerced property", func(t *testing.T) {
		node := schema.Object(schema.Prop("flag", schema.Boolean().Coerce()))
		assert.Equal(t, "{\n  flag?: boolean | null;\n}", typeIn(t, node))
		assert.Equal(t, "{\n  flag: boolean;\n}", typeOut(t, node))
	})

	t.Run("coerced optional response property", func(t *testing.T) {
		node := schema.Object(schema.Prop("flag", schema.Boolean().Coerce().Optional()))
		assert.Equal(t, "{\n  flag?: boolean;\n}", typeOut(t, node))
	})
}

func TestTypeNullable(t *testing.T) {
	assert.Equal(t, "string | null", typeIn(t, schema.String().Nullable()))
	assert.Equal(t, "string | null", typeIn(t, schema.String().Nullable().Nullable()))
	assert.Equal(t, "any", typeIn(t, schema.Any().Nullable()))
	assert.Equal(t, "string | number | null", typeIn(t, schema.Union(schema.String(), schema.Number().Nullable())))
	assert.Equal(t, "number | null", typeIn(t, schema.Number().Catch(0)))
}

func TestTypeCollections(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		assert.Equal(t, "string[]", typeIn(t, schema.Array(schema.String())))
		assert.Equal(t, "(string | null)[]", typeIn(t, schema.Array(schema.String().Nullable())))
	})

	t.Run("tuple", func(t *testing.T) {
		node := schema.Tuple(schema.String(), schema.Number()).WithRest(schema.Boolean())
		assert.Equal(t, "[string, number, ...boolean[]]", typeIn(t, node))
	})

	t.Run("open record", func(t *testing.T) {
		assert.Equal(t, "Record<string, number>", typeIn(t, schema.Record(schema.String(), schema.Number())))
	})

	t.Run("enum keyed record", func(t *testing.T) {
		node := schema.Record(schema.Enum("a", "b"), schema.Boolean())
		assert.Equal(t, "{\n  a: boolean;\n  b: boolean;\n}", typeIn(t, node))
	})

	t.Run("literal union keyed record", func(t *testing.T) {
		node := schema.Record(schema.Union(schema.Literal("x"), schema.Literal(1)), schema.String())
		assert.Equal(t, "{\n  x: string;\n  \"1\": string;\n}", typeIn(t, node))
	})
}

func TestTypeUnions(t *testing.T) {
	t.Run("union", func(t *testing.T) {
		assert.Equal(t, "string | number", typeIn(t, schema.Union(schema.String(), schema.Number())))
	})

	t.Run("discriminated union", func(t *testing.T) {
		node := schema.DiscriminatedUnion("type",
			schema.Object(schema.Prop("type", schema.Literal("a"))),
			schema.Object(schema.Prop("type", schema.Literal("b"))),
		)
		assert.Equal(t, "{\n  type: \"a\";\n} | {\n  type: \"b\";\n}", typeIn(t, node))
	})
}

func TestTypeIntersection(t *testing.T) {
	t.Run("flattens objects", func(t *testing.T) {
		node := schema.Intersection(
			schema.Object(schema.Prop("a", schema.String())),
			schema.Object(schema.Prop("b", schema.Number())),
		)
		assert.Equal(t, "{\n  a: string;\n  b: number;\n}", typeIn(t, node))
	})

	t.Run("identical property is merged", func(t *testing.T) {
		node := schema.Intersection(
			schema.Object(schema.Prop("a", schema.String())),
			schema.Object(schema.Prop("a", schema.String())),
		)
		assert.Equal(t, "{\n  a: string;\n}", typeIn(t, node))
	})

	t.Run("conflict keeps intersection", func(t *testing.T) {
		node := schema.Intersection(
			schema.Object(schema.Prop("a", schema.String())),
			schema.Object(schema.Prop("a", schema.Number())),
		)
		assert.Equal(t, "{\n  a: string;\n} & {\n  a: number;\n}", typeIn(t, node))
	})

	t.Run("non objects", func(t *testing.T) {
		node := schema.Intersection(schema.String(), schema.Union(schema.Literal("a"), schema.Literal("b")))
		assert.Equal(t, `string & ("a" | "b")`, typeIn(t, node))
	})
}

func toInt(v any) (any, error) {
	return strconv.Atoi(v.(string))
}

func TestTypeEffects(t *testing.T) {
	t.Run("input side of transform", func(t *testing.T) {
		assert.Equal(t, "string", typeIn(t, schema.String().Transform(toInt)))
	})

	t.Run("number output", func(t *testing.T) {
		node := schema.String().Transform(func(v any) (any, error) { return len(v.(string)), nil })
		assert.Equal(t, "number", typeOut(t, node))
	})

	t.Run("numeric string parser", func(t *testing.T) {
		assert.Equal(t, "number", typeOut(t, schema.String().Transform(toInt)))
	})

	t.Run("object output", func(t *testing.T) {
		node := schema.Number().Transform(func(v any) (any, error) { return map[string]any{"n": v}, nil })
		assert.Equal(t, "object", typeOut(t, node))
	})

	t.Run("undefined output", func(t *testing.T) {
		node := schema.String().Transform(func(any) (any, error) { return nil, nil })
		assert.Equal(t, "undefined", typeOut(t, node))
	})

	t.Run("failure falls back to any", func(t *testing.T) {
		var warnings []warning
		ctx := testContext(schema.DirectionOut)
		ctx.logger = recordingLogger{warnings: &warnings}

		node := schema.String().Transform(func(any) (any, error) { return nil, errors.New("bad input") })
		assert.Equal(t, "any", typeWith(t, node, ctx))
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].msg, "transformation output")
	})

	t.Run("panic falls back to any", func(t *testing.T) {
		node := schema.String().Transform(func(v any) (any, error) { return v.(int) + 1, nil })
		assert.Equal(t, "any", typeOut(t, node))
	})

	t.Run("refinement", func(t *testing.T) {
		node := schema.String().Refine(func(v any) bool { return v != "" })
		assert.Equal(t, "string", typeOut(t, node))
	})

	t.Run("preprocess", func(t *testing.T) {
		node := schema.Preprocess(func(v any) (any, error) { return v, nil }, schema.Number())
		assert.Equal(t, "number", typeIn(t, node))
	})

	t.Run("pipeline", func(t *testing.T) {
		node := schema.String().Transform(toInt).Pipe(schema.Number().Int())
		assert.Equal(t, "string", typeIn(t, node))
		assert.Equal(t, "number", typeOut(t, node))
	})
}

func TestTypeBrands(t *testing.T) {
	rules := newRules(map[string]Rule{
		"money": func(_ *schema.Node, _ Context, _ Next) (Type, error) {
			return Ref{Name: "Money"}, nil
		},
	})

	typ, err := walker.Walk(schema.String().Branded("money"), testContext(schema.DirectionIn), rules)
	require.NoError(t, err)
	assert.Equal(t, "Money", Print(typ))

	typ, err = walker.Walk(schema.String().Branded("other"), testContext(schema.DirectionIn), rules)
	require.NoError(t, err)
	assert.Equal(t, "string", Print(typ))
}

func TestTypeRecursion(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		var tree *schema.Node
		tree = schema.Object(
			schema.Prop("name", schema.String()),
			schema.Prop("children", schema.Array(schema.Lazy(func() *schema.Node { return tree }))),
		)
		ctx := testContext(schema.DirectionOut)
		assert.Equal(t, "{\n  name: string;\n  children: Type1[];\n}", typeWith(t, tree, ctx))

		entries := ctx.aliases.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "Type1", entries[0].Name)
		assert.Equal(t, registry.Resolved, entries[0].State)
		assert.Equal(t, "{\n  name: string;\n  children: Type1[];\n}", Print(entries[0].Value))
	})

	t.Run("mutual reference", func(t *testing.T) {
		var a, b *schema.Node
		a = schema.Object(schema.Prop("b", schema.Lazy(func() *schema.Node { return b }).Optional()))
		b = schema.Object(schema.Prop("a", schema.Lazy(func() *schema.Node { return a })))
		ctx := testContext(schema.DirectionIn)
		assert.Equal(t, "{\n  b?: Type1;\n}", typeWith(t, a, ctx))
		assert.Equal(t, 2, ctx.aliases.Len())
	})

	t.Run("identity keyed", func(t *testing.T) {
		leaf := func() *schema.Node { return schema.String() }
		node := schema.Object(
			schema.Prop("a", schema.Lazy(leaf)),
			schema.Prop("b", schema.Lazy(leaf)),
		)
		ctx := testContext(schema.DirectionIn)
		assert.Equal(t, "{\n  a: Type1;\n  b: Type2;\n}", typeWith(t, node, ctx))
	})

	t.Run("getter building a fresh node per call", func(t *testing.T) {
		var tree func() *schema.Node
		tree = func() *schema.Node {
			return schema.Object(schema.Prop("children", schema.Array(schema.Lazy(tree))))
		}
		ctx := testContext(schema.DirectionOut)
		assert.Equal(t, "Type1", typeWith(t, schema.Lazy(tree), ctx))

		entries := ctx.aliases.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "{\n  children: Type1[];\n}", Print(entries[0].Value))
		assert.Empty(t, ctx.expanding)
	})

	t.Run("same lazy reused", func(t *testing.T) {
		shared := schema.Lazy(func() *schema.Node { return schema.Number() })
		ctx := testContext(schema.DirectionIn)
		assert.Equal(t, "[Type1, Type1]", typeWith(t, schema.Tuple(shared, shared), ctx))
		assert.Equal(t, 1, ctx.aliases.Len())
	})
}

func TestTypeDirections(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		in   string
		out  string
	}{
		{"upload", schema.Upload(), "Blob", ""},
		{"raw", schema.Raw(), "Blob", ""},
		{"binary file", schema.File(schema.FileBinary), "", "Blob"},
		{"base64 file", schema.File(schema.FileBase64), "", "string"},
		{"text file", schema.File(schema.FileText), "", "string"},
		{"date in", schema.DateIn(), "string", ""},
		{"date out", schema.DateOut(), "", "string"},
		{"plain date", schema.Date(), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dir := range []schema.Direction{schema.DirectionIn, schema.DirectionOut} {
				want := tt.in
				if dir == schema.DirectionOut {
					want = tt.out
				}
				typ, err := walker.Walk(tt.node, testContext(dir), newRules(nil))
				if want == "" {
					var dirErr *apierrors.DirectionError
					require.ErrorAs(t, err, &dirErr, "%s", dir)
					assert.True(t, errors.Is(err, apierrors.ErrDirection))
					assert.Equal(t, dir.String(), dirErr.Direction)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, want, Print(typ))
			}
		})
	}
}

// FuzzTypeTotality checks that no built-in kind reaches the missing rule.
// Direction violations are the only acceptable failure.
func FuzzTypeTotality(f *testing.F) {
	for i := range schema.Kinds() {
		f.Add([]byte{byte(i), byte(i * 7), byte(i * 13), byte(i * 17), byte(i * 23), byte(i * 29), byte(i * 31)})
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		node := schematest.Random(data, 4)
		for _, dir := range []schema.Direction{schema.DirectionIn, schema.DirectionOut} {
			typ, err := walker.Walk(node, testContext(dir), newRules(nil))
			if err != nil {
				require.ErrorIs(t, err, apierrors.ErrDirection)
				continue
			}
			assert.NotEmpty(t, Print(typ))
		}
	})
}
