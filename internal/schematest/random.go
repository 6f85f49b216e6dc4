// Package schematest builds schema trees for tests.
package schematest

import "github.com/vitalvas/zodoc/schema"

type source struct {
	data []byte
	pos  int
}

func (s *source) pick(n int) int {
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos]) % n
	s.pos++
	return v
}

// Random derives a schema tree from data. Every byte selects the kind of the
// next node, so any input yields a valid tree of at most maxDepth levels.
// Lazy nodes refer back to the root, making the tree recursive.
func Random(data []byte, maxDepth int) *schema.Node {
	s := &source{data: data}
	var root *schema.Node
	self := schema.Lazy(func() *schema.Node { return root })
	root = s.node(maxDepth, self)
	return root
}

func identity(v any) (any, error) { return v, nil }

func (s *source) node(depth int, self *schema.Node) *schema.Node {
	kinds := schema.Kinds()
	kind := kinds[s.pick(len(kinds))]
	if depth <= 0 && hasChildren(kind) {
		kind = schema.KindString
	}
	child := func() *schema.Node { return s.node(depth-1, self) }

	switch kind {
	case schema.KindString:
		return schema.String()
	case schema.KindNumber:
		return schema.Number()
	case schema.KindBoolean:
		return schema.Boolean()
	case schema.KindBigInt:
		return schema.BigInt()
	case schema.KindNull:
		return schema.Null()
	case schema.KindAny:
		return schema.Any()
	case schema.KindLiteral:
		return schema.Literal("a")
	case schema.KindEnum:
		return schema.Enum("a", "b")
	case schema.KindDate:
		return schema.Date()
	case schema.KindObject:
		return schema.Object(schema.Prop("a", child()), schema.Prop("b", child()))
	case schema.KindArray:
		return schema.Array(child())
	case schema.KindTuple:
		return schema.Tuple(child()).WithRest(child())
	case schema.KindRecord:
		return schema.Record(schema.String(), child())
	case schema.KindUnion:
		return schema.Union(child(), child())
	case schema.KindDiscriminatedUnion:
		return schema.DiscriminatedUnion("type",
			schema.Object(schema.Prop("type", schema.Literal("x")), schema.Prop("value", child())),
			schema.Object(schema.Prop("type", schema.Literal("y"))),
		)
	case schema.KindIntersection:
		return schema.Intersection(child(), child())
	case schema.KindOptional:
		return child().Optional()
	case schema.KindNullable:
		return child().Nullable()
	case schema.KindDefault:
		return child().Default("fallback")
	case schema.KindCatch:
		return child().Catch(nil)
	case schema.KindBranded:
		return child().Branded("custom")
	case schema.KindEffect:
		return child().Transform(identity)
	case schema.KindPipeline:
		return child().Pipe(child())
	case schema.KindLazy:
		return self
	case schema.KindUpload:
		return schema.Upload()
	case schema.KindFile:
		return schema.File(schema.FileBinary)
	case schema.KindDateIn:
		return schema.DateIn()
	case schema.KindDateOut:
		return schema.DateOut()
	case schema.KindRaw:
		return schema.Raw()
	}
	return schema.Any()
}

func hasChildren(kind schema.Kind) bool {
	switch kind {
	case schema.KindObject, schema.KindArray, schema.KindTuple, schema.KindRecord,
		schema.KindUnion, schema.KindDiscriminatedUnion, schema.KindIntersection,
		schema.KindPipeline:
		return true
	}
	return kind.IsWrapper()
}
