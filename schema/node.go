package schema

import (
	"slices"
	"sync"
)

// TransformFunc maps a value during parsing. It is used by transform and
// preprocess effects; the depiction engine only runs it against synthetic
// samples.
type TransformFunc func(v any) (any, error)

// Field is a named member of an object node.
type Field struct {
	Name   string
	Schema *Node
}

// Prop creates an object field.
func Prop(name string, s *Node) Field {
	return Field{Name: name, Schema: s}
}

// Meta holds annotations shared by all node kinds.
type Meta struct {
	Description  string
	Examples     []any
	DefaultLabel string
	Brand        string
	Coerce       bool
	Deprecated   bool
}

// Checks holds the constraints of string, number and array nodes.
type Checks struct {
	// Strings.
	MinLength *int
	MaxLength *int
	Format    string // email, url, uuid, cuid, date-time
	Pattern   string

	// Numbers.
	Int              bool
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool

	// Arrays.
	MinItems *int
	MaxItems *int
}

type lazyRef struct {
	getter   func() *Node
	once     sync.Once
	resolved *Node
}

// Node is an immutable schema tree node. Every modifier returns a new node;
// the receiver is never changed.
type Node struct {
	kind   Kind
	meta   Meta
	checks Checks

	fields        []Field // object
	inner         *Node   // array element, wrapper child, record value
	key           *Node   // record key
	items         []*Node // tuple items, union options, intersection sides
	rest          *Node   // tuple rest
	discriminator string

	literal any   // literal value
	values  []any // enum values

	defaultValue any
	catchValue   any

	effect    EffectType
	transform TransformFunc

	in, out *Node // pipeline

	lazy *lazyRef

	fileType FileType
}

func newNode(kind Kind) *Node {
	return &Node{kind: kind}
}

// wrap creates a wrapper around n that inherits its description and examples.
func wrap(kind Kind, n *Node) *Node {
	w := newNode(kind)
	w.inner = n
	w.meta.Description = n.meta.Description
	w.meta.Examples = slices.Clone(n.meta.Examples)
	return w
}

func (n *Node) clone() *Node {
	c := *n
	c.meta.Examples = slices.Clone(n.meta.Examples)
	return &c
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Meta returns the node annotations.
func (n *Node) Meta() Meta { return n.meta }

// Description returns the node description.
func (n *Node) Description() string { return n.meta.Description }

// Examples returns the examples attached to the node.
func (n *Node) Examples() []any { return n.meta.Examples }

// Brand returns the brand of a branded node, empty otherwise.
func (n *Node) Brand() string { return n.meta.Brand }

// IsCoerced reports whether the node coerces its input.
func (n *Node) IsCoerced() bool { return n.meta.Coerce }

// IsDeprecated reports whether the node is marked deprecated.
func (n *Node) IsDeprecated() bool { return n.meta.Deprecated }

// Checks returns the constraints of the node.
func (n *Node) Checks() Checks { return n.checks }

// Fields returns the ordered fields of an object node. The slice must not be modified.
func (n *Node) Fields() []Field { return n.fields }

// Field looks up an object field by name.
func (n *Node) Field(name string) (*Node, bool) {
	for _, f := range n.fields {
		if f.Name == name {
			return f.Schema, true
		}
	}
	return nil, false
}

// Inner returns the single child of wrapper kinds, the element of arrays and
// the value schema of records.
func (n *Node) Inner() *Node { return n.inner }

// KeySchema returns the key schema of a record node.
func (n *Node) KeySchema() *Node { return n.key }

// Items returns tuple items, union options or the two intersection sides.
func (n *Node) Items() []*Node { return n.items }

// Rest returns the variadic tail of a tuple, or nil.
func (n *Node) Rest() *Node { return n.rest }

// Discriminator returns the discriminator property of a discriminated union.
func (n *Node) Discriminator() string { return n.discriminator }

// Literal returns the value of a literal node.
func (n *Node) Literal() any { return n.literal }

// Values returns the members of an enum node.
func (n *Node) Values() []any { return n.values }

// DefaultValue returns the value of a default node.
func (n *Node) DefaultValue() any { return n.defaultValue }

// DefaultLabel returns the label shown instead of the default value, if any.
func (n *Node) DefaultLabel() string { return n.meta.DefaultLabel }

// CatchValue returns the fallback value of a catch node.
func (n *Node) CatchValue() any { return n.catchValue }

// EffectType returns the flavour of an effect node.
func (n *Node) EffectType() EffectType { return n.effect }

// In returns the input side of a pipeline node.
func (n *Node) In() *Node { return n.in }

// Out returns the output side of a pipeline node.
func (n *Node) Out() *Node { return n.out }

// FileType returns the encoding of a file node.
func (n *Node) FileType() FileType { return n.fileType }

// Resolve returns the target of a lazy node, calling its getter on first use.
// For other kinds it returns n itself.
func (n *Node) Resolve() *Node {
	if n.kind != KindLazy || n.lazy == nil {
		return n
	}
	n.lazy.once.Do(func() {
		n.lazy.resolved = n.lazy.getter()
	})
	return n.lazy.resolved
}

// Apply runs the transformation of an effect node against v.
// Refinements return v unchanged, or the error of a failed check.
func (n *Node) Apply(v any) (any, error) {
	if n.kind != KindEffect || n.transform == nil {
		return v, nil
	}
	return n.transform(v)
}

// IsOptional reports whether the node accepts an absent value.
// Coerced strings and booleans accept absence because coercion turns it into
// a valid value.
func (n *Node) IsOptional() bool {
	switch n.kind {
	case KindOptional, KindDefault, KindCatch, KindAny:
		return true
	case KindNullable, KindBranded, KindEffect:
		return n.inner.IsOptional()
	case KindPipeline:
		return n.in.IsOptional()
	case KindUnion, KindDiscriminatedUnion:
		return slices.ContainsFunc(n.items, (*Node).IsOptional)
	case KindIntersection:
		return n.items[0].IsOptional() && n.items[1].IsOptional()
	case KindString, KindBoolean:
		return n.meta.Coerce
	}
	return false
}

// IsNullable reports whether the node accepts null.
func (n *Node) IsNullable() bool {
	switch n.kind {
	case KindNull, KindNullable, KindAny, KindCatch:
		return true
	case KindOptional, KindDefault, KindBranded, KindEffect:
		return n.inner.IsNullable()
	case KindPipeline:
		return n.in.IsNullable()
	case KindUnion, KindDiscriminatedUnion:
		return slices.ContainsFunc(n.items, (*Node).IsNullable)
	case KindIntersection:
		return n.items[0].IsNullable() && n.items[1].IsNullable()
	case KindString, KindBoolean:
		return n.meta.Coerce
	}
	return false
}
