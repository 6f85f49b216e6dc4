package schema

import (
	"errors"
	"slices"

	"github.com/dlclark/regexp2"
)

// DateInPattern is the ISO 8601 pattern accepted by date-in nodes.
const DateInPattern = `^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?)?Z?$`

// ErrRefinement is returned by Apply when a refinement check fails.
var ErrRefinement = errors.New("refinement failed")

func String() *Node  { return newNode(KindString) }
func Number() *Node  { return newNode(KindNumber) }
func Boolean() *Node { return newNode(KindBoolean) }
func BigInt() *Node  { return newNode(KindBigInt) }
func Null() *Node    { return newNode(KindNull) }
func Any() *Node     { return newNode(KindAny) }

// Date is a plain date. It cannot be depicted; use DateIn or DateOut.
func Date() *Node { return newNode(KindDate) }

// Literal creates a node accepting exactly v.
func Literal(v any) *Node {
	n := newNode(KindLiteral)
	n.literal = v
	return n
}

// Enum creates a string enumeration.
func Enum(values ...string) *Node {
	n := newNode(KindEnum)
	n.values = make([]any, 0, len(values))
	for _, v := range values {
		n.values = append(n.values, v)
	}
	return n
}

// NativeEnum creates an enumeration of arbitrary string or number values.
func NativeEnum(values ...any) *Node {
	n := newNode(KindEnum)
	n.values = slices.Clone(values)
	return n
}

// Object creates an object node with fields in declaration order.
func Object(fields ...Field) *Node {
	n := newNode(KindObject)
	n.fields = slices.Clone(fields)
	return n
}

func Array(item *Node) *Node {
	n := newNode(KindArray)
	n.inner = item
	return n
}

func Tuple(items ...*Node) *Node {
	n := newNode(KindTuple)
	n.items = slices.Clone(items)
	return n
}

// Record creates a dictionary with keys matching key and values matching value.
func Record(key, value *Node) *Node {
	n := newNode(KindRecord)
	n.key = key
	n.inner = value
	return n
}

func Union(options ...*Node) *Node {
	n := newNode(KindUnion)
	n.items = slices.Clone(options)
	return n
}

// DiscriminatedUnion creates a union of objects told apart by the literal
// value of the discriminator property.
func DiscriminatedUnion(discriminator string, options ...*Node) *Node {
	n := newNode(KindDiscriminatedUnion)
	n.discriminator = discriminator
	n.items = slices.Clone(options)
	return n
}

func Intersection(left, right *Node) *Node {
	n := newNode(KindIntersection)
	n.items = []*Node{left, right}
	return n
}

// Preprocess creates an effect mapping raw input with fn before inner parses it.
func Preprocess(fn TransformFunc, inner *Node) *Node {
	n := wrap(KindEffect, inner)
	n.effect = EffectPreprocess
	n.transform = fn
	return n
}

// Lazy defers the construction of a node until first use. It is the only way
// to build self-referencing schemas.
func Lazy(getter func() *Node) *Node {
	n := newNode(KindLazy)
	n.lazy = &lazyRef{getter: getter}
	return n
}

// Upload is a file uploaded with a multipart request. Input only.
func Upload() *Node { return newNode(KindUpload) }

// File is a file sent in a response. Output only.
func File(ft FileType) *Node {
	n := newNode(KindFile)
	n.fileType = ft
	return n
}

// DateIn accepts an ISO 8601 string and parses it into a date. Input only.
func DateIn() *Node { return newNode(KindDateIn) }

// DateOut serializes a date into an ISO 8601 string. Output only.
func DateOut() *Node { return newNode(KindDateOut) }

// Raw accepts the unparsed request body. Input only.
func Raw() *Node { return newNode(KindRaw) }

func (n *Node) Optional() *Node { return wrap(KindOptional, n) }
func (n *Node) Nullable() *Node { return wrap(KindNullable, n) }

// Default makes the node optional, substituting v when the value is absent.
func (n *Node) Default(v any) *Node {
	w := wrap(KindDefault, n)
	w.defaultValue = v
	return w
}

// Catch substitutes v when parsing fails.
func (n *Node) Catch(v any) *Node {
	w := wrap(KindCatch, n)
	w.catchValue = v
	return w
}

// Branded tags the node with a brand that custom rules can dispatch on.
func (n *Node) Branded(name string) *Node {
	w := wrap(KindBranded, n)
	w.meta.Brand = name
	return w
}

// Refine adds a validation check that does not change the value.
func (n *Node) Refine(check func(v any) bool) *Node {
	w := wrap(KindEffect, n)
	w.effect = EffectRefinement
	w.transform = func(v any) (any, error) {
		if !check(v) {
			return nil, ErrRefinement
		}
		return v, nil
	}
	return w
}

// Transform maps the parsed value with fn.
func (n *Node) Transform(fn TransformFunc) *Node {
	w := wrap(KindEffect, n)
	w.effect = EffectTransform
	w.transform = fn
	return w
}

// Pipe feeds the output of n into out.
func (n *Node) Pipe(out *Node) *Node {
	p := newNode(KindPipeline)
	p.in = n
	p.out = out
	p.meta.Description = n.meta.Description
	return p
}

// Describe sets the description.
func (n *Node) Describe(description string) *Node {
	c := n.clone()
	c.meta.Description = description
	return c
}

// Example appends an example value.
func (n *Node) Example(v any) *Node {
	c := n.clone()
	c.meta.Examples = append(c.meta.Examples, v)
	return c
}

// Label sets the text shown in documentation instead of the default value.
func (n *Node) Label(label string) *Node {
	c := n.clone()
	c.meta.DefaultLabel = label
	return c
}

// Coerce marks the node as coercing its input to the target type.
func (n *Node) Coerce() *Node {
	c := n.clone()
	c.meta.Coerce = true
	return c
}

func (n *Node) Deprecated() *Node {
	c := n.clone()
	c.meta.Deprecated = true
	return c
}

// Extend returns an object with additional fields. Fields with an existing
// name replace the original ones in place.
func (n *Node) Extend(fields ...Field) *Node {
	c := n.clone()
	c.fields = slices.Clone(n.fields)
	for _, f := range fields {
		idx := slices.IndexFunc(c.fields, func(e Field) bool { return e.Name == f.Name })
		if idx >= 0 {
			c.fields[idx] = f
			continue
		}
		c.fields = append(c.fields, f)
	}
	return c
}

// WithRest sets the variadic tail of a tuple.
func (n *Node) WithRest(rest *Node) *Node {
	c := n.clone()
	c.rest = rest
	return c
}

func (n *Node) withChecks(fn func(*Checks)) *Node {
	c := n.clone()
	fn(&c.checks)
	return c
}

func (n *Node) Int() *Node {
	return n.withChecks(func(c *Checks) { c.Int = true })
}

// Min sets an inclusive lower bound.
func (n *Node) Min(v float64) *Node {
	return n.withChecks(func(c *Checks) { c.Minimum, c.ExclusiveMinimum = &v, false })
}

// Max sets an inclusive upper bound.
func (n *Node) Max(v float64) *Node {
	return n.withChecks(func(c *Checks) { c.Maximum, c.ExclusiveMaximum = &v, false })
}

// Gt sets an exclusive lower bound.
func (n *Node) Gt(v float64) *Node {
	return n.withChecks(func(c *Checks) { c.Minimum, c.ExclusiveMinimum = &v, true })
}

// Lt sets an exclusive upper bound.
func (n *Node) Lt(v float64) *Node {
	return n.withChecks(func(c *Checks) { c.Maximum, c.ExclusiveMaximum = &v, true })
}

func (n *Node) Positive() *Node { return n.Gt(0) }

func (n *Node) MinLength(v int) *Node {
	return n.withChecks(func(c *Checks) { c.MinLength = &v })
}

func (n *Node) MaxLength(v int) *Node {
	return n.withChecks(func(c *Checks) { c.MaxLength = &v })
}

// Length sets an exact length.
func (n *Node) Length(v int) *Node {
	return n.withChecks(func(c *Checks) { c.MinLength, c.MaxLength = &v, &v })
}

func (n *Node) format(f string) *Node {
	return n.withChecks(func(c *Checks) { c.Format = f })
}

func (n *Node) Email() *Node    { return n.format("email") }
func (n *Node) URL() *Node      { return n.format("url") }
func (n *Node) UUID() *Node     { return n.format("uuid") }
func (n *Node) CUID() *Node     { return n.format("cuid") }
func (n *Node) DateTime() *Node { return n.format("date-time") }

// Regex sets the pattern a string must match. The pattern uses the ECMAScript
// dialect, the one understood by documentation consumers. It panics when the
// pattern does not compile.
func (n *Node) Regex(pattern string) *Node {
	regexp2.MustCompile(pattern, regexp2.ECMAScript)
	return n.withChecks(func(c *Checks) { c.Pattern = pattern })
}

func (n *Node) MinItems(v int) *Node {
	return n.withChecks(func(c *Checks) { c.MinItems = &v })
}

func (n *Node) MaxItems(v int) *Node {
	return n.withChecks(func(c *Checks) { c.MaxItems = &v })
}

// NonEmpty requires at least one array element.
func (n *Node) NonEmpty() *Node { return n.MinItems(1) }
