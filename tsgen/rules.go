package tsgen

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/vitalvas/zodoc/internal/shape"
	"github.com/vitalvas/zodoc/logging"
	"github.com/vitalvas/zodoc/registry"
	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/walker"
)

// Context is the walk context of the type emitter. Custom brand rules
// receive it.
type Context struct {
	walker.Context
	Optional OptionalStyle

	aliases   *registry.Registry[*schema.Node, Type]
	logger    logging.Logger
	expanding map[uint64]string // shape of each lazy on the current path to its alias
}

// Rule produces the type of a node.
type Rule = walker.Rule[Type, Context]

// Next produces the type of a child node.
type Next = walker.Next[Type]

func newRules(brands map[string]Rule) *walker.Rules[Type, Context] {
	return &walker.Rules[Type, Context]{
		Kinds: map[schema.Kind]Rule{
			schema.KindString:             keyword(KeywordString),
			schema.KindNumber:             keyword(KeywordNumber),
			schema.KindBoolean:            keyword(KeywordBoolean),
			schema.KindBigInt:             keyword(KeywordBigInt),
			schema.KindNull:               keyword(KeywordNull),
			schema.KindAny:                keyword(KeywordAny),
			schema.KindLiteral:            onLiteral,
			schema.KindEnum:               onEnum,
			schema.KindDate:               onDate,
			schema.KindObject:             onObject,
			schema.KindArray:              onArray,
			schema.KindTuple:              onTuple,
			schema.KindRecord:             onRecord,
			schema.KindUnion:              onUnion,
			schema.KindDiscriminatedUnion: onUnion,
			schema.KindIntersection:       onIntersection,
			schema.KindOptional:           onInner,
			schema.KindNullable:           onNullable,
			schema.KindDefault:            onInner,
			schema.KindCatch:              onInner,
			schema.KindBranded:            onInner,
			schema.KindEffect:             onEffect,
			schema.KindPipeline:           onPipeline,
			schema.KindLazy:               onLazy,
			schema.KindUpload:             onUpload,
			schema.KindFile:               onFile,
			schema.KindDateIn:             onDateIn,
			schema.KindDateOut:            onDateOut,
			schema.KindRaw:                onRaw,
		},
		Brands: brands,
		Each:   onEach,
	}
}

// onEach adds null to the types of nullable nodes that do not carry it yet.
func onEach(node *schema.Node, prev Type, ctx Context) (Type, error) {
	if !node.IsNullable() || ctx.IsResponse() && hasCoercion(node) || acceptsNull(prev) {
		return prev, nil
	}
	return withMember(prev, KeywordNull), nil
}

// withMember adds m to t, appending to the members of t when it is a union.
func withMember(t, m Type) Type {
	if u, ok := t.(Union); ok {
		return Union{Types: append(slices.Clone(u.Types), m)}
	}
	return Union{Types: []Type{t, m}}
}

func acceptsNull(t Type) bool {
	switch v := t.(type) {
	case Keyword:
		return v == KeywordNull || v == KeywordAny || v == KeywordUnknown
	case Union:
		return slices.ContainsFunc(v.Types, acceptsNull)
	}
	return false
}

func hasCoercion(node *schema.Node) bool {
	for n := node; n != nil; {
		if n.IsCoerced() {
			return true
		}
		switch {
		case n.Kind() == schema.KindPipeline:
			n = n.In()
		case n.Kind().IsWrapper() && n.Kind() != schema.KindLazy:
			n = n.Inner()
		default:
			return false
		}
	}
	return false
}

func keyword(k Keyword) Rule {
	return func(_ *schema.Node, _ Context, _ Next) (Type, error) {
		return k, nil
	}
}

func onLiteral(node *schema.Node, _ Context, _ Next) (Type, error) {
	return Literal{Value: node.Literal()}, nil
}

func onEnum(node *schema.Node, _ Context, _ Next) (Type, error) {
	types := make([]Type, 0, len(node.Values()))
	for _, v := range node.Values() {
		types = append(types, Literal{Value: v})
	}
	if len(types) == 1 {
		return types[0], nil
	}
	return Union{Types: types}, nil
}

func onDate(node *schema.Node, ctx Context, _ Next) (Type, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "plain dates cannot be typed, use date-out within output schemas")
	}
	return nil, walker.DirectionViolation(node, ctx.Base(), "plain dates cannot be typed, use date-in within input schemas")
}

// isOptionalProp mirrors the required-ness of the wire schema: coerced
// response properties are optional only when wrapped explicitly.
func isOptionalProp(n *schema.Node, ctx Context) bool {
	if ctx.IsResponse() && hasCoercion(n) {
		return n.Kind() == schema.KindOptional
	}
	return n.IsOptional()
}

func onObject(node *schema.Node, ctx Context, next Next) (Type, error) {
	props := make([]Property, 0, len(node.Fields()))
	for _, f := range node.Fields() {
		t, err := next(f.Schema)
		if err != nil {
			return nil, err
		}
		props = append(props, ctx.property(f.Name, f.Schema, t, isOptionalProp(f.Schema, ctx)))
	}
	return Object{Props: props}, nil
}

func (ctx Context) property(name string, node *schema.Node, t Type, optional bool) Property {
	if optional && ctx.Optional.undefined() {
		t = withMember(t, KeywordUndefined)
	}
	return Property{
		Name:       name,
		Type:       t,
		Optional:   optional && ctx.Optional.questionMark(),
		Comment:    node.Description(),
		Deprecated: node.IsDeprecated(),
	}
}

func onArray(node *schema.Node, _ Context, next Next) (Type, error) {
	elem, err := next(node.Inner())
	if err != nil {
		return nil, err
	}
	return Array{Elem: elem}, nil
}

func onTuple(node *schema.Node, _ Context, next Next) (Type, error) {
	tuple := Tuple{Items: make([]Type, 0, len(node.Items()))}
	for _, item := range node.Items() {
		t, err := next(item)
		if err != nil {
			return nil, err
		}
		tuple.Items = append(tuple.Items, t)
	}
	if node.Rest() != nil {
		rest, err := next(node.Rest())
		if err != nil {
			return nil, err
		}
		tuple.Rest = rest
	}
	return tuple, nil
}

// finiteKeys returns the keys of a record whose key schema is an enum, a
// literal or a union of literals.
func finiteKeys(key *schema.Node) ([]string, bool) {
	var values []any
	switch key.Kind() {
	case schema.KindEnum:
		values = key.Values()
	case schema.KindLiteral:
		values = []any{key.Literal()}
	case schema.KindUnion:
		for _, opt := range key.Items() {
			if opt.Kind() != schema.KindLiteral {
				return nil, false
			}
			values = append(values, opt.Literal())
		}
	default:
		return nil, false
	}
	keys := make([]string, 0, len(values))
	for _, v := range values {
		keys = append(keys, fmt.Sprint(v))
	}
	return keys, true
}

func onRecord(node *schema.Node, ctx Context, next Next) (Type, error) {
	value, err := next(node.Inner())
	if err != nil {
		return nil, err
	}
	if keys, ok := finiteKeys(node.KeySchema()); ok {
		props := make([]Property, 0, len(keys))
		for _, k := range keys {
			props = append(props, ctx.property(k, node.Inner(), value, false))
		}
		return Object{Props: props}, nil
	}
	key, err := next(node.KeySchema())
	if err != nil {
		return nil, err
	}
	return Ref{Name: "Record", Args: []Type{key, value}}, nil
}

func onUnion(node *schema.Node, _ Context, next Next) (Type, error) {
	u := Union{Types: make([]Type, 0, len(node.Items()))}
	for _, opt := range node.Items() {
		t, err := next(opt)
		if err != nil {
			return nil, err
		}
		if nested, ok := t.(Union); ok {
			u.Types = append(u.Types, nested.Types...)
			continue
		}
		u.Types = append(u.Types, t)
	}
	return u, nil
}

// onIntersection merges two object literals unless they declare the same
// property differently.
func onIntersection(node *schema.Node, _ Context, next Next) (Type, error) {
	left, err := next(node.Items()[0])
	if err != nil {
		return nil, err
	}
	right, err := next(node.Items()[1])
	if err != nil {
		return nil, err
	}
	if merged, ok := mergeObjects(left, right); ok {
		return merged, nil
	}
	return Intersection{Types: []Type{left, right}}, nil
}

func mergeObjects(left, right Type) (Object, bool) {
	l, lok := left.(Object)
	r, rok := right.(Object)
	if !lok || !rok {
		return Object{}, false
	}
	props := slices.Clone(l.Props)
	for _, p := range r.Props {
		idx := slices.IndexFunc(props, func(e Property) bool { return e.Name == p.Name })
		if idx < 0 {
			props = append(props, p)
			continue
		}
		if !reflect.DeepEqual(props[idx], p) {
			return Object{}, false
		}
	}
	return Object{Props: props}, true
}

func onInner(node *schema.Node, _ Context, next Next) (Type, error) {
	return next(node.Inner())
}

func onNullable(node *schema.Node, _ Context, next Next) (Type, error) {
	t, err := next(node.Inner())
	if err != nil || acceptsNull(t) {
		return t, err
	}
	return withMember(t, KeywordNull), nil
}

func onEffect(node *schema.Node, ctx Context, next Next) (Type, error) {
	input, err := next(node.Inner())
	if err != nil {
		return nil, err
	}
	if ctx.IsResponse() && node.EffectType() == schema.EffectTransform {
		return ctx.inferOutput(node, input), nil
	}
	return input, nil
}

func onPipeline(node *schema.Node, ctx Context, next Next) (Type, error) {
	if ctx.IsResponse() {
		return next(node.Out())
	}
	return next(node.In())
}

// onLazy declares the target as a named alias keyed by node identity and
// refers to it. A distinct lazy node with the same shape as one still being
// expanded refers to that alias, so getters that build a fresh node per call
// terminate.
func onLazy(node *schema.Node, ctx Context, next Next) (Type, error) {
	if e, ok := ctx.aliases.Lookup(node); ok {
		return Ref{Name: e.Name}, nil
	}
	key := shape.Hash(node, ctx.Direction.String())
	if name, ok := ctx.expanding[key]; ok {
		return Ref{Name: name}, nil
	}
	name := ctx.aliases.Reserve(node)
	ctx.expanding[key] = name
	target, err := next(node.Resolve())
	delete(ctx.expanding, key)
	if err != nil {
		return nil, err
	}
	ctx.aliases.Resolve(node, target)
	return Ref{Name: name}, nil
}

func onUpload(node *schema.Node, ctx Context, _ Next) (Type, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use upload only within input schemas")
	}
	return Ref{Name: "Blob"}, nil
}

func onFile(node *schema.Node, ctx Context, _ Next) (Type, error) {
	if !ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use file only within output schemas, upload for input")
	}
	if node.FileType() == schema.FileBinary {
		return Ref{Name: "Blob"}, nil
	}
	return KeywordString, nil
}

func onDateIn(node *schema.Node, ctx Context, _ Next) (Type, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use date-out within output schemas")
	}
	return KeywordString, nil
}

func onDateOut(node *schema.Node, ctx Context, _ Next) (Type, error) {
	if !ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use date-in within input schemas")
	}
	return KeywordString, nil
}

func onRaw(node *schema.Node, ctx Context, _ Next) (Type, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use raw only within input schemas")
	}
	return Ref{Name: "Blob"}, nil
}
