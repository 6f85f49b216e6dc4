package openapi

import (
	"reflect"
	"slices"

	"github.com/vitalvas/zodoc/internal/shape"
	"github.com/vitalvas/zodoc/logging"
	"github.com/vitalvas/zodoc/registry"
	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/walker"
)

// isoDateDocsURL documents the date-time format of date-in and date-out.
const isoDateDocsURL = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Date/toISOString"

const isoDateDescription = "YYYY-MM-DDTHH:mm:ss.sssZ"

// Context is the walk context of the wire emitter. Custom brand rules
// receive it.
type Context struct {
	walker.Context
	Version Version

	refs   *registry.Registry[uint64, *Schema]
	logger logging.Logger
}

// Rule depicts a node as a Schema Object.
type Rule = walker.Rule[*Schema, Context]

// Next depicts a child node.
type Next = walker.Next[*Schema]

// nullable marks s as accepting null in the form the version supports.
func (ctx Context) nullable(s *Schema) {
	if ctx.Version.is30() {
		s.Nullable = true
		return
	}
	if !s.Type.Has("null") {
		s.Type = Types(append(slices.Clone(s.Type.Values()), "null")...)
	}
}

func (ctx Context) examples(s *Schema, values []any) {
	if len(values) == 0 {
		return
	}
	if ctx.Version.is30() {
		s.Example = ValueOf(values[0])
		return
	}
	s.Examples = slices.Clone(values)
}

func newRules(brands map[string]Rule) *walker.Rules[*Schema, Context] {
	return &walker.Rules[*Schema, Context]{
		Kinds: map[schema.Kind]Rule{
			schema.KindString:             depictString,
			schema.KindNumber:             depictNumber,
			schema.KindBoolean:            depictBoolean,
			schema.KindBigInt:             depictBigInt,
			schema.KindNull:               depictNull,
			schema.KindAny:                depictAny,
			schema.KindLiteral:            depictLiteral,
			schema.KindEnum:               depictEnum,
			schema.KindDate:               depictDate,
			schema.KindObject:             depictObject,
			schema.KindArray:              depictArray,
			schema.KindTuple:              depictTuple,
			schema.KindRecord:             depictRecord,
			schema.KindUnion:              depictUnion,
			schema.KindDiscriminatedUnion: depictUnion,
			schema.KindIntersection:       depictIntersection,
			schema.KindOptional:           depictInner,
			schema.KindNullable:           depictNullable,
			schema.KindDefault:            depictDefault,
			schema.KindCatch:              depictInner,
			schema.KindBranded:            depictInner,
			schema.KindEffect:             depictEffect,
			schema.KindPipeline:           depictPipeline,
			schema.KindLazy:               depictLazy,
			schema.KindUpload:             depictUpload,
			schema.KindFile:               depictFile,
			schema.KindDateIn:             depictDateIn,
			schema.KindDateOut:            depictDateOut,
			schema.KindRaw:                depictRaw,
		},
		Brands: brands,
		Each:   depictEach,
	}
}

// depictEach merges the annotations every kind shares: description,
// nullability and examples. References are left alone.
func depictEach(node *schema.Node, prev *Schema, ctx Context) (*Schema, error) {
	if prev.IsRef() {
		return prev, nil
	}
	if d := node.Description(); d != "" {
		prev.Description = d
	}
	coercedResponse := ctx.IsResponse() && hasCoercion(node)
	if prev.Type != nil && !coercedResponse && node.IsNullable() {
		ctx.nullable(prev)
	}
	ctx.examples(prev, node.Examples())
	return prev, nil
}

// hasCoercion reports whether node or a node it wraps coerces its input.
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

func depictString(node *schema.Node, _ Context, _ Next) (*Schema, error) {
	c := node.Checks()
	return &Schema{
		Type:      Types("string"),
		Format:    c.Format,
		MinLength: c.MinLength,
		MaxLength: c.MaxLength,
		Pattern:   c.Pattern,
	}, nil
}

func depictNumber(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	c := node.Checks()
	s := &Schema{Type: Types("number"), Format: "double"}
	if c.Int {
		s.Type, s.Format = Types("integer"), "int64"
	}
	if c.Minimum != nil {
		v := *c.Minimum
		switch {
		case !c.ExclusiveMinimum:
			s.Minimum = &v
		case ctx.Version.is30():
			s.Minimum, s.ExclusiveMinimum = &v, ValueOf(true)
		default:
			s.ExclusiveMinimum = ValueOf(v)
		}
	}
	if c.Maximum != nil {
		v := *c.Maximum
		switch {
		case !c.ExclusiveMaximum:
			s.Maximum = &v
		case ctx.Version.is30():
			s.Maximum, s.ExclusiveMaximum = &v, ValueOf(true)
		default:
			s.ExclusiveMaximum = ValueOf(v)
		}
	}
	return s, nil
}

func depictBoolean(_ *schema.Node, _ Context, _ Next) (*Schema, error) {
	return &Schema{Type: Types("boolean")}, nil
}

func depictBigInt(_ *schema.Node, _ Context, _ Next) (*Schema, error) {
	return &Schema{Type: Types("integer"), Format: "bigint"}, nil
}

func depictNull(_ *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if ctx.Version.is30() {
		return &Schema{Type: Types("string"), Nullable: true, Format: "null"}, nil
	}
	return &Schema{Type: Types("null")}, nil
}

func depictAny(_ *schema.Node, _ Context, _ Next) (*Schema, error) {
	return &Schema{Format: "any"}, nil
}

func depictLiteral(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	v := node.Literal()
	t := jsonType(v)
	if ctx.Version.is30() {
		s := &Schema{Enum: []any{v}}
		if t == "null" {
			s.Nullable = true
		} else {
			s.Type = Types(t)
		}
		return s, nil
	}
	return &Schema{Type: Types(t), Const: ValueOf(v)}, nil
}

func depictEnum(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	values := node.Values()
	var types []string
	for _, v := range values {
		if t := jsonType(v); !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	s := &Schema{Enum: slices.Clone(values)}
	if len(types) == 1 || len(types) > 1 && !ctx.Version.is30() {
		s.Type = Types(types...)
	}
	return s, nil
}

func depictDate(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "plain dates cannot be depicted, use date-out within output schemas")
	}
	return nil, walker.DirectionViolation(node, ctx.Base(), "plain dates cannot be depicted, use date-in within input schemas")
}

func depictProperties(fields []schema.Field, next Next) (map[string]*Schema, error) {
	props := make(map[string]*Schema, len(fields))
	for _, f := range fields {
		s, err := next(f.Schema)
		if err != nil {
			return nil, err
		}
		if f.Schema.IsDeprecated() && !s.IsRef() {
			s.Deprecated = true
		}
		props[f.Name] = s
	}
	return props, nil
}

// isOptionalProp decides whether an object property may be absent. Coercion
// makes any response value look optional, so for coerced response
// properties only an explicit optional wrapper counts.
func isOptionalProp(n *schema.Node, ctx Context) bool {
	if ctx.IsResponse() && hasCoercion(n) {
		return n.Kind() == schema.KindOptional
	}
	return n.IsOptional()
}

func depictObject(node *schema.Node, ctx Context, next Next) (*Schema, error) {
	s := &Schema{Type: Types("object")}
	fields := node.Fields()
	if len(fields) == 0 {
		return s, nil
	}
	props, err := depictProperties(fields, next)
	if err != nil {
		return nil, err
	}
	s.Properties = props
	for _, f := range fields {
		if !isOptionalProp(f.Schema, ctx) {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s, nil
}

func depictArray(node *schema.Node, _ Context, next Next) (*Schema, error) {
	items, err := next(node.Inner())
	if err != nil {
		return nil, err
	}
	c := node.Checks()
	return &Schema{Type: Types("array"), Items: items, MinItems: c.MinItems, MaxItems: c.MaxItems}, nil
}

func depictTuple(node *schema.Node, ctx Context, next Next) (*Schema, error) {
	items := make([]*Schema, 0, len(node.Items()))
	for _, item := range node.Items() {
		s, err := next(item)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	var rest *Schema
	if node.Rest() != nil {
		var err error
		if rest, err = next(node.Rest()); err != nil {
			return nil, err
		}
	}

	if ctx.Version.is30() {
		s := &Schema{Type: Types("array"), Format: "tuple"}
		options := items
		if rest != nil {
			options = append(options, rest)
		}
		if len(options) > 0 {
			s.Items = &Schema{OneOf: options}
		}
		minItems, maxItems := len(items), len(items)
		s.MinItems = &minItems
		if rest == nil {
			s.MaxItems = &maxItems
		}
		return s, nil
	}

	s := &Schema{Type: Types("array"), PrefixItems: items, Items: rest}
	if rest == nil {
		s.Items = &Schema{Not: &Schema{}}
	}
	return s, nil
}

// finiteKeys returns the keys of a record whose key schema is an enum, a
// literal or a union of literals.
func finiteKeys(key *schema.Node) ([]string, bool) {
	switch key.Kind() {
	case schema.KindEnum:
		keys := make([]string, 0, len(key.Values()))
		for _, v := range key.Values() {
			keys = append(keys, keyString(v))
		}
		return keys, true
	case schema.KindLiteral:
		return []string{keyString(key.Literal())}, true
	case schema.KindUnion:
		keys := make([]string, 0, len(key.Items()))
		for _, opt := range key.Items() {
			if opt.Kind() != schema.KindLiteral {
				return nil, false
			}
			keys = append(keys, keyString(opt.Literal()))
		}
		return keys, true
	}
	return nil, false
}

func depictRecord(node *schema.Node, _ Context, next Next) (*Schema, error) {
	keys, finite := finiteKeys(node.KeySchema())
	if !finite {
		value, err := next(node.Inner())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: Types("object"), AdditionalProperties: value}, nil
	}

	s := &Schema{Type: Types("object")}
	if len(keys) == 0 {
		return s, nil
	}
	fields := make([]schema.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, schema.Prop(k, node.Inner()))
	}
	props, err := depictProperties(fields, next)
	if err != nil {
		return nil, err
	}
	s.Properties, s.Required = props, keys
	return s, nil
}

func depictUnion(node *schema.Node, _ Context, next Next) (*Schema, error) {
	s := &Schema{}
	for _, opt := range node.Items() {
		o, err := next(opt)
		if err != nil {
			return nil, err
		}
		s.OneOf = append(s.OneOf, o)
	}
	if d := node.Discriminator(); d != "" {
		s.Discriminator = &Discriminator{PropertyName: d}
	}
	return s, nil
}

func depictIntersection(node *schema.Node, _ Context, next Next) (*Schema, error) {
	left, err := next(node.Items()[0])
	if err != nil {
		return nil, err
	}
	right, err := next(node.Items()[1])
	if err != nil {
		return nil, err
	}
	if flat, ok := flattenIntersection(left, right); ok {
		return flat, nil
	}
	return &Schema{AllOf: []*Schema{left, right}}, nil
}

// isPlainObject reports whether s is an object schema carrying nothing but
// properties, required names and examples.
func isPlainObject(s *Schema) bool {
	if s == nil || len(s.Type.Values()) != 1 || s.Type.First() != "object" {
		return false
	}
	rest := *s
	rest.Type, rest.Properties, rest.Required, rest.Examples, rest.Example = nil, nil, nil, nil, nil
	return reflect.DeepEqual(rest, Schema{})
}

// flattenIntersection merges two plain objects. It refuses when a property
// is declared on both sides with different schemas.
func flattenIntersection(left, right *Schema) (*Schema, bool) {
	if !isPlainObject(left) || !isPlainObject(right) {
		return nil, false
	}
	flat := &Schema{Type: Types("object")}
	if len(left.Properties)+len(right.Properties) > 0 {
		flat.Properties = make(map[string]*Schema, len(left.Properties)+len(right.Properties))
		for k, v := range left.Properties {
			flat.Properties[k] = v
		}
		for k, v := range right.Properties {
			if existing, ok := flat.Properties[k]; ok && !reflect.DeepEqual(existing, v) {
				return nil, false
			}
			flat.Properties[k] = v
		}
	}
	flat.Required = slices.Clone(left.Required)
	for _, r := range right.Required {
		if !slices.Contains(flat.Required, r) {
			flat.Required = append(flat.Required, r)
		}
	}
	flat.Examples = combineExamples(left.Examples, right.Examples)
	switch {
	case left.Example != nil && right.Example != nil:
		flat.Example = ValueOf(mergeExample(left.Example.Data, right.Example.Data))
	case left.Example != nil:
		flat.Example = left.Example
	default:
		flat.Example = right.Example
	}
	return flat, true
}

// combineExamples pairs every example of one side with every example of the
// other.
func combineExamples(left, right []any) []any {
	if len(left) == 0 {
		return right
	}
	if len(right) == 0 {
		return left
	}
	out := make([]any, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			out = append(out, mergeExample(l, r))
		}
	}
	return out
}

func mergeExample(left, right any) any {
	l, lok := left.(map[string]any)
	r, rok := right.(map[string]any)
	if !lok || !rok {
		return right
	}
	merged := make(map[string]any, len(l)+len(r))
	for k, v := range l {
		merged[k] = v
	}
	for k, v := range r {
		merged[k] = v
	}
	return merged
}

func depictInner(node *schema.Node, _ Context, next Next) (*Schema, error) {
	return next(node.Inner())
}

func depictNullable(node *schema.Node, ctx Context, next Next) (*Schema, error) {
	s, err := next(node.Inner())
	if err != nil {
		return nil, err
	}
	switch {
	case s.IsRef() && ctx.Version.is30():
		return &Schema{AllOf: []*Schema{s}, Nullable: true}, nil
	case s.IsRef():
		return &Schema{AnyOf: []*Schema{s, {Type: Types("null")}}}, nil
	case s.Type != nil:
		ctx.nullable(s)
	case ctx.Version.is30():
		s.Nullable = true
	case len(s.OneOf) > 0:
		s.OneOf = append(s.OneOf, &Schema{Type: Types("null")})
	}
	return s, nil
}

func depictDefault(node *schema.Node, _ Context, next Next) (*Schema, error) {
	s, err := next(node.Inner())
	if err != nil {
		return nil, err
	}
	if label := node.DefaultLabel(); label != "" {
		s.Default = ValueOf(label)
	} else {
		s.Default = ValueOf(node.DefaultValue())
	}
	return s, nil
}

func depictEffect(node *schema.Node, ctx Context, next Next) (*Schema, error) {
	input, err := next(node.Inner())
	if err != nil || input.IsRef() {
		return input, err
	}
	switch {
	case ctx.IsResponse() && node.EffectType() == schema.EffectTransform:
		return ctx.inferOutput(node, input), nil
	case !ctx.IsResponse() && node.EffectType() == schema.EffectPreprocess:
		format := input.Format
		if format == "" {
			format = input.Type.First()
		}
		out := *input
		out.Type = nil
		out.Format = format + " (preprocessed)"
		return &out, nil
	}
	return input, nil
}

func depictPipeline(node *schema.Node, ctx Context, next Next) (*Schema, error) {
	if ctx.IsResponse() {
		return next(node.Out())
	}
	return next(node.In())
}

// depictLazy registers the target as a component and returns a reference to
// it. A target already being depicted yields the reference without recursing.
func depictLazy(node *schema.Node, ctx Context, next Next) (*Schema, error) {
	key := shape.Hash(node, ctx.Direction.String())
	if e, ok := ctx.refs.Lookup(key); ok {
		return componentRef(e.Name), nil
	}
	name := ctx.refs.Reserve(key)
	target, err := next(node.Resolve())
	if err != nil {
		return nil, err
	}
	ctx.refs.Resolve(key, target)
	return componentRef(name), nil
}

func componentRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func depictUpload(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use upload only within input schemas")
	}
	return &Schema{Type: Types("string"), Format: "binary"}, nil
}

func depictFile(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if !ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use file only within output schemas, upload for input")
	}
	switch node.FileType() {
	case schema.FileBase64:
		return &Schema{Type: Types("string"), Format: "byte"}, nil
	case schema.FileText:
		return &Schema{Type: Types("string"), Format: "file"}, nil
	}
	return &Schema{Type: Types("string"), Format: "binary"}, nil
}

func depictDateIn(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use date-out within output schemas")
	}
	return &Schema{
		Description:  isoDateDescription,
		Type:         Types("string"),
		Format:       "date-time",
		Pattern:      schema.DateInPattern,
		ExternalDocs: &ExternalDocs{URL: isoDateDocsURL},
	}, nil
}

func depictDateOut(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if !ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use date-in within input schemas")
	}
	return &Schema{
		Description:  isoDateDescription,
		Type:         Types("string"),
		Format:       "date-time",
		ExternalDocs: &ExternalDocs{URL: isoDateDocsURL},
	}, nil
}

func depictRaw(node *schema.Node, ctx Context, _ Next) (*Schema, error) {
	if ctx.IsResponse() {
		return nil, walker.DirectionViolation(node, ctx.Base(), "use raw only within input schemas")
	}
	return &Schema{Type: Types("string"), Format: "binary"}, nil
}
