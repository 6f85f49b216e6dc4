package openapi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/naming"
	"github.com/vitalvas/zodoc/routing"
	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/security"
	"github.com/vitalvas/zodoc/walker"
)

// extractObject reduces an input schema to the object whose properties are
// the request parameters. Union members contribute optional properties,
// intersections merge both sides and refinements are transparent.
func extractObject(node *schema.Node, ctx walker.Context) (*schema.Node, error) {
	switch node.Kind() {
	case schema.KindObject:
		return node, nil
	case schema.KindBranded:
		return extractObject(node.Inner(), ctx)
	case schema.KindLazy:
		return extractObject(node.Resolve(), ctx)
	case schema.KindUnion, schema.KindDiscriminatedUnion:
		merged := schema.Object()
		for _, opt := range node.Items() {
			obj, err := extractObject(opt, ctx)
			if err != nil {
				return nil, err
			}
			merged = merged.Extend(partial(obj.Fields())...)
		}
		return merged, nil
	case schema.KindIntersection:
		left, err := extractObject(node.Items()[0], ctx)
		if err != nil {
			return nil, err
		}
		right, err := extractObject(node.Items()[1], ctx)
		if err != nil {
			return nil, err
		}
		return left.Extend(right.Fields()...), nil
	case schema.KindEffect:
		if node.EffectType() == schema.EffectRefinement {
			return extractObject(node.Inner(), ctx)
		}
		return nil, &apierrors.TransformError{
			Location: ctx.Location(),
			Message:  fmt.Sprintf("using %s on the top level of the input schema is not allowed", node.EffectType()),
		}
	case schema.KindPipeline:
		return nil, &apierrors.TransformError{
			Location: ctx.Location(),
			Message:  "using pipelines on the top level of the input schema is not allowed",
		}
	}
	return nil, &apierrors.UnsupportedKindError{
		Location:    ctx.Location(),
		Kind:        node.Kind().String(),
		Description: "the input schema must be object-like",
	}
}

func partial(fields []schema.Field) []schema.Field {
	out := make([]schema.Field, 0, len(fields))
	for _, f := range fields {
		if !f.Schema.IsOptional() {
			f.Schema = f.Schema.Optional()
		}
		out = append(out, f)
	}
	return out
}

// checkResponseRoot rejects response schemas whose shape is only known after
// running a transformation.
func checkResponseRoot(node *schema.Node, ctx walker.Context) error {
	seen := make(map[*schema.Node]bool)
	for node != nil && !seen[node] {
		seen[node] = true
		switch node.Kind() {
		case schema.KindBranded:
			node = node.Inner()
			continue
		case schema.KindLazy:
			node = node.Resolve()
			continue
		}
		break
	}
	if node == nil {
		return nil
	}
	if node.Kind() == schema.KindEffect && node.EffectType() != schema.EffectRefinement {
		return &apierrors.TransformError{
			Location: ctx.Location(),
			Message:  fmt.Sprintf("using %s on the top level of the response schema is not allowed", node.EffectType()),
		}
	}
	return nil
}

func (b *builder) isHeader(name, method, path string, securityHeaders []string) bool {
	if b.cfg.IsHeader != nil {
		return b.cfg.IsHeader(name, method, path)
	}
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "x-") || slices.Contains(securityHeaders, lower)
}

func securityHeaders(expr security.Expr) []string {
	var names []string
	for _, alt := range security.Alternatives(expr) {
		for _, s := range alt {
			if s.Type == security.TypeHeader {
				names = append(names, strings.ToLower(s.Name))
			}
		}
	}
	return names
}

func (b *builder) depictParameters(method, path string, ep *routing.Endpoint, sources []InputSource) ([]*Parameter, error) {
	ctx := b.context(schema.DirectionIn, method, path)
	obj, err := extractObject(ep.Schema(schema.DirectionIn), ctx.Context)
	if err != nil {
		return nil, err
	}

	pathParams := routing.PathParams(path)
	headers := securityHeaders(ep.Security())
	label := operationLabel(method, path)

	var params []*Parameter
	for _, f := range obj.Fields() {
		var in string
		switch {
		case hasSource(sources, SourceParams) && slices.Contains(pathParams, f.Name):
			in = "path"
		case hasSource(sources, SourceHeaders) && b.isHeader(f.Name, method, path, headers):
			in = "header"
		case hasSource(sources, SourceQuery):
			in = "query"
		default:
			continue
		}

		depicted, err := walker.Walk(f.Schema, ctx, b.rules)
		if err != nil {
			return nil, err
		}
		description := depicted.Description
		if description == "" {
			description = label + " Parameter"
		}
		examples := liftExamples(depicted, nil)
		params = append(params, &Parameter{
			Name:        f.Name,
			In:          in,
			Description: description,
			Required:    in == "path" || !f.Schema.IsOptional(),
			Deprecated:  f.Schema.IsDeprecated(),
			Schema:      b.makeRef(f.Schema, "parameter", depicted, naming.CleanID(label+" Parameter", f.Name)),
			Examples:    examples,
		})
	}
	return params, nil
}

func (b *builder) depictRequestBody(method, path string, ep *routing.Endpoint) (*RequestBody, error) {
	ctx := b.context(schema.DirectionIn, method, path)
	input := ep.Schema(schema.DirectionIn)
	if _, err := extractObject(input, ctx.Context); err != nil {
		return nil, err
	}
	depicted, err := walker.Walk(input, ctx, b.rules)
	if err != nil {
		return nil, err
	}

	pathParams := routing.PathParams(path)
	body := excludeParams(depicted, pathParams)
	examples := liftExamples(body, pathParams)
	description := operationLabel(method, path) + " Request body"
	ref := b.makeRef(input, "body:"+strings.Join(pathParams, ","), body, naming.CleanID(description))

	content := make(map[string]*MediaType)
	for _, mime := range ep.MimeTypes(schema.DirectionIn) {
		content[mime] = &MediaType{Schema: ref, Examples: examples}
	}
	return &RequestBody{Description: description, Content: content}, nil
}

// excludeParams returns a copy of s without the given properties, descending
// into compositions.
func excludeParams(s *Schema, names []string) *Schema {
	if s == nil || len(names) == 0 || s.IsRef() {
		return s
	}
	out := *s
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			if !slices.Contains(names, k) {
				out.Properties[k] = v
			}
		}
		if len(out.Properties) == 0 {
			out.Properties = nil
		}
	}
	if len(s.Required) > 0 {
		out.Required = slices.DeleteFunc(slices.Clone(s.Required), func(r string) bool {
			return slices.Contains(names, r)
		})
		if len(out.Required) == 0 {
			out.Required = nil
		}
	}
	out.AllOf = excludeEach(s.AllOf, names)
	out.OneOf = excludeEach(s.OneOf, names)
	out.AnyOf = excludeEach(s.AnyOf, names)
	return &out
}

func excludeEach(list []*Schema, names []string) []*Schema {
	if list == nil {
		return nil
	}
	out := make([]*Schema, 0, len(list))
	for _, s := range list {
		out = append(out, excludeParams(s, names))
	}
	return out
}

// liftExamples moves the examples of s into media type examples named
// example1, example2 and so on. Object examples lose the omitted keys.
func liftExamples(s *Schema, omit []string) map[string]*Example {
	if s == nil || s.IsRef() {
		return nil
	}
	var values []any
	switch {
	case len(s.Examples) > 0:
		values = s.Examples
	case s.Example != nil:
		values = []any{s.Example.Data}
	}
	s.Examples, s.Example = nil, nil
	if len(values) == 0 {
		return nil
	}

	out := make(map[string]*Example, len(values))
	for i, v := range values {
		if m, ok := v.(map[string]any); ok && len(omit) > 0 {
			trimmed := make(map[string]any, len(m))
			for k, val := range m {
				if !slices.Contains(omit, k) {
					trimmed[k] = val
				}
			}
			v = trimmed
		}
		out[fmt.Sprintf("example%d", i+1)] = &Example{Value: v}
	}
	return out
}

func (b *builder) depictResponses(method, path string, ep *routing.Endpoint) (map[string]*Response, error) {
	ctx := b.context(schema.DirectionOut, method, path)
	label := operationLabel(method, path)
	responses := make(map[string]*Response)

	for _, variant := range []routing.Variant{routing.VariantPositive, routing.VariantNegative} {
		declared := ep.Responses(variant)
		codes := 0
		for _, r := range declared {
			codes += len(r.StatusCodes)
		}
		for _, r := range declared {
			var (
				depicted *Schema
				examples map[string]*Example
			)
			if r.Schema != nil {
				if err := checkResponseRoot(r.Schema, ctx.Context); err != nil {
					return nil, err
				}
				var err error
				if depicted, err = walker.Walk(r.Schema, ctx, b.rules); err != nil {
					return nil, err
				}
				examples = liftExamples(depicted, nil)
			}

			for _, code := range r.StatusCodes {
				description := fmt.Sprintf("%s %s response", label, titleVariant(variant))
				if codes > 1 {
					description += " " + statusCode(code)
				}
				resp := &Response{Description: description}
				if depicted != nil {
					ref := b.makeRef(r.Schema, "response", depicted, naming.CleanID(description))
					mimes := r.MimeTypes
					if len(mimes) == 0 {
						mimes = []string{routing.MimeJSON}
					}
					resp.Content = make(map[string]*MediaType, len(mimes))
					for _, mime := range mimes {
						resp.Content[mime] = &MediaType{Schema: ref, Examples: examples}
					}
				}
				responses[statusCode(code)] = resp
			}
		}
	}
	return responses, nil
}

func titleVariant(v routing.Variant) string {
	if v == routing.VariantNegative {
		return "Negative"
	}
	return "Positive"
}
