package openapi

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/vitalvas/zodoc/schema"
)

// inferOutput depicts the result of a transformation by running it against
// samples of its input. The first sample the transformation accepts decides
// the type. Outputs that are not scalars, and transformations that reject
// every sample, are depicted as any.
func (ctx Context) inferOutput(node *schema.Node, input *Schema) *Schema {
	var err error
	for _, sample := range makeSamples(input) {
		var out any
		if out, err = applySafely(node, sample); err != nil {
			continue
		}
		if t, ok := scalarType(out); ok {
			return &Schema{Type: Types(t)}
		}
		break
	}
	ctx.logger.Warn("cannot determine the transformation output type, depicting it as any",
		"method", ctx.Method, "path", ctx.Path, "error", err)
	return &Schema{Format: "any"}
}

// sampleUUID is a stable name-based UUID, so that generated documents do not
// change between runs.
var sampleUUID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vitalvas/zodoc")).String()

// makeSamples produces values that satisfy the input schema well enough for
// a transformation to run on them, most specific first.
func makeSamples(input *Schema) []any {
	switch input.Type.First() {
	case "string":
		samples := []any{"", "0"}
		switch input.Format {
		case "uuid":
			return append([]any{sampleUUID}, samples...)
		case "date-time":
			return append([]any{time.Unix(0, 0).UTC().Format(time.RFC3339)}, samples...)
		}
		return samples
	case "integer":
		return []any{0, 1}
	case "number":
		return []any{0.0, 1.0}
	case "boolean":
		return []any{false, true}
	case "object":
		return []any{map[string]any{}}
	case "array":
		return []any{[]any{}}
	}
	return []any{nil}
}

func applySafely(node *schema.Node, sample any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transformation panicked: %v", r)
		}
	}()
	return node.Apply(sample)
}

func scalarType(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return "string", true
	case reflect.Bool:
		return "boolean", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer", true
	case reflect.Float32, reflect.Float64:
		return "number", true
	}
	return "", false
}

// jsonType names the JSON type of a literal or enum value.
func jsonType(v any) string {
	if v == nil {
		return "null"
	}
	if t, ok := scalarType(v); ok {
		if t == "integer" {
			return "number"
		}
		return t
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "object"
}

func keyString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
