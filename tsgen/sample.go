package tsgen

import (
	"fmt"
	"reflect"

	"github.com/vitalvas/zodoc/schema"
)

// inferOutput types the result of a transformation by running it against
// samples of its input type. The first sample the transformation accepts
// decides the type.
func (ctx Context) inferOutput(node *schema.Node, input Type) Type {
	var err error
	for _, sample := range makeSamples(input) {
		var out any
		if out, err = applySafely(node, sample); err != nil {
			continue
		}
		if t, ok := classify(out); ok {
			return t
		}
		break
	}
	ctx.logger.Warn("cannot determine the transformation output type, typing it as any",
		"method", ctx.Method, "path", ctx.Path, "error", err)
	return KeywordAny
}

func makeSamples(t Type) []any {
	switch v := t.(type) {
	case Keyword:
		switch v {
		case KeywordString:
			return []any{"", "0"}
		case KeywordNumber:
			return []any{0.0, 1.0}
		case KeywordBigInt:
			return []any{int64(0), int64(1)}
		case KeywordBoolean:
			return []any{false, true}
		case KeywordObject:
			return []any{map[string]any{}}
		}
	case Literal:
		return []any{v.Value}
	case Object:
		return []any{map[string]any{}}
	case Array, Tuple:
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

// classify maps a runtime value to the keyword its JavaScript counterpart
// would report with typeof.
func classify(v any) (Type, bool) {
	if v == nil {
		return KeywordUndefined, true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return KeywordString, true
	case reflect.Bool:
		return KeywordBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KeywordNumber, true
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array, reflect.Pointer:
		return KeywordObject, true
	}
	return nil, false
}
