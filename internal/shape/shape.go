// Package shape computes structural keys for schema trees, so that
// structurally identical definitions can share one named fragment.
package shape

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"

	"github.com/vitalvas/zodoc/schema"
)

// maxLazyNesting bounds how many distinct lazy schemas one hash expands.
const maxLazyNesting = 64

// Hash identifies a schema by its shape. Transformation functions only
// contribute their effect type. The scope separates depictions of one schema
// that differ by context, such as input and output.
//
// Lazy schemas are expanded. A nested lazy whose target has the same shallow
// shape as a lazy already being expanded is encoded as a back reference to
// it, so getters that build a fresh node on every call still hash to the same
// key at every level of the recursion.
func Hash(n *schema.Node, scope string) uint64 {
	c := &canonicalizer{}
	data, err := json.Marshal([]any{scope, c.canonical(n)})
	if err != nil {
		// Values that cannot be encoded fall back to node identity.
		return xxh3.HashString(fmt.Sprintf("%s:%p", scope, n))
	}
	return xxh3.Hash(data)
}

// canonicalizer tracks the shallow signatures of the lazy schemas on the
// current expansion path. A nil canonicalizer leaves nested lazies opaque.
type canonicalizer struct {
	lazies []string
}

func (c *canonicalizer) lazy(n *schema.Node) map[string]any {
	out := map[string]any{"kind": n.Kind().String()}
	addMeta(out, n)
	if c == nil {
		return out
	}
	sig := shallowSignature(n)
	for i := len(c.lazies) - 1; i >= 0; i-- {
		if c.lazies[i] == sig {
			out["back"] = len(c.lazies) - 1 - i
			return out
		}
	}
	if len(c.lazies) >= maxLazyNesting {
		out["lazy"] = sig
		return out
	}
	c.lazies = append(c.lazies, sig)
	out["target"] = c.canonical(n.Resolve())
	c.lazies = c.lazies[:len(c.lazies)-1]
	return out
}

// shallowSignature encodes the target of a lazy schema with its own nested
// lazies left opaque.
func shallowSignature(n *schema.Node) string {
	var c *canonicalizer
	data, err := json.Marshal(c.canonical(n.Resolve()))
	if err != nil {
		return fmt.Sprintf("%p", n)
	}
	return string(data)
}

func (c *canonicalizer) canonical(n *schema.Node) map[string]any {
	if n == nil {
		return nil
	}
	if n.Kind() == schema.KindLazy {
		return c.lazy(n)
	}
	out := map[string]any{"kind": n.Kind().String()}

	addMeta(out, n)
	out["checks"] = n.Checks()

	switch n.Kind() {
	case schema.KindObject:
		fields := make([]any, 0, len(n.Fields()))
		for _, f := range n.Fields() {
			fields = append(fields, []any{f.Name, c.canonical(f.Schema)})
		}
		out["fields"] = fields
	case schema.KindTuple, schema.KindUnion, schema.KindDiscriminatedUnion, schema.KindIntersection:
		items := make([]any, 0, len(n.Items()))
		for _, item := range n.Items() {
			items = append(items, c.canonical(item))
		}
		out["items"] = items
		if n.Rest() != nil {
			out["rest"] = c.canonical(n.Rest())
		}
		if n.Discriminator() != "" {
			out["discriminator"] = n.Discriminator()
		}
	case schema.KindRecord:
		out["key"] = c.canonical(n.KeySchema())
		out["value"] = c.canonical(n.Inner())
	case schema.KindPipeline:
		out["in"] = c.canonical(n.In())
		out["out"] = c.canonical(n.Out())
	case schema.KindLiteral:
		out["literal"] = n.Literal()
	case schema.KindEnum:
		out["values"] = n.Values()
	case schema.KindDefault:
		out["default"] = n.DefaultValue()
	case schema.KindCatch:
		out["catch"] = n.CatchValue()
	case schema.KindEffect:
		out["effect"] = n.EffectType().String()
	case schema.KindFile:
		out["file"] = int(n.FileType())
	}
	if n.Kind() == schema.KindArray || n.Kind().IsWrapper() {
		out["inner"] = c.canonical(n.Inner())
	}
	return out
}

func addMeta(out map[string]any, n *schema.Node) {
	meta := n.Meta()
	if meta.Description != "" {
		out["description"] = meta.Description
	}
	if len(meta.Examples) > 0 {
		out["examples"] = meta.Examples
	}
	if meta.DefaultLabel != "" {
		out["label"] = meta.DefaultLabel
	}
	if meta.Brand != "" {
		out["brand"] = meta.Brand
	}
	if meta.Coerce {
		out["coerce"] = true
	}
	if meta.Deprecated {
		out["deprecated"] = true
	}
}
