package walker

import (
	"slices"

	"github.com/vitalvas/zodoc/schema"
)

// DefaultMaxDepth bounds HasNested when no explicit depth is given.
const DefaultMaxDepth = 64

// Children returns the direct children of node. Lazy nodes yield their
// resolved target.
func Children(node *schema.Node) []*schema.Node {
	switch node.Kind() {
	case schema.KindObject:
		out := make([]*schema.Node, 0, len(node.Fields()))
		for _, f := range node.Fields() {
			out = append(out, f.Schema)
		}
		return out
	case schema.KindTuple:
		out := append([]*schema.Node(nil), node.Items()...)
		if node.Rest() != nil {
			out = append(out, node.Rest())
		}
		return out
	case schema.KindUnion, schema.KindDiscriminatedUnion, schema.KindIntersection:
		return node.Items()
	case schema.KindRecord:
		return []*schema.Node{node.KeySchema(), node.Inner()}
	case schema.KindPipeline:
		return []*schema.Node{node.In(), node.Out()}
	case schema.KindLazy:
		return []*schema.Node{node.Resolve()}
	case schema.KindArray, schema.KindOptional, schema.KindNullable, schema.KindDefault,
		schema.KindCatch, schema.KindBranded, schema.KindEffect:
		return []*schema.Node{node.Inner()}
	}
	return nil
}

// HasNested reports whether node or any of its descendants satisfies cond.
// The search stops at maxDepth levels below node and answers false for
// anything deeper. A non-positive maxDepth means DefaultMaxDepth. Every lazy
// target is visited once, so recursive schemas terminate.
func HasNested(node *schema.Node, cond func(*schema.Node) bool, maxDepth int) bool {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	seen := make(map[*schema.Node]bool)

	var check func(n *schema.Node, depth int) bool
	check = func(n *schema.Node, depth int) bool {
		if n == nil || depth > maxDepth {
			return false
		}
		if cond(n) {
			return true
		}
		if n.Kind() == schema.KindLazy {
			if seen[n] {
				return false
			}
			seen[n] = true
		}
		for _, child := range Children(n) {
			if check(child, depth+1) {
				return true
			}
		}
		return false
	}

	return check(node, 0)
}

// IsKind returns a HasNested condition matching any of the given kinds.
func IsKind(kinds ...schema.Kind) func(*schema.Node) bool {
	return func(n *schema.Node) bool {
		return slices.Contains(kinds, n.Kind())
	}
}
