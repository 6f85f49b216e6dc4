// Package schema provides the immutable validation-schema tree consumed by
// the documentation and integration generators.
//
// A tree is built from constructors and modifiers; every modifier returns a
// new node:
//
//	user := schema.Object(
//		schema.Prop("id", schema.String().UUID().Describe("user id")),
//		schema.Prop("name", schema.String().MinLength(1)),
//		schema.Prop("avatar", schema.String().URL().Optional()),
//	)
//
// Every node belongs to exactly one Kind of a closed set. Wrapper kinds have
// a single child (Inner), composite kinds an ordered list of children, and
// Lazy nodes resolve their target on first use, which allows recursion:
//
//	var tree *schema.Node
//	tree = schema.Object(
//		schema.Prop("children", schema.Array(schema.Lazy(func() *schema.Node { return tree }))),
//	)
//
// Upload, File, DateIn, DateOut and Raw are valid in one direction only; the
// generators reject them on the other side.
package schema
