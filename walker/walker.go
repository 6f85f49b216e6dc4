// Package walker implements the recursive dispatch shared by the
// documentation and integration generators.
//
// A generator supplies a rule table mapping every schema kind to a rule. Walk
// looks up the rule for a node, hands it a next continuation bound to the
// same context and table, then lets the Each hook merge cross-cutting
// annotations into the result. Kinds without a rule go to Missing, which is
// fatal unless the caller overrides it.
package walker

import (
	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/schema"
)

// Context is the part of the walk context every generator carries.
type Context struct {
	Direction schema.Direction
	Path      string
	Method    string
}

// Base implements Contextual.
func (c Context) Base() Context { return c }

// IsResponse reports whether the walk depicts the output side.
func (c Context) IsResponse() bool { return c.Direction == schema.DirectionOut }

// Location describes the context for error reporting.
func (c Context) Location() apierrors.Location {
	return apierrors.Location{Method: c.Method, Path: c.Path, Direction: c.Direction.String()}
}

// Contextual is implemented by generator specific contexts that embed Context.
type Contextual interface {
	Base() Context
}

// Next depicts a child node with the current context and rule table.
type Next[U any] func(node *schema.Node) (U, error)

// Rule depicts a node of one kind.
type Rule[U any, C Contextual] func(node *schema.Node, ctx C, next Next[U]) (U, error)

// EachRule receives the result of the kind rule and returns it with the
// annotations shared by all kinds merged in.
type EachRule[U any, C Contextual] func(node *schema.Node, prev U, ctx C) (U, error)

// MissingRule handles a node that has no rule.
type MissingRule[U any, C Contextual] func(node *schema.Node, ctx C) (U, error)

// Rules is a rule table.
type Rules[U any, C Contextual] struct {
	// Kinds holds one rule per built-in kind.
	Kinds map[schema.Kind]Rule[U, C]

	// Brands holds rules for branded nodes, consulted before Kinds.
	Brands map[string]Rule[U, C]

	Each    EachRule[U, C]
	Missing MissingRule[U, C]
}

func (r *Rules[U, C]) lookup(node *schema.Node) Rule[U, C] {
	if brand := node.Brand(); brand != "" {
		if rule, ok := r.Brands[brand]; ok {
			return rule
		}
	}
	return r.Kinds[node.Kind()]
}

// Walk depicts node using the rule table.
func Walk[U any, C Contextual](node *schema.Node, ctx C, rules *Rules[U, C]) (U, error) {
	next := func(child *schema.Node) (U, error) {
		return Walk(child, ctx, rules)
	}

	var (
		result U
		err    error
	)
	if rule := rules.lookup(node); rule != nil {
		result, err = rule(node, ctx, next)
	} else if rules.Missing != nil {
		result, err = rules.Missing(node, ctx)
	} else {
		err = Unsupported(node, ctx.Base())
	}
	if err != nil {
		return result, err
	}

	if rules.Each != nil {
		return rules.Each(node, result, ctx)
	}
	return result, nil
}

// Unsupported returns the error for a node no rule can handle.
func Unsupported(node *schema.Node, ctx Context) error {
	return &apierrors.UnsupportedKindError{
		Location:    ctx.Location(),
		Kind:        node.Kind().String(),
		Description: node.Description(),
	}
}

// DirectionViolation returns the error for a direction restricted kind used
// on the wrong side.
func DirectionViolation(node *schema.Node, ctx Context, message string) error {
	return &apierrors.DirectionError{
		Location: ctx.Location(),
		Kind:     node.Kind().String(),
		Message:  message,
	}
}
