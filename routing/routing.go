// Package routing provides the endpoint tree consumed by the documentation
// and integration generators.
//
//	routes := routing.Routing{
//		"v1": routing.Routing{
//			"user/:id": routing.NewEndpoint("get").
//				Input(schema.Object(schema.Prop("id", schema.String()))).
//				Output(userSchema).
//				Endpoint(),
//		},
//	}
//
// Walk visits every (method, path, endpoint) triple in a stable order.
package routing

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Route is an *Endpoint, a nested Routing or a DependsOnMethod.
type Route interface {
	route()
}

// Routing maps path segments to routes.
type Routing map[string]Route

// DependsOnMethod assigns different endpoints to the methods of one path.
type DependsOnMethod map[string]*Endpoint

func (*Endpoint) route()       {}
func (Routing) route()         {}
func (DependsOnMethod) route() {}

// WalkFunc is called for every method of every endpoint.
type WalkFunc func(method, path string, ep *Endpoint) error

// SkipRouting can be returned by a WalkFunc to skip the remaining methods of
// the current endpoint.
var SkipRouting = errors.New("skip this endpoint")

var pathParamRegexp = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// Walk visits the routing tree depth first, in lexical key order.
func Walk(r Routing, fn WalkFunc) error {
	return walk(r, "", fn)
}

func walk(r Routing, parent string, fn WalkFunc) error {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		path := joinPath(parent, key)
		switch route := r[key].(type) {
		case *Endpoint:
			if err := walkEndpoint(route.Methods(), path, route, fn); err != nil {
				return err
			}
		case Routing:
			if err := walk(route, path, fn); err != nil {
				return err
			}
		case DependsOnMethod:
			methods := make([]string, 0, len(route))
			for m := range route {
				methods = append(methods, m)
			}
			slices.Sort(methods)
			for _, m := range methods {
				if err := walkEndpoint([]string{strings.ToLower(m)}, path, route[m], fn); err != nil {
					return err
				}
			}
		case nil:
		default:
			return fmt.Errorf("routing: unsupported route %T at %s", route, path)
		}
	}
	return nil
}

func walkEndpoint(methods []string, path string, ep *Endpoint, fn WalkFunc) error {
	for _, method := range methods {
		err := fn(method, path, ep)
		if errors.Is(err, SkipRouting) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, segment string) string {
	segment = strings.Trim(segment, "/")
	if segment == "" {
		if parent == "" {
			return "/"
		}
		return parent
	}
	return strings.TrimSuffix(parent, "/") + "/" + segment
}

// PathParams returns the names of the :param placeholders of a path.
func PathParams(path string) []string {
	matches := pathParamRegexp.FindAllStringSubmatch(path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// OpenAPIPath rewrites :param placeholders into the {param} form.
func OpenAPIPath(path string) string {
	return pathParamRegexp.ReplaceAllString(path, "{$1}")
}
