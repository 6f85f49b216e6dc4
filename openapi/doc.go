// Package openapi generates OpenAPI 3.0 and 3.1 documents from a routing
// tree of schema-described endpoints.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://spec.openapis.org/oas/v3.0.3
// See: https://json-schema.org/draft/2020-12/json-schema-validation
//
// # Building a Document
//
//	routes := routing.Routing{
//		"v1": routing.Routing{
//			"user/:id": routing.NewEndpoint("get").
//				Input(schema.Object(
//					schema.Prop("id", schema.String().Describe("user id")),
//				)).
//				Output(schema.Object(
//					schema.Prop("id", schema.Number().Int()),
//					schema.Prop("name", schema.String()),
//				)).
//				Tags("users").
//				Endpoint(),
//		},
//	}
//
//	doc, err := openapi.NewDocumentation(openapi.Config{
//		Title:      "Example API",
//		Version:    "1.0.0",
//		ServerURLs: []string{"https://example.com"},
//	}).Build(routes)
//	if err != nil {
//		return err
//	}
//	data, err := doc.YAML()
//
// # Versions
//
// Config.OpenAPIVersion selects the dialect. Version31 (the default) uses
// type arrays for nullable values, numeric exclusive bounds, "examples",
// "const" and "prefixItems". Version30 uses "nullable", boolean exclusive
// bounds, a single "example", single-value enums for literals and
// "items.oneOf" for tuples.
//
// # Parameters and Bodies
//
// The input schema of an endpoint is reduced to an object first: union
// members contribute optional properties, intersections are merged and
// refinements are transparent. Transformations at the top level are
// rejected with apierrors.TransformError.
//
// Each property becomes a path parameter when the path declares it, a
// header parameter when it starts with "x-" (or names a header security
// scheme) and the headers source is enabled, and a query parameter
// otherwise, depending on the input sources of the method:
//
//	get, delete:  query, params
//	post:         body, params, files
//	put, patch:   body, params
//
// Methods reading the body also get a request body carrying the whole input
// minus the path parameters.
//
// # Composition
//
// With CompositionComponents, request bodies, responses and parameters are
// moved to components/schemas and referenced. Recursive schemas built with
// schema.Lazy are always placed in components, named Schema1, Schema2, and
// so on.
//
// # Custom Brands
//
// Config.Brands maps brand names to rules that take precedence over the
// built-in ones:
//
//	cfg.Brands = map[string]openapi.Rule{
//		"money": func(_ *schema.Node, _ openapi.Context, _ openapi.Next) (*openapi.Schema, error) {
//			return &openapi.Schema{Type: openapi.Types("string"), Format: "decimal"}, nil
//		},
//	}
package openapi
