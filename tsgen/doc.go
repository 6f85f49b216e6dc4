// Package tsgen generates TypeScript types and a client scaffold from a
// routing tree of schema-described endpoints.
//
// # Generating a Client
//
//	f, err := tsgen.NewIntegration(tsgen.Config{
//		ClientName: "UserClient",
//		ServerURL:  "https://api.example.com",
//	}).Build(routes)
//	if err != nil {
//		return err
//	}
//	os.WriteFile("client.ts", []byte(f.String()), 0o644)
//
// For every method and path the file declares <Id>Input, one
// <Id>PositiveVariant<n> and <Id>NegativeVariant<n> per response, status
// code dictionaries and the <Id>Response union, where <Id> is derived from
// method and path ("get /v1/user/:id" becomes GetV1UserId). The Path,
// Method and MethodPath unions and the Input and Response interfaces keyed
// by "method path" tie them together for the client class.
//
// VariantTypes leaves out the endpoint constants, the client class and the
// usage example.
//
// # Optional Properties
//
// Config.Optional combines OptionalQuestionMark ("limit?: number") and
// OptionalUndefined ("limit: number | undefined").
//
// # Recursive Schemas
//
// Every schema.Lazy node becomes a type alias named Type1, Type2, and so on.
// Aliases are keyed by node identity: two sibling lazy nodes with the same
// shape still get separate aliases. Inside its own expansion, a lazy node
// with the shape of an enclosing one refers to the enclosing alias.
package tsgen
