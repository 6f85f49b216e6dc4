package routing

import (
	"net/http"
	"slices"
	"strings"

	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/security"
	"github.com/vitalvas/zodoc/walker"
)

// Common MIME types.
const (
	MimeJSON      = "application/json"
	MimeMultipart = "multipart/form-data"
	MimeRaw       = "application/octet-stream"
)

// Variant selects the positive (success) or negative (error) responses.
type Variant string

const (
	VariantPositive Variant = "positive"
	VariantNegative Variant = "negative"
)

// Response is one response declaration of an endpoint.
type Response struct {
	Schema      *schema.Node
	StatusCodes []int
	MimeTypes   []string
}

// Endpoint exposes the schemas and metadata of one handler. It is read only;
// use NewEndpoint to create one.
type Endpoint struct {
	methods        []string
	input          *schema.Node
	output         *schema.Node
	positive       []Response
	negative       []Response
	inputMimeTypes []string
	security       security.Expr
	scopes         []string
	tags           []string
	operationID    string
	summary        string
	description    string
	deprecated     bool
}

// Methods returns the lower case HTTP methods the endpoint handles.
func (e *Endpoint) Methods() []string { return e.methods }

// Schema returns the input or output schema.
func (e *Endpoint) Schema(dir schema.Direction) *schema.Node {
	if dir == schema.DirectionOut {
		return e.output
	}
	return e.input
}

// Responses returns the response declarations of the given variant.
func (e *Endpoint) Responses(v Variant) []Response {
	if v == VariantNegative {
		return e.negative
	}
	return e.positive
}

// MimeTypes returns the content types accepted for the input, or produced by
// the positive responses for the output.
func (e *Endpoint) MimeTypes(dir schema.Direction) []string {
	if dir == schema.DirectionOut {
		var out []string
		for _, r := range e.positive {
			for _, m := range r.MimeTypes {
				if !slices.Contains(out, m) {
					out = append(out, m)
				}
			}
		}
		return out
	}
	return e.inputMimeTypes
}

// Security returns the authentication requirements, or nil.
func (e *Endpoint) Security() security.Expr { return e.security }

// Scopes returns the OAuth2 and OpenID scopes the endpoint requires.
func (e *Endpoint) Scopes() []string { return e.scopes }

func (e *Endpoint) Tags() []string { return e.tags }

// OperationID returns the operation id hint, empty when not set.
func (e *Endpoint) OperationID() string { return e.operationID }

func (e *Endpoint) Summary() string     { return e.summary }
func (e *Endpoint) Description() string { return e.description }
func (e *Endpoint) IsDeprecated() bool  { return e.deprecated }

// EndpointBuilder provides a fluent API for declaring an endpoint.
type EndpointBuilder struct {
	ep *Endpoint
}

// NewEndpoint starts declaring an endpoint handling the given methods.
// Without methods the endpoint handles GET.
func NewEndpoint(methods ...string) *EndpointBuilder {
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}
	lower := make([]string, 0, len(methods))
	for _, m := range methods {
		lower = append(lower, strings.ToLower(m))
	}
	return &EndpointBuilder{ep: &Endpoint{methods: lower}}
}

// Input sets the input schema.
func (b *EndpointBuilder) Input(s *schema.Node) *EndpointBuilder {
	b.ep.input = s
	return b
}

// Output sets the output schema. Unless Positive is used, the output is
// wrapped into the default success envelope.
func (b *EndpointBuilder) Output(s *schema.Node) *EndpointBuilder {
	b.ep.output = s
	return b
}

// Positive declares the success responses explicitly.
func (b *EndpointBuilder) Positive(responses ...Response) *EndpointBuilder {
	b.ep.positive = append(b.ep.positive, responses...)
	return b
}

// Negative declares the error responses explicitly.
func (b *EndpointBuilder) Negative(responses ...Response) *EndpointBuilder {
	b.ep.negative = append(b.ep.negative, responses...)
	return b
}

// InputMimeTypes overrides the content types accepted for the input.
func (b *EndpointBuilder) InputMimeTypes(types ...string) *EndpointBuilder {
	b.ep.inputMimeTypes = types
	return b
}

func (b *EndpointBuilder) Security(expr security.Expr) *EndpointBuilder {
	b.ep.security = expr
	return b
}

func (b *EndpointBuilder) Scopes(scopes ...string) *EndpointBuilder {
	b.ep.scopes = append(b.ep.scopes, scopes...)
	return b
}

func (b *EndpointBuilder) Tags(tags ...string) *EndpointBuilder {
	b.ep.tags = append(b.ep.tags, tags...)
	return b
}

func (b *EndpointBuilder) OperationID(id string) *EndpointBuilder {
	b.ep.operationID = id
	return b
}

// Summary sets the short description.
func (b *EndpointBuilder) Summary(s string) *EndpointBuilder {
	b.ep.summary = s
	return b
}

func (b *EndpointBuilder) Description(d string) *EndpointBuilder {
	b.ep.description = d
	return b
}

func (b *EndpointBuilder) Deprecated() *EndpointBuilder {
	b.ep.deprecated = true
	return b
}

// Endpoint completes the declaration. Missing schemas default to empty
// objects, missing responses to the default envelope.
func (b *EndpointBuilder) Endpoint() *Endpoint {
	ep := *b.ep
	if ep.input == nil {
		ep.input = schema.Object()
	}
	if ep.output == nil {
		ep.output = schema.Object()
	}
	if len(ep.positive) == 0 {
		ep.positive = []Response{DefaultPositive(ep.output)}
	}
	if len(ep.negative) == 0 {
		ep.negative = []Response{DefaultNegative()}
	}
	if len(ep.inputMimeTypes) == 0 {
		ep.inputMimeTypes = []string{DefaultInputMimeType(ep.input)}
	}
	return &ep
}

// DefaultPositive wraps output into the success envelope
// {"status": "success", "data": output}.
func DefaultPositive(output *schema.Node) Response {
	return Response{
		Schema: schema.Object(
			schema.Prop("status", schema.Literal("success")),
			schema.Prop("data", output),
		),
		StatusCodes: []int{http.StatusOK},
		MimeTypes:   []string{MimeJSON},
	}
}

// DefaultNegative is the error envelope
// {"status": "error", "error": {"message": string}}.
func DefaultNegative() Response {
	return Response{
		Schema: schema.Object(
			schema.Prop("status", schema.Literal("error")),
			schema.Prop("error", schema.Object(schema.Prop("message", schema.String()))),
		).Example(map[string]any{
			"status": "error",
			"error":  map[string]any{"message": "Sample error message"},
		}),
		StatusCodes: []int{http.StatusBadRequest},
		MimeTypes:   []string{MimeJSON},
	}
}

// DefaultInputMimeType derives the request content type from the input
// schema: multipart for uploads, raw binary for raw bodies, JSON otherwise.
func DefaultInputMimeType(input *schema.Node) string {
	switch {
	case walker.HasNested(input, walker.IsKind(schema.KindUpload), 0):
		return MimeMultipart
	case walker.HasNested(input, walker.IsKind(schema.KindRaw), 0):
		return MimeRaw
	}
	return MimeJSON
}
