package openapi

import (
	"slices"

	"github.com/goccy/go-json"
)

// Document is a generated OpenAPI document. The OpenAPI field carries the
// exact version string, "3.0.3" or "3.1.0"; the rest of the model is shared
// and version specific keywords live on Schema.
type Document struct {
	OpenAPI    string                `json:"openapi"`
	Info       Info                  `json:"info"`
	Servers    []Server              `json:"servers,omitempty"`
	Paths      map[string]*PathItem  `json:"paths"`
	Components *Components           `json:"components,omitempty"`
	Tags       []Tag                 `json:"tags,omitempty"`
	Security   []SecurityRequirement `json:"security,omitempty"`
}

// Info is filled from Config.Title, Config.Version and Config.Description.
type Info struct {
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Server is one entry of Config.ServerURLs.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem groups the operations registered under one OpenAPI path.
type PathItem struct {
	Get     *Operation `json:"get,omitempty"`
	Put     *Operation `json:"put,omitempty"`
	Post    *Operation `json:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty"`
	Options *Operation `json:"options,omitempty"`
	Head    *Operation `json:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty"`
}

// Operations returns the operations of the path item in a fixed method order.
func (p *PathItem) Operations() []*Operation {
	var ops []*Operation
	for _, op := range []*Operation{p.Get, p.Put, p.Post, p.Delete, p.Options, p.Head, p.Patch, p.Trace} {
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// Operation is the depiction of one routing endpoint for one method.
type Operation struct {
	Tags        []string              `json:"tags,omitempty"`
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	OperationID string                `json:"operationId,omitempty"`
	Parameters  []*Parameter          `json:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Responses   map[string]*Response  `json:"responses"`
	Deprecated  bool                  `json:"deprecated,omitempty"`
	Security    []SecurityRequirement `json:"security,omitempty"`
}

// Parameter is an input field placed outside the body. In is one of
// "path", "query" or "header".
type Parameter struct {
	Name        string              `json:"name"`
	In          string              `json:"in"`
	Description string              `json:"description,omitempty"`
	Required    bool                `json:"required"`
	Deprecated  bool                `json:"deprecated,omitempty"`
	Schema      *Schema             `json:"schema,omitempty"`
	Examples    map[string]*Example `json:"examples,omitempty"`
}

// RequestBody holds the input fields left after parameters are extracted.
type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content"`
}

// Response is one status code of a positive or negative response. The
// description is always emitted, even when empty.
type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// MediaType pairs a depicted schema with the examples lifted out of it.
type MediaType struct {
	Schema   *Schema             `json:"schema,omitempty"`
	Examples map[string]*Example `json:"examples,omitempty"`
}

// SchemaType is the "type" keyword. OpenAPI 3.1 accepts a list of types,
// which is how nullable schemas are written there; 3.0 only uses one.
type SchemaType struct {
	value []string
}

// Types creates a SchemaType. A single type encodes as a string, several as
// an array (e.g., ["string", "null"]).
func Types(t ...string) *SchemaType {
	return &SchemaType{value: t}
}

// Values returns the underlying type values.
func (st *SchemaType) Values() []string {
	if st == nil {
		return nil
	}
	return st.value
}

// First returns the first type, or an empty string.
func (st *SchemaType) First() string {
	if st == nil || len(st.value) == 0 {
		return ""
	}
	return st.value[0]
}

// Has reports whether t is one of the types.
func (st *SchemaType) Has(t string) bool {
	return slices.Contains(st.Values(), t)
}

// MarshalJSON writes a lone type as a plain string.
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.value) == 1 {
		return json.Marshal(st.value[0])
	}
	return json.Marshal(st.value)
}

// UnmarshalJSON accepts both the string and the list form.
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		st.value = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	st.value = arr
	return nil
}

// Value wraps a keyword value that must be emitted even when it is a zero
// value, such as a const of false or a default of 0.
type Value struct {
	Data any
}

// ValueOf wraps v.
func ValueOf(v any) *Value { return &Value{Data: v} }

// MarshalJSON encodes the wrapped value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Data)
}

// UnmarshalJSON decodes into the wrapped value.
func (v *Value) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &v.Data)
}

// Schema is a depicted schema. Which keywords get set depends on the target
// version. 3.0 output relies on Nullable, Example and boolean exclusive
// bounds, while 3.1 output uses type lists, Examples, Const, PrefixItems and
// numeric exclusive bounds.
type Schema struct {
	Ref string `json:"$ref,omitempty"`

	Type     *SchemaType `json:"type,omitempty"`
	Format   string      `json:"format,omitempty"`
	Nullable bool        `json:"nullable,omitempty"`

	// Annotations.
	Description string `json:"description,omitempty"`
	Default     *Value `json:"default,omitempty"`
	Example     *Value `json:"example,omitempty"`
	Examples    []any  `json:"examples,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`

	// Exclusive bounds hold a bool for 3.0 and the bound itself for 3.1.
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *Value   `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *Value   `json:"exclusiveMaximum,omitempty"`

	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Tuples use PrefixItems in 3.1. For 3.0 Items is a oneOf of the members.
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`

	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Required             []string           `json:"required,omitempty"`

	Enum  []any  `json:"enum,omitempty"`
	Const *Value `json:"const,omitempty"`

	// Unions, intersections and never.
	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	Discriminator *Discriminator `json:"discriminator,omitempty"`
	ExternalDocs  *ExternalDocs  `json:"externalDocs,omitempty"`
}

// IsRef reports whether the schema is a reference object.
func (s *Schema) IsRef() bool { return s != nil && s.Ref != "" }

// Components collects the named schemas produced by the composition mode and
// by recursive schemas, plus the security schemes.
type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// Tag describes one entry of Config.Tags.
type Tag struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`
}

// SecurityRequirement maps a scheme name to its OAuth2 scopes. Schemes
// without scopes map to an empty list.
type SecurityRequirement map[string][]string

// ExternalDocs links a tag to documentation elsewhere.
type ExternalDocs struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// Example is one named example of a parameter or media type.
type Example struct {
	Value any `json:"value"`
}

// Discriminator names the property that selects a discriminated union option.
type Discriminator struct {
	PropertyName string `json:"propertyName"`
}

// SecurityScheme is a depicted security entry. API keys that are really
// read from the request body are emitted as query keys, with XInActual and
// XInAlternative recording where they come from.
type SecurityScheme struct {
	Type             string      `json:"type"`
	Description      string      `json:"description,omitempty"`
	Name             string      `json:"name,omitempty"`
	In               string      `json:"in,omitempty"`
	Scheme           string      `json:"scheme,omitempty"`
	BearerFormat     string      `json:"bearerFormat,omitempty"`
	Flows            *OAuthFlows `json:"flows,omitempty"`
	OpenIDConnectURL string      `json:"openIdConnectUrl,omitempty"`
	XInActual        string      `json:"x-in-actual,omitempty"`
	XInAlternative   string      `json:"x-in-alternative,omitempty"`
}

// OAuthFlows holds the flows of an OAuth2 scheme. Only the configured ones
// are set.
type OAuthFlows struct {
	Implicit          *OAuthFlow `json:"implicit,omitempty"`
	Password          *OAuthFlow `json:"password,omitempty"`
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty"`
}

// OAuthFlow is one OAuth2 flow. Scopes is always written, possibly empty.
type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	RefreshURL       string            `json:"refreshUrl,omitempty"`
	Scopes           map[string]string `json:"scopes"`
}
