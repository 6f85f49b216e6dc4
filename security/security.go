// Package security describes endpoint authentication requirements as a
// logical tree of atomic schemes.
//
//	security.Or(
//		security.And(security.Header("x-api-key"), security.Input("token")),
//		security.Bearer("JWT"),
//	)
//
// means "API key header together with a token input, or a bearer token".
package security

// Type is the kind of an atomic security scheme.
type Type string

const (
	TypeBasic  Type = "basic"
	TypeBearer Type = "bearer"
	TypeInput  Type = "input"
	TypeHeader Type = "header"
	TypeCookie Type = "cookie"
	TypeOpenID Type = "openid"
	TypeOAuth2 Type = "oauth2"
)

// Flow is an OAuth2 flow.
type Flow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           map[string]string
}

// Flows lists the OAuth2 flows a scheme supports.
type Flows struct {
	Implicit          *Flow
	Password          *Flow
	ClientCredentials *Flow
	AuthorizationCode *Flow
}

// Scheme is an atomic security requirement.
type Scheme struct {
	Type Type

	// Name of the input property, header or cookie carrying the credential.
	Name string

	// Format hints the bearer token format, e.g. "JWT".
	Format string

	// URL is the OpenID Connect discovery URL.
	URL string

	Flows *Flows
}

// Expr is a node of the security tree: a Scheme, an And or an Or.
type Expr interface {
	dnf() [][]Scheme
}

func (s Scheme) dnf() [][]Scheme { return [][]Scheme{{s}} }

type and []Expr

func (a and) dnf() [][]Scheme {
	result := [][]Scheme{{}}
	for _, expr := range a {
		var next [][]Scheme
		for _, left := range result {
			for _, right := range expr.dnf() {
				combined := make([]Scheme, 0, len(left)+len(right))
				combined = append(combined, left...)
				combined = append(combined, right...)
				next = append(next, combined)
			}
		}
		result = next
	}
	return result
}

type or []Expr

func (o or) dnf() [][]Scheme {
	var result [][]Scheme
	for _, expr := range o {
		result = append(result, expr.dnf()...)
	}
	return result
}

// And requires every expression.
func And(exprs ...Expr) Expr { return and(exprs) }

// Or requires any of the expressions.
func Or(exprs ...Expr) Expr { return or(exprs) }

// Alternatives flattens the tree into alternatives, each of them a set of
// schemes that must all be satisfied. A nil tree has no alternatives.
func Alternatives(expr Expr) [][]Scheme {
	if expr == nil {
		return nil
	}
	var out [][]Scheme
	for _, alt := range expr.dnf() {
		if len(alt) > 0 {
			out = append(out, alt)
		}
	}
	return out
}

func Basic() Scheme               { return Scheme{Type: TypeBasic} }
func Bearer(format string) Scheme { return Scheme{Type: TypeBearer, Format: format} }
func Input(name string) Scheme    { return Scheme{Type: TypeInput, Name: name} }
func Header(name string) Scheme   { return Scheme{Type: TypeHeader, Name: name} }
func Cookie(name string) Scheme   { return Scheme{Type: TypeCookie, Name: name} }
func OpenID(url string) Scheme    { return Scheme{Type: TypeOpenID, URL: url} }
func OAuth2(flows *Flows) Scheme  { return Scheme{Type: TypeOAuth2, Flows: flows} }
