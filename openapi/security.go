package openapi

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vitalvas/zodoc/routing"
	"github.com/vitalvas/zodoc/security"
)

// depictScheme converts an atomic requirement into a Security Scheme Object.
// Input keys are documented as query API keys, with a note when the body
// carries them as well or instead.
func depictScheme(s security.Scheme, sources []InputSource) *SecurityScheme {
	switch s.Type {
	case security.TypeBasic:
		return &SecurityScheme{Type: "http", Scheme: "basic"}
	case security.TypeBearer:
		return &SecurityScheme{Type: "http", Scheme: "bearer", BearerFormat: s.Format}
	case security.TypeHeader:
		return &SecurityScheme{Type: "apiKey", In: "header", Name: s.Name}
	case security.TypeCookie:
		return &SecurityScheme{Type: "apiKey", In: "cookie", Name: s.Name}
	case security.TypeOpenID:
		return &SecurityScheme{Type: "openIdConnect", OpenIDConnectURL: s.URL}
	case security.TypeOAuth2:
		return &SecurityScheme{Type: "oauth2", Flows: depictFlows(s.Flows)}
	}

	scheme := &SecurityScheme{Type: "apiKey", In: "query", Name: s.Name}
	if hasSource(sources, SourceBody) {
		if hasSource(sources, SourceQuery) {
			scheme.XInAlternative = "body"
			scheme.Description = fmt.Sprintf("%s CAN also be supplied within the request body", s.Name)
		} else {
			scheme.XInActual = "body"
			scheme.Description = fmt.Sprintf("%s MUST be supplied within the request body instead of query", s.Name)
		}
	}
	return scheme
}

func depictFlows(flows *security.Flows) *OAuthFlows {
	if flows == nil {
		return &OAuthFlows{}
	}
	return &OAuthFlows{
		Implicit:          depictFlow(flows.Implicit),
		Password:          depictFlow(flows.Password),
		ClientCredentials: depictFlow(flows.ClientCredentials),
		AuthorizationCode: depictFlow(flows.AuthorizationCode),
	}
}

func depictFlow(f *security.Flow) *OAuthFlow {
	if f == nil {
		return nil
	}
	scopes := f.Scopes
	if scopes == nil {
		scopes = map[string]string{}
	}
	return &OAuthFlow{
		AuthorizationURL: f.AuthorizationURL,
		TokenURL:         f.TokenURL,
		RefreshURL:       f.RefreshURL,
		Scopes:           scopes,
	}
}

// schemeName returns the component name of scheme. Structurally equal
// schemes share one name; new ones are numbered per type, e.g. APIKEY_1.
func (b *builder) schemeName(scheme *SecurityScheme) string {
	for _, name := range b.securityOrder {
		if reflect.DeepEqual(b.securityByName[name], scheme) {
			return name
		}
	}
	name := b.securityNames.Next(strings.ToUpper(scheme.Type))
	b.securityOrder = append(b.securityOrder, name)
	b.securityByName[name] = scheme
	return name
}

// depictSecurity lists the alternatives of the endpoint security tree. Only
// OAuth2 and OpenID Connect requirements carry the endpoint scopes.
func (b *builder) depictSecurity(ep *routing.Endpoint, sources []InputSource) []SecurityRequirement {
	var reqs []SecurityRequirement
	for _, alt := range security.Alternatives(ep.Security()) {
		req := make(SecurityRequirement, len(alt))
		for _, s := range alt {
			scheme := depictScheme(s, sources)
			scopes := []string{}
			if scheme.Type == "oauth2" || scheme.Type == "openIdConnect" {
				scopes = append(scopes, ep.Scopes()...)
			}
			req[b.schemeName(scheme)] = scopes
		}
		reqs = append(reqs, req)
	}
	return reqs
}
