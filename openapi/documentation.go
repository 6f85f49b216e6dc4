package openapi

import (
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/internal/shape"
	"github.com/vitalvas/zodoc/logging"
	"github.com/vitalvas/zodoc/naming"
	"github.com/vitalvas/zodoc/registry"
	"github.com/vitalvas/zodoc/routing"
	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/walker"
)

const maxSummaryLength = 50

// Documentation generates OpenAPI documents from a routing tree.
type Documentation struct {
	cfg Config
}

// NewDocumentation creates a generator with the given configuration.
func NewDocumentation(cfg Config) *Documentation {
	return &Documentation{cfg: cfg}
}

// Build depicts every endpoint of the routing tree. Each call is
// independent; the generator itself holds no state between builds.
func (d *Documentation) Build(routes routing.Routing) (*Document, error) {
	if err := d.cfg.validate(); err != nil {
		return nil, err
	}
	b := newBuilder(d.cfg)
	if err := routing.Walk(routes, b.addEndpoint); err != nil {
		return nil, err
	}
	return b.document(), nil
}

// builder holds the state of a single build.
type builder struct {
	cfg     Config
	version Version
	rules   *walker.Rules[*Schema, Context]
	logger  logging.Logger

	refs           *registry.Registry[uint64, *Schema]
	componentNames *naming.Counter
	operationIDs   *naming.Counter
	userIDs        map[string]*routing.Endpoint
	securityNames  *naming.Counter
	securityOrder  []string
	securityByName map[string]*SecurityScheme

	paths map[string]*PathItem
}

func newBuilder(cfg Config) *builder {
	return &builder{
		cfg:            cfg,
		version:        cfg.openAPIVersion(),
		rules:          newRules(cfg.Brands),
		logger:         logging.OrNop(cfg.Logger).With("component", "openapi"),
		refs:           registry.New[uint64, *Schema]("Schema"),
		componentNames: naming.NewCounter(),
		operationIDs:   naming.NewCounter(),
		userIDs:        make(map[string]*routing.Endpoint),
		securityNames:  naming.NewCounter(),
		securityByName: make(map[string]*SecurityScheme),
		paths:          make(map[string]*PathItem),
	}
}

func (b *builder) context(dir schema.Direction, method, path string) Context {
	return Context{
		Context: walker.Context{Direction: dir, Method: method, Path: path},
		Version: b.version,
		refs:    b.refs,
		logger:  b.logger,
	}
}

func (b *builder) addEndpoint(method, path string, ep *routing.Endpoint) error {
	b.logger.Debug("depicting endpoint", "method", method, "path", path)
	sources := b.cfg.inputSources(method)

	id, err := b.operationID(method, path, ep)
	if err != nil {
		return err
	}
	op := &Operation{
		OperationID: id,
		Summary:     b.summary(ep),
		Description: ep.Description(),
		Tags:        slices.Clone(ep.Tags()),
		Deprecated:  ep.IsDeprecated(),
	}

	if op.Parameters, err = b.depictParameters(method, path, ep, sources); err != nil {
		return err
	}
	if hasSource(sources, SourceBody) {
		if op.RequestBody, err = b.depictRequestBody(method, path, ep); err != nil {
			return err
		}
	}
	if op.Responses, err = b.depictResponses(method, path, ep); err != nil {
		return err
	}
	op.Security = b.depictSecurity(ep, sources)

	openAPIPath := routing.OpenAPIPath(path)
	item, ok := b.paths[openAPIPath]
	if !ok {
		item = &PathItem{}
		b.paths[openAPIPath] = item
	}
	assignOperation(item, method, op)
	return nil
}

// operationID returns the endpoint hint or an id derived from method and
// path. A hint shared by two endpoints is a configuration error; the methods
// of one endpoint get numbered copies of its hint.
func (b *builder) operationID(method, path string, ep *routing.Endpoint) (string, error) {
	hint := ep.OperationID()
	if hint == "" {
		return b.operationIDs.Unique(naming.CleanID(method, path)), nil
	}
	if owner, ok := b.userIDs[hint]; ok && owner != ep {
		return "", &apierrors.ConfigError{
			Option:  "OperationID",
			Value:   hint,
			Message: fmt.Sprintf("duplicate operation id at %s %s", method, path),
		}
	}
	b.userIDs[hint] = ep
	return b.operationIDs.Unique(hint), nil
}

func (b *builder) summary(ep *routing.Endpoint) string {
	text := ep.Summary()
	if text == "" && b.cfg.SummaryFromDescription {
		text = ep.Description()
	}
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > maxSummaryLength {
		return string(runes[:maxSummaryLength-1]) + "…"
	}
	return string(runes)
}

// makeRef moves depicted into components when the composition asks for it.
// Identical schemas in the same scope share one component.
func (b *builder) makeRef(node *schema.Node, scope string, depicted *Schema, name string) *Schema {
	if b.cfg.composition() != CompositionComponents {
		return depicted
	}
	key := shape.Hash(node, scope)
	if e, ok := b.refs.Lookup(key); ok {
		return componentRef(e.Name)
	}
	name = b.refs.ReserveAs(key, b.componentNames.Unique(name))
	b.refs.Resolve(key, depicted)
	return componentRef(name)
}

func (b *builder) document() *Document {
	doc := &Document{
		OpenAPI: string(b.version),
		Info: Info{
			Title:       b.cfg.Title,
			Version:     b.cfg.Version,
			Description: b.cfg.Description,
		},
		Paths: b.paths,
	}
	for _, u := range b.cfg.ServerURLs {
		doc.Servers = append(doc.Servers, Server{URL: u})
	}

	comp := &Components{}
	for _, e := range b.refs.Entries() {
		if comp.Schemas == nil {
			comp.Schemas = make(map[string]*Schema)
		}
		comp.Schemas[e.Name] = e.Value
	}
	if len(b.securityByName) > 0 {
		comp.SecuritySchemes = b.securityByName
	}
	if comp.Schemas != nil || comp.SecuritySchemes != nil {
		doc.Components = comp
	}

	doc.Tags = b.mergeTags()
	return doc
}

// mergeTags combines tags collected from operations with configured ones.
// Configured tags keep their description and external docs and are listed
// even when no operation uses them. The result is sorted by name.
func (b *builder) mergeTags() []Tag {
	seen := make(map[string]bool)
	var tags []Tag
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		tag := Tag{Name: name}
		if info, ok := b.cfg.Tags[name]; ok {
			tag.Description = info.Description
			if info.URL != "" {
				tag.ExternalDocs = &ExternalDocs{Description: info.URL, URL: info.URL}
			}
		}
		tags = append(tags, tag)
	}

	for _, item := range b.paths {
		for _, op := range item.Operations() {
			for _, name := range op.Tags {
				add(name)
			}
		}
	}
	for name := range b.cfg.Tags {
		add(name)
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags
}

// assignOperation assigns an operation to the correct HTTP method field
// on the path item.
func assignOperation(item *PathItem, method string, op *Operation) {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodHead:
		item.Head = op
	case http.MethodOptions:
		item.Options = op
	case http.MethodTrace:
		item.Trace = op
	}
}

// operationLabel prefixes generated descriptions, e.g. "GET /users/:id".
func operationLabel(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func statusCode(code int) string { return strconv.Itoa(code) }
