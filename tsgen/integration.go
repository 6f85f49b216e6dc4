package tsgen

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vitalvas/zodoc/logging"
	"github.com/vitalvas/zodoc/naming"
	"github.com/vitalvas/zodoc/registry"
	"github.com/vitalvas/zodoc/routing"
	"github.com/vitalvas/zodoc/schema"
	"github.com/vitalvas/zodoc/walker"
)

// Integration generates TypeScript types and a client scaffold from a
// routing tree.
type Integration struct {
	cfg Config
}

// NewIntegration creates a generator with the given configuration.
func NewIntegration(cfg Config) *Integration {
	return &Integration{cfg: cfg}
}

// Build types every endpoint of the routing tree.
func (i *Integration) Build(routes routing.Routing) (*File, error) {
	if err := i.cfg.validate(); err != nil {
		return nil, err
	}
	b := &builder{
		cfg:     i.cfg,
		rules:   newRules(i.cfg.Brands),
		logger:  logging.OrNop(i.cfg.Logger).With("component", "tsgen"),
		aliases:   registry.New[*schema.Node, Type]("Type"),
		expanding: make(map[uint64]string),
		ids:       naming.NewCounter(),
	}
	if err := routing.Walk(routes, b.addEndpoint); err != nil {
		return nil, err
	}
	return b.file(), nil
}

// endpointEntry records the names declared for one method and path.
type endpointEntry struct {
	key    string
	method string
	path   string
	id     string
	tags   []string
	json   bool
}

type builder struct {
	cfg     Config
	rules   *walker.Rules[Type, Context]
	logger  logging.Logger
	aliases   *registry.Registry[*schema.Node, Type]
	expanding map[uint64]string
	ids       *naming.Counter

	entries    []endpointEntry
	statements []Statement
}

func (b *builder) context(dir schema.Direction, method, path string) Context {
	return Context{
		Context:   walker.Context{Direction: dir, Method: method, Path: path},
		Optional:  b.cfg.optional(),
		aliases:   b.aliases,
		expanding: b.expanding,
		logger:    b.logger,
	}
}

func (b *builder) addEndpoint(method, path string, ep *routing.Endpoint) error {
	b.logger.Debug("typing endpoint", "method", method, "path", path)
	id := b.ids.Unique(naming.CleanID(method, path))

	input, err := walker.Walk(ep.Schema(schema.DirectionIn), b.context(schema.DirectionIn, method, path), b.rules)
	if err != nil {
		return err
	}
	b.statements = append(b.statements, Declare(id+"Input", input, false))

	positive, err := b.addVariant(method, path, id, ep, routing.VariantPositive)
	if err != nil {
		return err
	}
	negative, err := b.addVariant(method, path, id, ep, routing.VariantNegative)
	if err != nil {
		return err
	}
	b.statements = append(b.statements, Alias{
		Name: id + "Response",
		Type: Union{Types: []Type{Ref{Name: positive}, Ref{Name: negative}}},
	})

	b.entries = append(b.entries, endpointEntry{
		key:    method + " " + path,
		method: method,
		path:   path,
		id:     id,
		tags:   ep.Tags(),
		json:   slices.Contains(ep.MimeTypes(schema.DirectionOut), routing.MimeJSON),
	})
	return nil
}

// addVariant declares one type per response, a dictionary of them keyed by
// status code and their union. It returns the name of the union.
func (b *builder) addVariant(method, path, id string, ep *routing.Endpoint, v routing.Variant) (string, error) {
	prefix := id + naming.CleanID(string(v))
	var (
		dict  []Property
		union Union
	)
	for idx, resp := range ep.Responses(v) {
		t := Type(KeywordUndefined)
		if resp.Schema != nil {
			var err error
			t, err = walker.Walk(resp.Schema, b.context(schema.DirectionOut, method, path), b.rules)
			if err != nil {
				return "", err
			}
		}
		name := prefix + "Variant" + strconv.Itoa(idx+1)
		b.statements = append(b.statements, Declare(name, t, false))
		union.Types = append(union.Types, Ref{Name: name})
		for _, code := range resp.StatusCodes {
			key := strconv.Itoa(code)
			if !slices.ContainsFunc(dict, func(p Property) bool { return p.Name == key }) {
				dict = append(dict, Property{Name: key, Type: Ref{Name: name}})
			}
		}
	}
	b.statements = append(b.statements,
		Interface{Name: prefix + "ResponseVariants", Props: dict},
		Alias{Name: prefix + "Response", Type: union},
	)
	return prefix + "Response", nil
}

func (b *builder) file() *File {
	f := &File{}
	for _, e := range b.aliases.Entries() {
		f.Add(Declare(e.Name, e.Value, false))
	}
	f.Add(b.statements...)

	var paths, methods, keys Union
	var seenPaths, seenMethods []string
	for _, e := range b.entries {
		if !slices.Contains(seenPaths, e.path) {
			seenPaths = append(seenPaths, e.path)
		}
		if !slices.Contains(seenMethods, e.method) {
			seenMethods = append(seenMethods, e.method)
		}
		keys.Types = append(keys.Types, Literal{Value: e.key})
	}
	slices.Sort(seenMethods)
	for _, p := range seenPaths {
		paths.Types = append(paths.Types, Literal{Value: p})
	}
	for _, m := range seenMethods {
		methods.Types = append(methods.Types, Literal{Value: m})
	}
	f.Add(
		Alias{Name: "Path", Exported: true, Type: paths},
		Alias{Name: "Method", Exported: true, Type: methods},
		Alias{Name: "MethodPath", Exported: true, Type: keys},
		b.keyedInterface("Input"),
		b.keyedInterface("PositiveResponse"),
		b.keyedInterface("NegativeResponse"),
		b.keyedInterface("Response"),
		providerTypes,
	)
	if b.cfg.variant() == VariantTypes {
		return f
	}

	jsonEndpoints := Const{Name: "jsonEndpoints", Exported: true}
	endpointTags := Const{Name: "endpointTags", Exported: true}
	for _, e := range b.entries {
		if e.json {
			jsonEndpoints.Entries = append(jsonEndpoints.Entries, ConstEntry{Key: e.key, Value: true})
		}
		tags := e.tags
		if tags == nil {
			tags = []string{}
		}
		endpointTags.Entries = append(endpointTags.Entries, ConstEntry{Key: e.key, Value: tags})
	}
	f.Add(jsonEndpoints, endpointTags, b.client(), b.usage())
	return f
}

// keyedInterface declares an interface mapping every "method path" key to the
// per-endpoint type of the same name.
func (b *builder) keyedInterface(name string) Interface {
	decl := Interface{Name: name, Exported: true}
	for _, e := range b.entries {
		decl.Props = append(decl.Props, Property{Name: e.key, Type: Ref{Name: e.id + name}})
	}
	return decl
}

var providerTypes = Code{
	"export type Implementation = (",
	"  method: Method,",
	"  path: string,",
	"  params: Record<string, any>,",
	") => Promise<any>;",
	"",
	"export type Provider = <K extends MethodPath>(",
	"  method: K extends `${infer M} ${string}` ? M : never,",
	"  path: K extends `${string} ${infer P}` ? P : never,",
	"  params: Input[K],",
	") => Promise<Response[K]>;",
}

func (b *builder) client() Code {
	return Code{
		"export class " + b.cfg.clientName() + " {",
		"  public constructor(protected readonly implementation: Implementation) {}",
		"",
		"  public readonly provide: Provider = async (method, path, params) => {",
		"    const values = params as Record<string, any>;",
		"    const keys = Object.keys(values);",
		"    return this.implementation(",
		"      method,",
		"      keys.reduce<string>((acc, key) => acc.replace(`:${key}`, values[key]), path),",
		"      keys.reduce<Record<string, any>>(",
		"        (acc, key) => (path.includes(`:${key}`) ? acc : { ...acc, [key]: values[key] }),",
		"        {},",
		"      ),",
		"    );",
		"  };",
		"}",
	}
}

func (b *builder) usage() Comment {
	call := `client.provide("get", "/", {});`
	if len(b.entries) > 0 {
		e := b.entries[0]
		call = "client.provide(" + strconv.Quote(e.method) + ", " + strconv.Quote(e.path) + ", {});"
	}
	lines := []string{
		"Usage example:",
		"",
		"const client = new " + b.cfg.clientName() + "(async (method, path, params) => {",
		`  const hasBody = !["get", "delete"].includes(method);`,
		"  const search = hasBody ? \"\" : `?${new URLSearchParams(params)}`;",
		"  const response = await fetch(`" + b.cfg.serverURL() + "${path}${search}`, {",
		"    method: method.toUpperCase(),",
		`    headers: hasBody ? { "Content-Type": "application/json" } : undefined,`,
		"    body: hasBody ? JSON.stringify(params) : undefined,",
		"  });",
		`  const isJSON = response.headers.get("content-type")?.startsWith("application/json");`,
		`  return response[isJSON ? "json" : "text"]();`,
		"});",
		"",
		call,
	}
	return Comment(strings.Join(lines, "\n"))
}
