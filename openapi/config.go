package openapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/logging"
)

// Version is the OpenAPI version of the generated document.
type Version string

const (
	Version30 Version = "3.0.3"
	Version31 Version = "3.1.0"
)

func (v Version) is30() bool { return strings.HasPrefix(string(v), "3.0.") }

// Composition selects how request bodies, responses and parameters are
// placed in the document.
type Composition string

const (
	// CompositionInline embeds every schema where it is used.
	CompositionInline Composition = "inline"
	// CompositionComponents moves schemas into components and references them.
	CompositionComponents Composition = "components"
)

// InputSource is a part of the request the input schema is assembled from.
type InputSource string

const (
	SourceQuery   InputSource = "query"
	SourceBody    InputSource = "body"
	SourceParams  InputSource = "params"
	SourceFiles   InputSource = "files"
	SourceHeaders InputSource = "headers"
)

// DefaultInputSources maps lower case methods to the request parts they read.
var DefaultInputSources = map[string][]InputSource{
	"get":    {SourceQuery, SourceParams},
	"delete": {SourceQuery, SourceParams},
	"post":   {SourceBody, SourceParams, SourceFiles},
	"put":    {SourceBody, SourceParams},
	"patch":  {SourceBody, SourceParams},
}

// TagInfo describes a tag used by endpoints.
type TagInfo struct {
	Description string
	URL         string
}

// HeaderFunc decides whether an input property is a request header.
type HeaderFunc func(name, method, path string) bool

// Config configures a Documentation.
type Config struct {
	Title       string
	Version     string
	Description string
	ServerURLs  []string

	// OpenAPIVersion defaults to Version31.
	OpenAPIVersion Version

	// Composition defaults to CompositionInline.
	Composition Composition

	Tags map[string]TagInfo

	// InputSources overrides DefaultInputSources per lower case method.
	InputSources map[string][]InputSource

	// Brands holds custom rules for branded schemas.
	Brands map[string]Rule

	// SummaryFromDescription derives missing summaries from the trimmed
	// endpoint description.
	SummaryFromDescription bool

	// IsHeader overrides the default header detection: names starting with
	// "x-" and names of header security schemes.
	IsHeader HeaderFunc

	Logger logging.Logger
}

func (c Config) openAPIVersion() Version {
	if c.OpenAPIVersion == "" {
		return Version31
	}
	return c.OpenAPIVersion
}

func (c Config) composition() Composition {
	if c.Composition == "" {
		return CompositionInline
	}
	return c.Composition
}

func (c Config) inputSources(method string) []InputSource {
	if sources, ok := c.InputSources[method]; ok {
		return sources
	}
	if sources, ok := DefaultInputSources[method]; ok {
		return sources
	}
	return DefaultInputSources[strings.ToLower(http.MethodGet)]
}

func (c Config) validate() error {
	v := c.openAPIVersion()
	if !v.is30() && !strings.HasPrefix(string(v), "3.1.") {
		return &apierrors.ConfigError{Option: "OpenAPIVersion", Value: string(v), Message: "supported versions are 3.0.x and 3.1.x"}
	}
	if comp := c.composition(); comp != CompositionInline && comp != CompositionComponents {
		return &apierrors.ConfigError{Option: "Composition", Value: string(comp), Message: "must be inline or components"}
	}
	if c.Title == "" {
		return &apierrors.ConfigError{Option: "Title", Message: "must not be empty"}
	}
	if c.Version == "" {
		return &apierrors.ConfigError{Option: "Version", Message: "must not be empty"}
	}
	return nil
}

func hasSource(sources []InputSource, s InputSource) bool {
	return slices.Contains(sources, s)
}
