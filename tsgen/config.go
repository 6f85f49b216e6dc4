package tsgen

import (
	"fmt"

	"github.com/vitalvas/zodoc/apierrors"
	"github.com/vitalvas/zodoc/logging"
)

// Variant selects what an Integration generates.
type Variant string

const (
	// VariantClient generates the types, the endpoint constants, an example
	// client class and a usage example.
	VariantClient Variant = "client"
	// VariantTypes generates the types only.
	VariantTypes Variant = "types"
)

// OptionalStyle selects how optional properties are rendered. The flags can
// be combined.
type OptionalStyle uint8

const (
	// OptionalQuestionMark renders "name?: T".
	OptionalQuestionMark OptionalStyle = 1 << iota
	// OptionalUndefined renders "name: T | undefined".
	OptionalUndefined
)

func (s OptionalStyle) questionMark() bool { return s&OptionalQuestionMark != 0 }
func (s OptionalStyle) undefined() bool    { return s&OptionalUndefined != 0 }

const (
	defaultClientName = "Client"
	defaultServerURL  = "https://example.com"
)

// Config configures an Integration.
type Config struct {
	// Variant defaults to VariantClient.
	Variant Variant

	// ClientName is the name of the generated client class.
	ClientName string

	// ServerURL is used by the usage example.
	ServerURL string

	// Optional defaults to OptionalQuestionMark.
	Optional OptionalStyle

	// Brands holds custom rules for branded schemas.
	Brands map[string]Rule

	Logger logging.Logger
}

func (c Config) variant() Variant {
	if c.Variant == "" {
		return VariantClient
	}
	return c.Variant
}

func (c Config) clientName() string {
	if c.ClientName == "" {
		return defaultClientName
	}
	return c.ClientName
}

func (c Config) serverURL() string {
	if c.ServerURL == "" {
		return defaultServerURL
	}
	return c.ServerURL
}

func (c Config) optional() OptionalStyle {
	if c.Optional == 0 {
		return OptionalQuestionMark
	}
	return c.Optional
}

func (c Config) validate() error {
	if v := c.variant(); v != VariantClient && v != VariantTypes {
		return &apierrors.ConfigError{Option: "Variant", Value: v, Message: "must be client or types"}
	}
	if c.Optional > OptionalQuestionMark|OptionalUndefined {
		return &apierrors.ConfigError{
			Option:  "Optional",
			Value:   c.Optional,
			Message: fmt.Sprintf("unknown flags %#x", uint8(c.Optional&^(OptionalQuestionMark|OptionalUndefined))),
		}
	}
	return nil
}
