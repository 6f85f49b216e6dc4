// Package apierrors provides structured error types for the schema
// depiction engine.
//
// Every fatal condition raised while depicting a schema tree is one of the
// types below. They carry the endpoint location (method, path) and the
// direction being depicted, and support errors.Is() against the sentinels
// and errors.As() against the concrete types.
//
// # Error Categories
//
//   - UnsupportedKindError: no rule exists for a node kind
//   - DirectionError: a direction-restricted kind was used on the wrong side
//   - TransformError: a transformation sits where a static shape is required
//   - ConfigError: invalid generator configuration
//
// All of them also match ErrDocumentation:
//
//	doc, err := openapi.NewDocumentation(cfg).Build(routes)
//	if err != nil {
//	    var dirErr *apierrors.DirectionError
//	    if errors.As(err, &dirErr) {
//	        log.Printf("%s must not be used for %s", dirErr.Kind, dirErr.Direction)
//	    }
//	}
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrDocumentation matches every error raised by the depiction engine.
	ErrDocumentation = errors.New("documentation error")

	// ErrUnsupportedKind indicates that no rule handles a node kind.
	ErrUnsupportedKind = errors.New("unsupported schema kind")

	// ErrDirection indicates a direction constraint violation.
	ErrDirection = errors.New("direction constraint violation")

	// ErrIllegalTransform indicates a transformation where a static shape is required.
	ErrIllegalTransform = errors.New("illegal transformation")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Location identifies where in the routing a schema was being depicted.
type Location struct {
	// Method is the HTTP method in lower case (may be empty)
	Method string
	// Path is the route path (may be empty)
	Path string
	// Direction is "input" or "output" (may be empty)
	Direction string
}

func (l Location) String() string {
	msg := ""
	if l.Method != "" || l.Path != "" {
		msg = fmt.Sprintf(" at %s %s", l.Method, l.Path)
	}
	if l.Direction != "" {
		msg += " (" + l.Direction + ")"
	}
	return msg
}

// UnsupportedKindError is raised when a node kind has no rule in the active
// rule table. It is never downgraded to a permissive schema.
type UnsupportedKindError struct {
	Location
	// Kind is the node kind that could not be handled
	Kind string
	// Description is the node description, if any
	Description string
}

// Error returns a human-readable error message.
func (e *UnsupportedKindError) Error() string {
	msg := "unsupported schema kind"
	if e.Kind != "" {
		msg += " " + e.Kind
	}
	msg += e.Location.String()
	if e.Description != "" {
		msg += ": " + e.Description
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrUnsupportedKind || target == ErrDocumentation
}

// DirectionError is raised when a kind that is restricted to one direction
// is depicted for the other one.
type DirectionError struct {
	Location
	// Kind is the offending node kind
	Kind string
	// Message explains which construct to use instead
	Message string
}

// Error returns a human-readable error message.
func (e *DirectionError) Error() string {
	msg := "direction constraint violation"
	if e.Kind != "" {
		msg += " for " + e.Kind
	}
	msg += e.Location.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DirectionError) Is(target error) bool {
	return target == ErrDirection || target == ErrDocumentation
}

// TransformError is raised when a transformation is found at the root of an
// input or response schema whose shape must be known statically.
type TransformError struct {
	Location
	// Message describes the offending construct
	Message string
}

// Error returns a human-readable error message.
func (e *TransformError) Error() string {
	msg := "illegal transformation" + e.Location.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *TransformError) Is(target error) bool {
	return target == ErrIllegalTransform || target == ErrDocumentation
}

// ConfigError represents an invalid generator configuration.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig || target == ErrDocumentation
}
