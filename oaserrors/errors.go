// Package oaserrors provides structured error types for oasgen.
//
// The builder itself never fails; these errors come from the collaborators
// around it: loading a manifest, validating its structure, and checking
// command-line or server configuration.
//
// Each type matches a sentinel through errors.Is:
//
//	api, err := descriptor.LoadFile("api.yaml")
//	if errors.Is(err, oaserrors.ErrValidation) {
//	    var verr *oaserrors.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Println("bad manifest field:", verr.Path)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a manifest could not be read or decoded.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a decoded manifest is structurally invalid.
	ErrValidation = errors.New("validation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// describe renders "<kind><where> (value: v): message: cause", leaving out
// the parts that are empty.
func describe(kind, where string, value any, message string, cause error) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString(where)
	if value != nil && value != "" {
		fmt.Fprintf(&b, " (value: %v)", value)
	}
	if message != "" {
		b.WriteString(": " + message)
	}
	if cause != nil {
		b.WriteString(": " + cause.Error())
	}
	return b.String()
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

// ParseError represents a failure to read or decode a manifest.
type ParseError struct {
	// Path is the file path or source identifier
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return describe("parse error", prefixed(" in ", e.Path), nil, e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ValidationError represents a structural problem in a decoded manifest.
type ValidationError struct {
	// Path locates the offending element, such as
	// "controllers[0].handlers[2].method".
	Path string
	// Value is the rejected value, if any.
	Value   any
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return describe("validation error", prefixed(" at ", e.Path), e.Value, e.Message, e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConfigError represents an invalid option, flag or environment setting.
type ConfigError struct {
	// Option names the flag or setting, such as "format".
	Option  string
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	return describe("configuration error", prefixed(" for ", e.Option), e.Value, e.Message, e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
