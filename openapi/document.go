// Package openapi is the in-memory OpenAPI 3.0 document produced by the
// builder, along with its YAML and JSON encodings.
//
// Maps that carry meaning in their order (paths, properties, responses) are
// [OrderedMap] values and are written in insertion order. Empty values are
// omitted from the encoded output.
package openapi

import (
	"strconv"
	"strings"
)

// DefaultVersion is the OpenAPI version written when none is configured.
const DefaultVersion = "3.0.3"

// ContentTypeJSON is the media type used for every request and response body.
const ContentTypeJSON = "application/json"

// Document is the root of a generated description.
type Document struct {
	OpenAPI    string
	Info       Info
	Paths      *OrderedMap[*PathItem]
	Components Components
}

// NewDocument returns an empty document for the given OpenAPI version.
func NewDocument(version string, info Info) *Document {
	if version == "" {
		version = DefaultVersion
	}
	return &Document{
		OpenAPI:    version,
		Info:       info,
		Paths:      NewOrderedMap[*PathItem](),
		Components: Components{Schemas: NewOrderedMap[*Schema]()},
	}
}

// Info is document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Components holds the named schema registry snapshot.
type Components struct {
	Schemas *OrderedMap[*Schema]
}

// PathItem holds one operation per HTTP method.
type PathItem struct {
	Get     *Operation
	Put     *Operation
	Post    *Operation
	Delete  *Operation
	Options *Operation
	Head    *Operation
	Patch   *Operation
	Trace   *Operation
}

// Methods lists the lowercase HTTP methods a PathItem can hold, in output order.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

func (p *PathItem) slot(method string) **Operation {
	switch strings.ToLower(method) {
	case "get":
		return &p.Get
	case "put":
		return &p.Put
	case "post":
		return &p.Post
	case "delete":
		return &p.Delete
	case "options":
		return &p.Options
	case "head":
		return &p.Head
	case "patch":
		return &p.Patch
	case "trace":
		return &p.Trace
	default:
		return nil
	}
}

// Operation returns the operation for method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	if s := p.slot(method); s != nil {
		return *s
	}
	return nil
}

// SetOperation stores op under method. It reports whether an existing
// operation was replaced, and returns false with no effect for an unknown
// method.
func (p *PathItem) SetOperation(method string, op *Operation) (replaced, ok bool) {
	s := p.slot(method)
	if s == nil {
		return false, false
	}
	replaced = *s != nil
	*s = op
	return replaced, true
}

// Operations returns the present operations keyed by method, in output order.
func (p *PathItem) Operations() *OrderedMap[*Operation] {
	ops := NewOrderedMap[*Operation]()
	for _, m := range Methods {
		if op := p.Operation(m); op != nil {
			ops.Set(m, op)
		}
	}
	return ops
}

// Operation is one assembled handler.
type Operation struct {
	OperationID string
	Summary     string
	Parameters  []*Parameter
	RequestBody *RequestBody
	Responses   *OrderedMap[*Response]
}

// Response returns the response registered for status, or nil.
func (o *Operation) Response(status int) *Response {
	return o.Responses.Value(strconv.Itoa(status))
}

// Parameter returns the parameter with the given location and name, or nil.
func (o *Operation) Parameter(in, name string) *Parameter {
	for _, p := range o.Parameters {
		if p.In == in && p.Name == name {
			return p
		}
	}
	return nil
}

// Parameter is a path, query or header parameter.
type Parameter struct {
	Name     string
	In       string
	Required bool
	Schema   *Schema
}

// RequestBody is an operation's request body.
type RequestBody struct {
	Required bool
	Content  *OrderedMap[*MediaType]
}

// Response is one status-coded response.
type Response struct {
	Description string
	// Content is nil for responses without a body.
	Content *OrderedMap[*MediaType]
}

// MediaType wraps the schema for one content type.
type MediaType struct {
	Schema *Schema
}

// ContentOf returns single-entry content for schema under contentType, or nil
// when schema is nil.
func ContentOf(contentType string, schema *Schema) *OrderedMap[*MediaType] {
	if schema == nil {
		return nil
	}
	c := NewOrderedMap[*MediaType]()
	c.Set(contentType, &MediaType{Schema: schema})
	return c
}

// Stats summarizes a document.
type Stats struct {
	Paths      int `json:"paths"`
	Operations int `json:"operations"`
	Schemas    int `json:"schemas"`
}

// Stats counts the document's paths, operations and component schemas.
func (d *Document) Stats() Stats {
	st := Stats{Paths: d.Paths.Len(), Schemas: d.Components.Schemas.Len()}
	for _, item := range d.Paths.All() {
		st.Operations += item.Operations().Len()
	}
	return st
}
