// Package descriptor defines the handler metadata consumed by the builder.
//
// Descriptors are plain values. They are produced once by a discovery step
// (a manifest file loaded with [Load], or values constructed by hand) and are
// treated as read-only from then on.
//
// Object types are shared by pointer, so a [TypeDescriptor] graph may be
// cyclic:
//
//	node := &descriptor.TypeDescriptor{Kind: descriptor.KindObject, Name: "Node"}
//	node.Fields = []descriptor.Field{
//	    {Name: "next", Type: node},
//	}
package descriptor

import "strings"

// Kind identifies the shape of a type.
type Kind int

const (
	// KindNone marks the absence of a type. Handlers returning nothing have no
	// response content.
	KindNone Kind = iota
	// KindPrimitive is a fixed-width numeric or boolean type; see [Primitive].
	KindPrimitive
	// KindString is a string.
	KindString
	// KindDate is a calendar date without time.
	KindDate
	// KindDateTime is a timestamp.
	KindDateTime
	// KindArray is an ordered collection of Elem.
	KindArray
	// KindMap is a string-keyed map of Value.
	KindMap
	// KindObject is a named structured type with Fields.
	KindObject
	// KindUnsupported is a type discovery could not resolve. Name holds the
	// unresolved type name.
	KindUnsupported
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPrimitive:
		return "primitive"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindDateTime:
		return "date-time"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindObject:
		return "object"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Primitive identifies a KindPrimitive type.
type Primitive int

const (
	Int32 Primitive = iota
	Int64
	Float
	Double
	Bool
)

// String returns the primitive's name.
func (p Primitive) String() string {
	switch p {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float:
		return "float"
	case Double:
		return "double"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// TypeDescriptor is a language-neutral description of a type.
type TypeDescriptor struct {
	Kind      Kind
	Primitive Primitive
	// Elem is the element type of a KindArray.
	Elem *TypeDescriptor
	// Value is the value type of a KindMap.
	Value *TypeDescriptor
	// Name is the simple type name of a KindObject, or the unresolved name of a
	// KindUnsupported.
	Name string
	// Fields lists the members of a KindObject in declaration order.
	Fields []Field
}

// String renders the type the way it is written in a manifest.
func (t *TypeDescriptor) String() string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case KindNone:
		return "void"
	case KindPrimitive:
		return t.Primitive.String()
	case KindString, KindDate, KindDateTime:
		return t.Kind.String()
	case KindArray:
		return "[]" + t.Elem.String()
	case KindMap:
		return "map[string]" + t.Value.String()
	default:
		return t.Name
	}
}

// IsNone reports whether t describes no content. A nil descriptor is None.
func (t *TypeDescriptor) IsNone() bool {
	return t == nil || t.Kind == KindNone
}

// Field is one member of an object type.
type Field struct {
	Name        string
	Type        *TypeDescriptor
	Constraints ConstraintSet
	// Static fields are class-level members and are never serialized.
	Static bool
}

// Convenience constructors, mostly used by tests and hand-built descriptors.

// PrimitiveOf returns a primitive type descriptor.
func PrimitiveOf(p Primitive) *TypeDescriptor {
	return &TypeDescriptor{Kind: KindPrimitive, Primitive: p}
}

// StringType returns a string type descriptor.
func StringType() *TypeDescriptor { return &TypeDescriptor{Kind: KindString} }

// DateType returns a date type descriptor.
func DateType() *TypeDescriptor { return &TypeDescriptor{Kind: KindDate} }

// DateTimeType returns a date-time type descriptor.
func DateTimeType() *TypeDescriptor { return &TypeDescriptor{Kind: KindDateTime} }

// ArrayOf returns an array type descriptor.
func ArrayOf(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{Kind: KindArray, Elem: elem}
}

// MapOf returns a string-keyed map type descriptor.
func MapOf(value *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{Kind: KindMap, Value: value}
}

// Object returns an object type descriptor.
func Object(name string, fields ...Field) *TypeDescriptor {
	return &TypeDescriptor{Kind: KindObject, Name: name, Fields: fields}
}

// Unsupported returns a descriptor for a type discovery could not resolve.
func Unsupported(name string) *TypeDescriptor {
	return &TypeDescriptor{Kind: KindUnsupported, Name: name}
}

// BindingKind is where a handler parameter is read from.
type BindingKind int

const (
	// BindingNone is a parameter with no API surface, such as an injected
	// request context.
	BindingNone BindingKind = iota
	BindingPath
	BindingQuery
	BindingHeader
	BindingBody
)

// String returns the OpenAPI "in" value for the binding, or "body"/"none".
func (b BindingKind) String() string {
	switch b {
	case BindingPath:
		return "path"
	case BindingQuery:
		return "query"
	case BindingHeader:
		return "header"
	case BindingBody:
		return "body"
	default:
		return "none"
	}
}

// ParseBinding maps a manifest "in" value to a BindingKind. Unknown values map
// to BindingNone.
func ParseBinding(s string) BindingKind {
	switch strings.ToLower(s) {
	case "path":
		return BindingPath
	case "query":
		return BindingQuery
	case "header":
		return BindingHeader
	case "body":
		return BindingBody
	default:
		return BindingNone
	}
}

// ParamDescriptor is one handler parameter.
type ParamDescriptor struct {
	Binding     BindingKind
	Name        string
	Type        *TypeDescriptor
	Constraints ConstraintSet
	// Required is the declared required flag; nil when the binding left it
	// unspecified.
	Required *bool
}

// HandlerDescriptor describes one HTTP handler method.
type HandlerDescriptor struct {
	// Owner is the simple name of the class declaring the handler.
	Owner string
	// Name is the handler method name.
	Name   string
	Method string
	// Path is the full route, including any class-level prefix.
	Path              string
	Params            []ParamDescriptor
	Return            *TypeDescriptor
	ReturnConstraints ConstraintSet
	// Status is the declared success status; 0 when undeclared.
	Status int
	// Reason is the declared success reason text.
	Reason string
}

// OperationID returns the identifier used for the handler's operation.
func (h *HandlerDescriptor) OperationID() string {
	return h.Owner + "." + h.Name
}

// Scope says which handlers an error handler protects.
type Scope int

const (
	// ScopeGlobal handlers are declared in an advice unit and apply to every
	// handler.
	ScopeGlobal Scope = iota
	// ScopeLocal handlers apply only to handlers of the same owning class.
	ScopeLocal
)

// String returns "global" or "local".
func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// ExceptionType is an error type an error handler can handle.
type ExceptionType struct {
	Name string
	// Status is the status declared on the exception type itself; 0 when none.
	Status int
	Reason string
}

// ErrorHandlerDescriptor describes one declared error handler.
type ErrorHandlerDescriptor struct {
	Owner      string
	Name       string
	Exceptions []ExceptionType
	// Status is the handler's declared response status; 0 when undeclared.
	Status int
	Reason string
	Return *TypeDescriptor
	Scope  Scope
}

// Controller groups handlers and local error handlers declared by one class.
type Controller struct {
	Name          string
	Handlers      []HandlerDescriptor
	ErrorHandlers []ErrorHandlerDescriptor
}

// Advice is a cross-cutting unit declaring global error handlers.
type Advice struct {
	Name          string
	ErrorHandlers []ErrorHandlerDescriptor
}

// Info is document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// API is everything discovery produced for one build.
type API struct {
	Info        Info
	Controllers []Controller
	Advices     []Advice
}

// HandlerCount returns the total number of handlers across all controllers.
func (a *API) HandlerCount() int {
	n := 0
	for _, c := range a.Controllers {
		n += len(c.Handlers)
	}
	return n
}

// GlobalErrorHandlers returns every advice error handler in registration
// order, with Scope forced to ScopeGlobal.
func (a *API) GlobalErrorHandlers() []ErrorHandlerDescriptor {
	var out []ErrorHandlerDescriptor
	for _, adv := range a.Advices {
		for _, eh := range adv.ErrorHandlers {
			eh.Scope = ScopeGlobal
			if eh.Owner == "" {
				eh.Owner = adv.Name
			}
			out = append(out, eh)
		}
	}
	return out
}
