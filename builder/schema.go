package builder

import (
	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/openapi"
)

// Synthesizer turns type descriptors into schemas, registering every named
// object type in a shared SchemaRegistry.
//
// A Synthesizer is cheap and not safe for concurrent use. Concurrent callers
// create one per goroutine over the same registry.
type Synthesizer struct {
	registry *SchemaRegistry
	diag     *diagnostics
}

// NewSynthesizer returns a Synthesizer over registry that logs to logger.
// A nil logger disables logging.
func NewSynthesizer(registry *SchemaRegistry, logger descriptor.Logger) *Synthesizer {
	return newSynthesizer(registry, newDiagnostics(logger, nil))
}

func newSynthesizer(registry *SchemaRegistry, diag *diagnostics) *Synthesizer {
	return &Synthesizer{registry: registry, diag: diag}
}

// Issues returns the diagnostics recorded so far.
func (s *Synthesizer) Issues() []Issue {
	return s.diag.list
}

// Synthesize returns the schema for t with constraints applied. It returns nil
// for a None type, and a reference for a named object type.
func (s *Synthesizer) Synthesize(t *descriptor.TypeDescriptor, constraints descriptor.ConstraintSet) *openapi.Schema {
	return s.synthesize(t, constraints, "")
}

func (s *Synthesizer) synthesize(t *descriptor.TypeDescriptor, constraints descriptor.ConstraintSet, path string) *openapi.Schema {
	if t.IsNone() {
		return nil
	}

	var schema *openapi.Schema
	switch t.Kind {
	case descriptor.KindPrimitive:
		schema = primitiveSchema(t.Primitive)
	case descriptor.KindString:
		schema = &openapi.Schema{Type: openapi.TypeString}
	case descriptor.KindDate:
		schema = &openapi.Schema{Type: openapi.TypeString, Format: "date"}
	case descriptor.KindDateTime:
		schema = &openapi.Schema{Type: openapi.TypeString, Format: "date-time"}
	case descriptor.KindArray:
		// Element schemas never see the outer constraints.
		schema = &openapi.Schema{
			Type:  openapi.TypeArray,
			Items: s.synthesize(t.Elem, nil, issues.FormatPath(path, "items")),
		}
		if schema.Items == nil {
			schema.Items = s.unsupported(t.Elem.String(), path)
		}
	case descriptor.KindMap:
		schema = &openapi.Schema{
			Type:                 openapi.TypeObject,
			AdditionalProperties: s.synthesize(t.Value, nil, issues.FormatPath(path, "additionalProperties")),
		}
	case descriptor.KindObject:
		return s.object(t, path)
	default:
		return s.unsupported(t.Name, path)
	}

	ApplyConstraints(schema, constraints)
	return schema
}

// object registers t under its name on first sight and always returns a
// reference. A nil result means t has no name and cannot be registered.
func (s *Synthesizer) object(t *descriptor.TypeDescriptor, path string) *openapi.Schema {
	if t.Name == "" {
		s.diag.warn(path, "", "object type has no name; omitted")
		return nil
	}
	if !s.registry.acquire(t.Name) {
		return openapi.RefTo(t.Name)
	}

	s.diag.logger.Debug("synthesizing object schema", "name", t.Name, "fields", len(t.Fields))
	base := issues.FormatPath("components", "schemas", t.Name, "properties")
	obj := &openapi.Schema{Type: openapi.TypeObject}
	for _, f := range t.Fields {
		if f.Static {
			continue
		}
		if f.Name == "" {
			s.diag.warn(base, "", "field has no name; omitted")
			continue
		}
		prop := s.synthesize(f.Type, f.Constraints, issues.FormatPath(base, f.Name))
		if prop == nil {
			s.diag.warn(issues.FormatPath(base, f.Name), f.Name, "field has no type; omitted")
			continue
		}
		obj.SetProperty(f.Name, prop)
		if f.Constraints.Required() {
			obj.AddRequired(f.Name)
		}
	}
	s.registry.complete(t.Name, obj)
	return openapi.RefTo(t.Name)
}

func (s *Synthesizer) unsupported(name, path string) *openapi.Schema {
	if name == "" {
		name = "unknown"
	}
	s.diag.warn(path, name, "unsupported type "+name+"; using a generic object schema")
	return &openapi.Schema{
		Type:        openapi.TypeObject,
		Description: "Unsupported type: " + name,
	}
}

func primitiveSchema(p descriptor.Primitive) *openapi.Schema {
	switch p {
	case descriptor.Int32:
		return &openapi.Schema{Type: openapi.TypeInteger, Format: "int32"}
	case descriptor.Int64:
		return &openapi.Schema{Type: openapi.TypeInteger, Format: "int64"}
	case descriptor.Float:
		return &openapi.Schema{Type: openapi.TypeNumber, Format: "float"}
	case descriptor.Double:
		return &openapi.Schema{Type: openapi.TypeNumber, Format: "double"}
	default:
		return &openapi.Schema{Type: openapi.TypeBoolean}
	}
}
