package openapi

// Schema type names.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// SchemaRefPrefix prefixes every component schema reference.
const SchemaRefPrefix = "#/components/schemas/"

// Schema is a synthesized schema. A schema with Ref set is a reference and
// carries no other fields.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Description string

	// Numeric bounds.
	Minimum *float64
	Maximum *float64

	// String facets.
	MinLength *int
	MaxLength *int
	Pattern   string

	// Array facets.
	Items    *Schema
	MinItems *int
	MaxItems *int

	// Object facets.
	Properties           *OrderedMap[*Schema]
	AdditionalProperties *Schema
	Required             []string
}

// RefTo returns a reference to the named component schema.
func RefTo(name string) *Schema {
	return &Schema{Ref: SchemaRefPrefix + name}
}

// IsRef reports whether s is a reference.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// RefName returns the component name s refers to, or "" if s is not a reference.
func (s *Schema) RefName() string {
	if !s.IsRef() || len(s.Ref) <= len(SchemaRefPrefix) {
		return ""
	}
	return s.Ref[len(SchemaRefPrefix):]
}

// IsNumeric reports whether s is an integer or number schema.
func (s *Schema) IsNumeric() bool {
	return s.Type == TypeInteger || s.Type == TypeNumber
}

// AddRequired appends name to Required unless already present.
func (s *Schema) AddRequired(name string) {
	for _, r := range s.Required {
		if r == name {
			return
		}
	}
	s.Required = append(s.Required, name)
}

// SetProperty adds or replaces a property, keeping declaration order.
func (s *Schema) SetProperty(name string, prop *Schema) {
	if s.Properties == nil {
		s.Properties = NewOrderedMap[*Schema]()
	}
	s.Properties.Set(name, prop)
}

// Property returns the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	return s.Properties.Value(name)
}
