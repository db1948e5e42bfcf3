package builder

import (
	"testing"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_Leaves(t *testing.T) {
	tests := []struct {
		name   string
		typ    *descriptor.TypeDescriptor
		want   string
		format string
	}{
		{"int32", descriptor.PrimitiveOf(descriptor.Int32), openapi.TypeInteger, "int32"},
		{"int64", descriptor.PrimitiveOf(descriptor.Int64), openapi.TypeInteger, "int64"},
		{"float", descriptor.PrimitiveOf(descriptor.Float), openapi.TypeNumber, "float"},
		{"double", descriptor.PrimitiveOf(descriptor.Double), openapi.TypeNumber, "double"},
		{"bool", descriptor.PrimitiveOf(descriptor.Bool), openapi.TypeBoolean, ""},
		{"string", descriptor.StringType(), openapi.TypeString, ""},
		{"date", descriptor.DateType(), openapi.TypeString, "date"},
		{"date-time", descriptor.DateTimeType(), openapi.TypeString, "date-time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(NewSchemaRegistry(), nil).Synthesize(tt.typ, nil)
			require.NotNil(t, s)
			assert.Equal(t, tt.want, s.Type)
			assert.Equal(t, tt.format, s.Format)
		})
	}
}

func TestSynthesize_None(t *testing.T) {
	s := NewSynthesizer(NewSchemaRegistry(), nil)
	assert.Nil(t, s.Synthesize(nil, nil))
	assert.Nil(t, s.Synthesize(&descriptor.TypeDescriptor{Kind: descriptor.KindNone}, nil))
}

func TestSynthesize_ArrayUsesOuterConstraints(t *testing.T) {
	elem := descriptor.StringType()
	constraints := descriptor.NewConstraintSet(
		descriptor.Size(descriptor.Int64Ptr(2), descriptor.Int64Ptr(5)),
	)

	s := NewSynthesizer(NewSchemaRegistry(), nil).Synthesize(descriptor.ArrayOf(elem), constraints)

	require.NotNil(t, s)
	assert.Equal(t, openapi.TypeArray, s.Type)
	assert.Equal(t, 2, *s.MinItems)
	assert.Equal(t, 5, *s.MaxItems)
	require.NotNil(t, s.Items)
	assert.Equal(t, openapi.TypeString, s.Items.Type)
	assert.Nil(t, s.Items.MinLength, "element schema must not receive the outer size")
}

func TestSynthesize_Map(t *testing.T) {
	reg := NewSchemaRegistry()
	s := NewSynthesizer(reg, nil).Synthesize(descriptor.MapOf(itemType()), descriptor.NewConstraintSet(descriptor.NotNull()))

	require.NotNil(t, s)
	assert.Equal(t, openapi.TypeObject, s.Type)
	assert.Empty(t, s.Required)
	assert.Equal(t, "Item", s.AdditionalProperties.RefName())
	assert.True(t, reg.Has("Item"))
}

func TestSynthesize_ObjectReturnsReference(t *testing.T) {
	reg := NewSchemaRegistry()
	s := NewSynthesizer(reg, nil).Synthesize(itemType(), nil)

	assert.Equal(t, "#/components/schemas/Item", s.Ref)

	item := registered(t, reg, "Item")
	assert.Equal(t, []string{"id", "name"}, item.Properties.Keys())
	assert.Equal(t, "int64", item.Property("id").Format)
	name := item.Property("name")
	assert.Equal(t, 1, *name.MinLength)
	assert.Equal(t, `\S`, name.Pattern)
	assert.Equal(t, []string{"name"}, item.Required)
}

func TestSynthesize_RequiredMarkers(t *testing.T) {
	obj := descriptor.Object("Form",
		descriptor.Field{Name: "a", Type: descriptor.StringType(), Constraints: descriptor.NewConstraintSet(descriptor.NotNull())},
		descriptor.Field{Name: "b", Type: descriptor.StringType(), Constraints: descriptor.NewConstraintSet(descriptor.NotEmpty())},
		descriptor.Field{Name: "c", Type: descriptor.StringType(), Constraints: descriptor.NewConstraintSet(descriptor.NotBlank())},
		descriptor.Field{Name: "d", Type: descriptor.StringType(), Constraints: descriptor.NewConstraintSet(descriptor.Pattern("x"))},
		descriptor.Field{Name: "e", Type: descriptor.PrimitiveOf(descriptor.Int32), Constraints: descriptor.NewConstraintSet(descriptor.Min(3))},
	)
	reg := NewSchemaRegistry()
	NewSynthesizer(reg, nil).Synthesize(obj, nil)

	form := registered(t, reg, "Form")
	assert.Equal(t, []string{"a", "b", "c"}, form.Required)
	assert.InDelta(t, 3.0, *form.Property("e").Minimum, 0)
}

func TestSynthesize_SkipsStaticFields(t *testing.T) {
	obj := descriptor.Object("Config",
		descriptor.Field{Name: "VERSION", Type: descriptor.PrimitiveOf(descriptor.Int32), Static: true},
		descriptor.Field{Name: "enabled", Type: descriptor.PrimitiveOf(descriptor.Bool)},
	)
	reg := NewSchemaRegistry()
	NewSynthesizer(reg, nil).Synthesize(obj, nil)

	assert.Equal(t, []string{"enabled"}, registered(t, reg, "Config").Properties.Keys())
}

func TestSynthesize_SelfReference(t *testing.T) {
	node := descriptor.Object("Node")
	node.Fields = []descriptor.Field{
		{Name: "value", Type: descriptor.StringType()},
		{Name: "next", Type: node},
		{Name: "children", Type: descriptor.ArrayOf(node)},
	}

	reg := NewSchemaRegistry()
	s := NewSynthesizer(reg, nil).Synthesize(node, nil)

	assert.Equal(t, "Node", s.RefName())
	assert.Equal(t, 1, reg.Len())
	n := registered(t, reg, "Node")
	assert.Equal(t, []string{"value", "next", "children"}, n.Properties.Keys())
	assert.Equal(t, "Node", n.Property("next").RefName())
	assert.Equal(t, "Node", n.Property("children").Items.RefName())
}

func TestSynthesize_MutualReference(t *testing.T) {
	a := descriptor.Object("A")
	b := descriptor.Object("B")
	a.Fields = []descriptor.Field{{Name: "b", Type: b}, {Name: "label", Type: descriptor.StringType()}}
	b.Fields = []descriptor.Field{{Name: "a", Type: a}, {Name: "tags", Type: descriptor.MapOf(a)}}

	reg := NewSchemaRegistry()
	NewSynthesizer(reg, nil).Synthesize(a, nil)

	assert.Equal(t, []string{"A", "B"}, reg.Names())
	sa := registered(t, reg, "A")
	assert.Equal(t, []string{"b", "label"}, sa.Properties.Keys(), "A holds all its properties, not a placeholder")
	sb := registered(t, reg, "B")
	assert.Equal(t, "A", sb.Property("a").RefName())
	assert.Equal(t, "A", sb.Property("tags").AdditionalProperties.RefName())
}

func TestSynthesize_DeduplicatesTraversal(t *testing.T) {
	logger := &recordingLogger{}
	reg := NewSchemaRegistry()
	s := NewSynthesizer(reg, logger)

	first := s.Synthesize(itemType(), nil)
	second := s.Synthesize(descriptor.ArrayOf(itemType()), nil)

	assert.Equal(t, first.Ref, second.Items.Ref)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, logger.traversals("Item"))
}

func TestSynthesize_Unsupported(t *testing.T) {
	s := NewSynthesizer(NewSchemaRegistry(), nil)
	got := s.Synthesize(descriptor.Unsupported("java.util.UUID"), descriptor.NewConstraintSet(descriptor.NotBlank()))

	assert.Equal(t, openapi.TypeObject, got.Type)
	assert.Equal(t, "Unsupported type: java.util.UUID", got.Description)
	assert.Empty(t, got.Pattern)
	require.Len(t, s.Issues(), 1)
	assert.Equal(t, SeverityWarning, s.Issues()[0].Severity)
}

func TestSynthesize_AnonymousObjectOmitted(t *testing.T) {
	reg := NewSchemaRegistry()
	outer := descriptor.Object("Outer",
		descriptor.Field{Name: "inner", Type: descriptor.Object("")},
		descriptor.Field{Name: "ok", Type: descriptor.StringType()},
	)
	s := NewSynthesizer(reg, nil)
	s.Synthesize(outer, nil)

	assert.Equal(t, []string{"ok"}, registered(t, reg, "Outer").Properties.Keys())
	assert.NotEmpty(t, s.Issues())
}
