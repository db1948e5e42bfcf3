package builder

import (
	"testing"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/openapi"
	"github.com/stretchr/testify/assert"
)

// permutations returns every ordering of cs.
func permutations(cs []descriptor.Constraint) [][]descriptor.Constraint {
	if len(cs) <= 1 {
		return [][]descriptor.Constraint{append([]descriptor.Constraint(nil), cs...)}
	}
	var out [][]descriptor.Constraint
	for i := range cs {
		rest := make([]descriptor.Constraint, 0, len(cs)-1)
		rest = append(rest, cs[:i]...)
		rest = append(rest, cs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]descriptor.Constraint{cs[i]}, p...))
		}
	}
	return out
}

func applyInOrder(base openapi.Schema, cs []descriptor.Constraint) *openapi.Schema {
	s := base
	for _, c := range cs {
		ApplyConstraint(&s, c)
	}
	return &s
}

func TestApplyConstraint_NotBlankAndPatternInEitherOrder(t *testing.T) {
	notBlank := descriptor.NotBlank()
	pattern := descriptor.Pattern("^[a-z]+$")

	for _, order := range [][]descriptor.Constraint{{notBlank, pattern}, {pattern, notBlank}} {
		s := applyInOrder(openapi.Schema{Type: openapi.TypeString}, order)
		assert.Equal(t, 1, *s.MinLength)
		assert.Equal(t, "^[a-z]+$", s.Pattern)
	}
}

func TestApplyConstraints_OrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		base openapi.Schema
		cs   []descriptor.Constraint
	}{
		{
			name: "string",
			base: openapi.Schema{Type: openapi.TypeString},
			cs: []descriptor.Constraint{
				descriptor.Size(descriptor.Int64Ptr(0), descriptor.Int64Ptr(20)),
				descriptor.NotEmpty(),
				descriptor.NotBlank(),
				descriptor.Pattern(`^\w+$`),
				descriptor.NotNull(),
			},
		},
		{
			name: "array",
			base: openapi.Schema{Type: openapi.TypeArray, Items: &openapi.Schema{Type: openapi.TypeString}},
			cs: []descriptor.Constraint{
				descriptor.Size(descriptor.Int64Ptr(0), descriptor.Int64Ptr(3)),
				descriptor.NotEmpty(),
				descriptor.NotBlank(),
			},
		},
		{
			name: "integer",
			base: openapi.Schema{Type: openapi.TypeInteger, Format: "int32"},
			cs: []descriptor.Constraint{
				descriptor.Min(1),
				descriptor.Max(10),
				descriptor.Size(descriptor.Int64Ptr(1), nil),
				descriptor.Pattern("ignored"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perms := permutations(tt.cs)
			want := applyInOrder(tt.base, perms[0])
			for _, p := range perms[1:] {
				assert.Equal(t, want, applyInOrder(tt.base, p))
			}
		})
	}
}

func TestApplyConstraints_Facets(t *testing.T) {
	str := &openapi.Schema{Type: openapi.TypeString}
	ApplyConstraints(str, descriptor.NewConstraintSet(
		descriptor.Size(descriptor.Int64Ptr(0), descriptor.Int64Ptr(20)),
		descriptor.NotEmpty(),
	))
	assert.Equal(t, 1, *str.MinLength, "NotEmpty raises a zero minimum")
	assert.Equal(t, 20, *str.MaxLength)
	assert.Empty(t, str.Pattern)

	arr := &openapi.Schema{Type: openapi.TypeArray}
	ApplyConstraints(arr, descriptor.NewConstraintSet(descriptor.Size(descriptor.Int64Ptr(3), nil)))
	assert.Equal(t, 3, *arr.MinItems)
	assert.Nil(t, arr.MaxItems)

	num := &openapi.Schema{Type: openapi.TypeNumber, Format: "double"}
	ApplyConstraints(num, descriptor.NewConstraintSet(descriptor.Min(-5), descriptor.Max(5), descriptor.Size(descriptor.Int64Ptr(1), nil)))
	assert.InDelta(t, -5.0, *num.Minimum, 0)
	assert.InDelta(t, 5.0, *num.Maximum, 0)
	assert.Nil(t, num.MinLength)

	boolean := &openapi.Schema{Type: openapi.TypeBoolean}
	ApplyConstraints(boolean, descriptor.NewConstraintSet(descriptor.Min(1), descriptor.NotBlank()))
	assert.Equal(t, &openapi.Schema{Type: openapi.TypeBoolean}, boolean)
}

func TestApplyConstraints_TightensRepeatedBounds(t *testing.T) {
	s := &openapi.Schema{Type: openapi.TypeString}
	ApplyConstraint(s, descriptor.Size(descriptor.Int64Ptr(2), descriptor.Int64Ptr(10)))
	ApplyConstraint(s, descriptor.Size(descriptor.Int64Ptr(4), descriptor.Int64Ptr(8)))
	ApplyConstraint(s, descriptor.Size(descriptor.Int64Ptr(1), descriptor.Int64Ptr(50)))

	assert.Equal(t, 4, *s.MinLength)
	assert.Equal(t, 8, *s.MaxLength)
}

func TestApplyConstraints_IgnoresReferences(t *testing.T) {
	ref := openapi.RefTo("Item")
	ApplyConstraints(ref, descriptor.NewConstraintSet(descriptor.NotBlank(), descriptor.Size(descriptor.Int64Ptr(1), nil)))
	assert.Equal(t, openapi.RefTo("Item"), ref)

	ApplyConstraints(nil, descriptor.NewConstraintSet(descriptor.NotBlank()))
}
