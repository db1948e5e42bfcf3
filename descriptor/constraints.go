package descriptor

import "sort"

// ConstraintKind identifies a validation constraint.
type ConstraintKind int

const (
	// ConstraintSize bounds the length of a string or the size of a collection.
	ConstraintSize ConstraintKind = iota
	// ConstraintMin is an inclusive lower numeric bound.
	ConstraintMin
	// ConstraintMax is an inclusive upper numeric bound.
	ConstraintMax
	// ConstraintPattern is a regular expression a string must match.
	ConstraintPattern
	// ConstraintNotNull marks a value that must be present.
	ConstraintNotNull
	// ConstraintNotBlank marks a string that must contain a non-whitespace character.
	ConstraintNotBlank
	// ConstraintNotEmpty marks a string or collection that must not be empty.
	ConstraintNotEmpty
)

var constraintNames = map[ConstraintKind]string{
	ConstraintSize:     "size",
	ConstraintMin:      "min",
	ConstraintMax:      "max",
	ConstraintPattern:  "pattern",
	ConstraintNotNull:  "notNull",
	ConstraintNotBlank: "notBlank",
	ConstraintNotEmpty: "notEmpty",
}

// String returns the manifest key for the constraint kind.
func (k ConstraintKind) String() string {
	if s, ok := constraintNames[k]; ok {
		return s
	}
	return "unknown"
}

// Constraint is one constraint with its parameters.
//
// Size uses both Min and Max (either may be nil). Min and Max constraints use
// Min and Max respectively. Pattern uses Pattern. The marker constraints carry
// no parameters.
type Constraint struct {
	Kind    ConstraintKind
	Min     *int64
	Max     *int64
	Pattern string
}

// ConstraintSet holds at most one constraint per kind. A nil set is empty.
type ConstraintSet map[ConstraintKind]Constraint

// NewConstraintSet builds a set from cs. A later constraint of the same kind
// replaces an earlier one.
func NewConstraintSet(cs ...Constraint) ConstraintSet {
	if len(cs) == 0 {
		return nil
	}
	set := make(ConstraintSet, len(cs))
	for _, c := range cs {
		set[c.Kind] = c
	}
	return set
}

// Has reports whether the set contains a constraint of kind k.
func (s ConstraintSet) Has(k ConstraintKind) bool {
	_, ok := s[k]
	return ok
}

// Required reports whether the set marks its target as a required property.
func (s ConstraintSet) Required() bool {
	return s.Has(ConstraintNotNull) || s.Has(ConstraintNotBlank) || s.Has(ConstraintNotEmpty)
}

// Sorted returns the constraints ordered by kind.
func (s ConstraintSet) Sorted() []Constraint {
	out := make([]Constraint, 0, len(s))
	for _, c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Size returns a Size constraint. Pass nil for an open bound.
func Size(minimum, maximum *int64) Constraint {
	return Constraint{Kind: ConstraintSize, Min: minimum, Max: maximum}
}

// Min returns a Min constraint.
func Min(n int64) Constraint { return Constraint{Kind: ConstraintMin, Min: &n} }

// Max returns a Max constraint.
func Max(n int64) Constraint { return Constraint{Kind: ConstraintMax, Max: &n} }

// Pattern returns a Pattern constraint.
func Pattern(regex string) Constraint { return Constraint{Kind: ConstraintPattern, Pattern: regex} }

// NotNull returns a NotNull constraint.
func NotNull() Constraint { return Constraint{Kind: ConstraintNotNull} }

// NotBlank returns a NotBlank constraint.
func NotBlank() Constraint { return Constraint{Kind: ConstraintNotBlank} }

// NotEmpty returns a NotEmpty constraint.
func NotEmpty() Constraint { return Constraint{Kind: ConstraintNotEmpty} }

// Int64Ptr returns a pointer to n.
func Int64Ptr(n int64) *int64 { return &n }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
