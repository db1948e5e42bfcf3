package builder

import (
	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/openapi"
)

// NonBlankPattern is the pattern a NotBlank constraint adds to a string
// schema that has no pattern of its own.
const NonBlankPattern = `\S`

// ApplyConstraints merges every constraint in set onto s.
//
// The result does not depend on application order: lower bounds keep the
// largest value, upper bounds the smallest, and an explicit Pattern always
// replaces the NonBlankPattern default. References are left untouched.
func ApplyConstraints(s *openapi.Schema, set descriptor.ConstraintSet) {
	if s == nil || s.IsRef() {
		return
	}
	for _, c := range set.Sorted() {
		ApplyConstraint(s, c)
	}
}

// ApplyConstraint merges a single constraint onto s. Constraints that do not
// apply to the schema's type are ignored.
func ApplyConstraint(s *openapi.Schema, c descriptor.Constraint) {
	if s == nil || s.IsRef() {
		return
	}
	switch c.Kind {
	case descriptor.ConstraintSize:
		switch s.Type {
		case openapi.TypeString:
			raiseInt(&s.MinLength, c.Min)
			lowerInt(&s.MaxLength, c.Max)
		case openapi.TypeArray:
			raiseInt(&s.MinItems, c.Min)
			lowerInt(&s.MaxItems, c.Max)
		}
	case descriptor.ConstraintMin:
		if s.IsNumeric() {
			raiseFloat(&s.Minimum, c.Min)
		}
	case descriptor.ConstraintMax:
		if s.IsNumeric() {
			lowerFloat(&s.Maximum, c.Max)
		}
	case descriptor.ConstraintPattern:
		if s.Type == openapi.TypeString && c.Pattern != "" {
			s.Pattern = c.Pattern
		}
	case descriptor.ConstraintNotEmpty:
		switch s.Type {
		case openapi.TypeString:
			raiseInt(&s.MinLength, descriptor.Int64Ptr(1))
		case openapi.TypeArray:
			raiseInt(&s.MinItems, descriptor.Int64Ptr(1))
		}
	case descriptor.ConstraintNotBlank:
		if s.Type == openapi.TypeString {
			raiseInt(&s.MinLength, descriptor.Int64Ptr(1))
			if s.Pattern == "" {
				s.Pattern = NonBlankPattern
			}
		}
	case descriptor.ConstraintNotNull:
		// Only affects the enclosing object's required list.
	}
}

func raiseInt(dst **int, v *int64) {
	if v == nil {
		return
	}
	n := int(*v)
	if *dst == nil || n > **dst {
		*dst = &n
	}
}

func lowerInt(dst **int, v *int64) {
	if v == nil {
		return
	}
	n := int(*v)
	if *dst == nil || n < **dst {
		*dst = &n
	}
}

func raiseFloat(dst **float64, v *int64) {
	if v == nil {
		return
	}
	f := float64(*v)
	if *dst == nil || f > **dst {
		*dst = &f
	}
}

func lowerFloat(dst **float64, v *int64) {
	if v == nil {
		return
	}
	f := float64(*v)
	if *dst == nil || f < **dst {
		*dst = &f
	}
}
