package descriptor

import "strings"

// typeTable resolves manifest type expressions against the declared object
// types. Object descriptors are shared, so a type that refers to itself, or
// two types that refer to each other, form a cyclic descriptor graph.
type typeTable struct {
	objects map[string]*TypeDescriptor
}

// ParseType parses a type expression with no declared object types. Names
// that are not built in resolve to KindUnsupported.
func ParseType(expr string) *TypeDescriptor {
	return (&typeTable{}).parse(expr)
}

// parse resolves one expression. An empty expression or "void" is None.
func (tt *typeTable) parse(expr string) *TypeDescriptor {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "" || strings.EqualFold(expr, "void"):
		return nil
	case strings.HasPrefix(expr, "[]"):
		return ArrayOf(tt.parse(expr[2:]))
	case strings.HasPrefix(expr, "map[string]"):
		return MapOf(tt.parse(expr[len("map[string]"):]))
	}

	if base, args, ok := splitGeneric(expr); ok {
		return tt.generic(expr, base, args)
	}
	if t, ok := tt.objects[expr]; ok {
		return t
	}
	if t := builtin(expr); t != nil {
		return t
	}
	return Unsupported(expr)
}

// generic unwraps container and wrapper types. Anything else with type
// arguments is unsupported.
func (tt *typeTable) generic(expr, base string, args []string) *TypeDescriptor {
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[i+1:]
	}
	switch strings.ToLower(base) {
	case "mono", "responseentity", "optional", "completablefuture":
		if len(args) == 1 {
			return tt.parse(args[0])
		}
	case "flux", "list", "set", "collection", "iterable":
		if len(args) == 1 {
			return ArrayOf(tt.parse(args[0]))
		}
	case "map":
		if len(args) == 2 {
			return MapOf(tt.parse(args[1]))
		}
	}
	return Unsupported(expr)
}

func builtin(name string) *TypeDescriptor {
	switch strings.ToLower(name) {
	case "int32", "int", "integer":
		return PrimitiveOf(Int32)
	case "int64", "long":
		return PrimitiveOf(Int64)
	case "float":
		return PrimitiveOf(Float)
	case "double", "number", "decimal":
		return PrimitiveOf(Double)
	case "bool", "boolean":
		return PrimitiveOf(Bool)
	case "string":
		return StringType()
	case "date", "localdate":
		return DateType()
	case "date-time", "datetime", "localdatetime":
		return DateTimeType()
	}
	return nil
}

// splitGeneric splits "Base<A, B<C>>" into "Base" and ["A", "B<C>"].
func splitGeneric(expr string) (base string, args []string, ok bool) {
	open := strings.IndexByte(expr, '<')
	if open <= 0 || !strings.HasSuffix(expr, ">") {
		return "", nil, false
	}
	inner := expr[open+1 : len(expr)-1]
	depth, start := 0, 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return "", nil, false
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return strings.TrimSpace(expr[:open]), args, true
}
