// Package builder synthesizes an OpenAPI document from handler descriptors.
//
// The builder walks every handler of a [descriptor.API], assembles one
// operation per handler, and collects every named object type into a shared
// schema registry that becomes components.schemas.
//
// # Quick Start
//
//	item := descriptor.Object("Item",
//		descriptor.Field{Name: "id", Type: descriptor.PrimitiveOf(descriptor.Int64)},
//		descriptor.Field{Name: "name", Type: descriptor.StringType(),
//			Constraints: descriptor.NewConstraintSet(descriptor.NotBlank())},
//	)
//	api := &descriptor.API{
//		Controllers: []descriptor.Controller{{
//			Name: "ItemController",
//			Handlers: []descriptor.HandlerDescriptor{{
//				Name: "list", Method: "GET", Path: "/items",
//				Return: descriptor.ArrayOf(item),
//			}},
//		}},
//	}
//
//	result := builder.New(builder.WithTitle("Items API")).Build(api)
//	data, err := openapi.MarshalYAML(result.Document)
//
// # Schemas
//
// Object types are never inlined. The first time a name is seen a placeholder
// is registered before its fields are visited; every later sight of the name,
// including a recursive one from inside its own fields, yields a reference.
// This single rule both deduplicates schemas and terminates cyclic type graphs.
//
// Type mappings:
//   - int32 → integer (format: int32)
//   - int64 → integer (format: int64)
//   - float → number (format: float)
//   - double → number (format: double)
//   - bool → boolean
//   - string → string
//   - date / date-time → string (format: date / date-time)
//   - []T → array (items from T)
//   - map[string]T → object (additionalProperties from T)
//   - named object → $ref to components.schemas
//
// Constraints map onto schema facets. Lower bounds keep the largest value seen
// and upper bounds the smallest, so constraints may be applied in any order.
// An explicit pattern always replaces the non-blank default pattern.
//
// # Responses
//
// The success response is registered first: declared status, else 201 for
// POST, else 200. Error handlers follow. Global handlers come from advice
// units (first registration of an exception wins) and local handlers of the
// handler's own class replace them. Each error handler contributes a response
// only if its status is still free.
//
// # Diagnostics
//
// Build never fails. Fallbacks and tie-breaks are reported in
// [Result.Issues] and through the configured [descriptor.Logger].
//
// # Concurrency
//
// A Builder may be reused, and Build may be called from several goroutines.
// With [WithConcurrency] a single build assembles operations on several
// goroutines against one mutex-guarded [SchemaRegistry]; the output is the
// same as a sequential build.
package builder
