// Package oasgen synthesizes OpenAPI 3.0 description documents from declared
// HTTP handler metadata.
//
// # Overview
//
// The module is organized around one core package and a few collaborators:
//
//   - builder: schema synthesis, constraint mapping, response resolution and
//     document assembly
//   - descriptor: the handler metadata model and the YAML/JSON manifest loader
//   - openapi: the document model and its ordered YAML/JSON encoding
//   - oaserrors: errors returned by the collaborators
//
// # Quick Start
//
// Load a manifest, build the document and write it:
//
//	api, err := descriptor.LoadFile("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := builder.New(builder.WithTitle("Items API")).Build(api)
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//	out, err := openapi.MarshalYAML(result.Document)
//
// The builder never fails. Fallbacks, such as an unsupported field type, and
// tie-breaks, such as two error handlers producing the same status, are
// reported as issues on the result.
//
// # Command Line
//
// The oasgen command wraps the same pipeline:
//
//	oasgen generate -o openapi.yaml api.yaml
//	oasgen check api.yaml
//	oasgen mcp
//
// Use "oasgen help" for the full list of commands and flags.
package oasgen
