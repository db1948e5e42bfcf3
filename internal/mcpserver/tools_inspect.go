package mcpserver

import (
	"context"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/pathutil"
)

type inspectInput struct {
	Manifest   manifestInput `json:"manifest"             jsonschema:"The handler manifest to inspect"`
	Controller string        `json:"controller,omitempty" jsonschema:"Only list handlers of this controller"`
	Offset     int           `json:"offset,omitempty"     jsonschema:"Skip the first N handlers"`
	Limit      int           `json:"limit,omitempty"      jsonschema:"Maximum handlers to return (default 100)"`
}

type handlerSummary struct {
	OperationID string `json:"operation_id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Returns     string `json:"returns"`
	Params      int    `json:"params"`
	// Unbound lists route variables with no matching path parameter.
	Unbound []string `json:"unbound,omitempty"`
}

type inspectOutput struct {
	Title               string           `json:"title,omitempty"`
	Version             string           `json:"version,omitempty"`
	Controllers         int              `json:"controllers"`
	Advices             int              `json:"advices"`
	GlobalErrorHandlers int              `json:"global_error_handlers"`
	LocalErrorHandlers  int              `json:"local_error_handlers"`
	Matched             int              `json:"matched"`
	Returned            int              `json:"returned"`
	Handlers            []handlerSummary `json:"handlers,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	api, err := input.Manifest.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		Title:               api.Info.Title,
		Version:             api.Info.Version,
		Controllers:         len(api.Controllers),
		Advices:             len(api.Advices),
		GlobalErrorHandlers: len(api.GlobalErrorHandlers()),
	}

	var all []handlerSummary
	for _, c := range api.Controllers {
		output.LocalErrorHandlers += len(c.ErrorHandlers)
		if input.Controller != "" && c.Name != input.Controller {
			continue
		}
		for _, h := range c.Handlers {
			all = append(all, handlerSummary{
				OperationID: h.OperationID(),
				Method:      h.Method,
				Path:        h.Path,
				Returns:     h.Return.String(),
				Params:      len(h.Params),
				Unbound:     unboundVariables(h),
			})
		}
	}
	output.Matched = len(all)
	output.Handlers = paginate(all, input.Offset, input.Limit)
	output.Returned = len(output.Handlers)
	return nil, output, nil
}

func unboundVariables(h descriptor.HandlerDescriptor) []string {
	var unbound []string
	for _, name := range pathutil.TemplateParams(h.Path) {
		bound := slices.ContainsFunc(h.Params, func(p descriptor.ParamDescriptor) bool {
			return p.Binding == descriptor.BindingPath && p.Name == name
		})
		if !bound {
			unbound = append(unbound, name)
		}
	}
	return unbound
}
