package server

import (
	"github.com/GriffinCanCode/devtools-mcp/internal/shared/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func mcpTool(tool types.Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        tool.ID,
		Description: tool.Description,
		Annotations: &mcp.ToolAnnotations{
			Title:        tool.Name,
			ReadOnlyHint: tool.ReadOnly,
		},
		InputSchema: inputSchema(tool.Parameters),
	}
}

// inputSchema builds a JSON Schema object from parameter descriptors.
func inputSchema(params []types.Parameter) map[string]interface{} {
	properties := make(map[string]interface{}, len(params))
	var required []string

	for _, p := range params {
		prop := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if p.Minimum != nil {
			prop["minimum"] = *p.Minimum
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
