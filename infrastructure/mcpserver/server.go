package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bbtools/domain"
	"github.com/rios0rios0/bbtools/infrastructure/tools"
)

// Server exposes the registered tools over the Model Context Protocol.
type Server struct {
	server   *mcp.Server
	registry *tools.Registry
}

// NewServer creates an MCP server with every registered tool attached.
func NewServer(registry *tools.Registry) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "bbtools",
			Version: "1.0.0",
		}, nil),
		registry: registry,
	}
	s.registerTools()
	return s
}

// Run serves the tools over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Infof("Serving %d tools over stdio", len(s.registry.Names()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	for _, tool := range s.registry.All() {
		s.server.AddTool(&mcp.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.InputSchema(),
		}, s.handlerFor(tool))
	}
}

// handlerFor adapts a tool's event sequence to one MCP call: progress lines
// are logged, the terminal event becomes the call result.
func (s *Server) handlerFor(
	tool tools.Tool,
) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		for event := range tool.Call(ctx, req.Params.Arguments) {
			switch event.Status {
			case domain.StatusInProgress:
				for _, line := range event.Progress {
					logger.Debugf("[%s] %s", tool.Name(), line)
				}
			case domain.StatusDone:
				return createJSONResponse(event.Result)
			case domain.StatusError:
				return createErrorResponse(tool.Name(), event.Err), nil
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("tool %q produced no terminal event", tool.Name())
	}
}

// createJSONResponse wraps a tool result as JSON text content.
func createJSONResponse(data any) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// createErrorResponse reports a tool failure inside the result, flagged with
// IsError so the caller can self-correct.
func createErrorResponse(toolName string, err error) *mcp.CallToolResult {
	errorData := map[string]any{
		"error": map[string]string{"message": err.Error()},
		"tool":  toolName,
	}
	content, marshalErr := json.Marshal(errorData)
	if marshalErr != nil {
		content = []byte(fmt.Sprintf("%q failed: %v", toolName, err))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
		IsError: true,
	}
}
