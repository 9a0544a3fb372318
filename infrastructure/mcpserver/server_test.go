package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bbtools/domain"
	"github.com/rios0rios0/bbtools/infrastructure/tools"
)

// stubTool emits a fixed event sequence.
type stubTool struct {
	name   string
	events []domain.Event
}

var _ tools.Tool = (*stubTool)(nil)

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "a stub" }
func (t *stubTool) Source() string      { return "builtin" }

func (t *stubTool) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *stubTool) Call(_ context.Context, _ json.RawMessage) <-chan domain.Event {
	events := make(chan domain.Event, len(t.events))
	for _, event := range t.events {
		events <- event
	}
	close(events)
	return events
}

func buildRegistry(stubs ...*stubTool) *tools.Registry {
	registry := tools.NewRegistry()
	for _, stub := range stubs {
		registry.Register(stub)
	}
	return registry
}

func callRequest(arguments string) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(arguments)},
	}
}

func TestHandlerFor(t *testing.T) {
	t.Parallel()

	t.Run("should turn the done event into JSON text content", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubTool{
			name: "demo",
			events: []domain.Event{
				domain.NewProgressEvent("step one"),
				domain.NewDoneEvent(map[string]int{"totalCount": 3}),
			},
		}
		server := NewServer(buildRegistry(stub))
		handler := server.handlerFor(stub)

		// when
		result, err := handler(context.Background(), callRequest(`{}`))

		// then
		require.NoError(t, err)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.JSONEq(t, `{"totalCount": 3}`, text.Text)
		assert.False(t, result.IsError)
	})

	t.Run("should report the error event inside the result with IsError", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &stubTool{
			name:   "demo",
			events: []domain.Event{domain.NewErrorEvent(errors.New("offset must be a multiple of limit"))},
		}
		server := NewServer(buildRegistry(stub))
		handler := server.handlerFor(stub)

		// when
		result, err := handler(context.Background(), callRequest(`{}`))

		// then
		require.NoError(t, err)
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text := result.Content[0].(*mcp.TextContent)
		assert.Contains(t, text.Text, "offset must be a multiple of limit")
	})
}

func TestCreateJSONResponse(t *testing.T) {
	t.Parallel()

	t.Run("should marshal the payload into one text content", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := createJSONResponse([]string{"a", "b"})

		// then
		require.NoError(t, err)
		require.Len(t, result.Content, 1)
		text := result.Content[0].(*mcp.TextContent)
		assert.JSONEq(t, `["a", "b"]`, text.Text)
	})
}

func TestCreateErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("should set IsError and carry the message", func(t *testing.T) {
		t.Parallel()

		// when
		result := createErrorResponse("bitbucket_read", errors.New("request failed with status 404 Not Found"))

		// then
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text := result.Content[0].(*mcp.TextContent)
		assert.Contains(t, text.Text, "request failed with status 404")
		assert.Contains(t, text.Text, "bitbucket_read")
	})
}
