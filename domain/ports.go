package domain

import (
	"context"
	"encoding/json"
	"net/url"
)

// ServerConfig is the resolved connection target for one invocation.
type ServerConfig struct {
	BaseURL string
	Token   string
}

// ConfigProvider resolves the server configuration for an invocation.
type ConfigProvider interface {
	Resolve(ctx context.Context) (ServerConfig, error)
}

// APIResponse is the outcome of one remote request. Data is populated only
// when OK is true and the body parsed as JSON; Text always carries the raw
// body for diagnostics.
type APIResponse struct {
	OK         bool
	Status     int
	StatusText string
	Data       json.RawMessage
	Text       string
}

// APIClient performs requests against a Bitbucket server.
type APIClient interface {
	Get(ctx context.Context, config ServerConfig, path string, query url.Values) (*APIResponse, error)
	Post(ctx context.Context, config ServerConfig, path string, body any) (*APIResponse, error)
}

// Tool is a stateless adapter invocable with raw JSON arguments. Call returns
// immediately; events arrive on the channel until the terminal one, after
// which the channel is closed. Cancelling ctx stops delivery.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, arguments json.RawMessage) <-chan Event
}
