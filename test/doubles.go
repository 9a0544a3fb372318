// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rios0rios0/bbtools/domain"
)

// ---------------------------------------------------------------------------
// SpyConfigProvider
// ---------------------------------------------------------------------------

// SpyConfigProvider implements domain.ConfigProvider as a configurable spy.
type SpyConfigProvider struct {
	Config     domain.ServerConfig
	ResolveErr error
	// spy: number of resolutions requested
	ResolveCalls int
}

var _ domain.ConfigProvider = (*SpyConfigProvider)(nil)

func (p *SpyConfigProvider) Resolve(_ context.Context) (domain.ServerConfig, error) {
	p.ResolveCalls++
	return p.Config, p.ResolveErr
}

// ---------------------------------------------------------------------------
// SpyAPIClient
// ---------------------------------------------------------------------------

// APICall records one request received by the spy client.
type APICall struct {
	Path  string
	Query url.Values
	Body  any
}

// SpyAPIClient implements domain.APIClient as a configurable spy. Responses
// maps a request path to the queue of responses to serve in order; the last
// response of a queue repeats. A path with no queue yields a 404.
type SpyAPIClient struct {
	Responses map[string][]*domain.APIResponse
	Err       error

	// spy: requests received
	GetCalls  []APICall
	PostCalls []APICall
}

var _ domain.APIClient = (*SpyAPIClient)(nil)

func (c *SpyAPIClient) Get(
	_ context.Context, _ domain.ServerConfig, path string, query url.Values,
) (*domain.APIResponse, error) {
	c.GetCalls = append(c.GetCalls, APICall{Path: path, Query: query})
	return c.next(path)
}

func (c *SpyAPIClient) Post(
	_ context.Context, _ domain.ServerConfig, path string, body any,
) (*domain.APIResponse, error) {
	c.PostCalls = append(c.PostCalls, APICall{Path: path, Body: body})
	return c.next(path)
}

// Calls returns the total number of requests received.
func (c *SpyAPIClient) Calls() int {
	return len(c.GetCalls) + len(c.PostCalls)
}

func (c *SpyAPIClient) next(path string) (*domain.APIResponse, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	queue := c.Responses[path]
	if len(queue) == 0 {
		return &domain.APIResponse{Status: 404, StatusText: "Not Found"}, nil
	}
	response := queue[0]
	if len(queue) > 1 {
		c.Responses[path] = queue[1:]
	}
	return response, nil
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

// OKResponse builds a successful JSON response from a payload literal.
func OKResponse(payload string) *domain.APIResponse {
	return &domain.APIResponse{
		OK:         true,
		Status:     200,
		StatusText: "OK",
		Data:       json.RawMessage(payload),
		Text:       payload,
	}
}

// RawResponse builds a successful non-JSON response, as the raw file
// endpoint returns.
func RawResponse(text string) *domain.APIResponse {
	return &domain.APIResponse{
		OK:         true,
		Status:     200,
		StatusText: "OK",
		Text:       text,
	}
}

// FailedResponse builds a non-ok response with the given status.
func FailedResponse(status int, statusText, body string) *domain.APIResponse {
	return &domain.APIResponse{
		Status:     status,
		StatusText: statusText,
		Text:       body,
	}
}

// ---------------------------------------------------------------------------
// Event helpers
// ---------------------------------------------------------------------------

// CollectEvents drains an invocation's event channel into a slice.
func CollectEvents(events <-chan domain.Event) []domain.Event {
	var collected []domain.Event
	for event := range events {
		collected = append(collected, event)
	}
	return collected
}

// Terminal returns the last event of a collected sequence.
func Terminal(events []domain.Event) domain.Event {
	if len(events) == 0 {
		return domain.Event{}
	}
	return events[len(events)-1]
}
