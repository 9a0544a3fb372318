package bitbucket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rios0rios0/bbtools/domain"
)

// Client is a Bitbucket Data Center REST client. The server to target is
// passed per request, so one client can serve any number of invocations.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Bitbucket client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get performs a GET request against a path relative to the server base URL.
func (c *Client) Get(
	ctx context.Context, config domain.ServerConfig, path string, query url.Values,
) (*domain.APIResponse, error) {
	endpoint := path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.doRequest(ctx, config, http.MethodGet, endpoint, nil)
}

// Post performs a POST request with a JSON body against a path relative to
// the server base URL.
func (c *Client) Post(
	ctx context.Context, config domain.ServerConfig, path string, body any,
) (*domain.APIResponse, error) {
	return c.doRequest(ctx, config, http.MethodPost, path, body)
}

func (c *Client) doRequest(
	ctx context.Context, config domain.ServerConfig, method, endpoint string, body any,
) (*domain.APIResponse, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	requestURL := strings.TrimRight(config.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+config.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result := &domain.APIResponse{
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Text:       string(respBody),
	}
	if result.OK && json.Valid(respBody) {
		result.Data = json.RawMessage(respBody)
	}

	return result, nil
}
