package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rios0rios0/bbtools/domain"
)

const (
	searchEndpoint           = "rest/search/latest/search"
	repositoriesDefaultLimit = 30
	repositoriesMaxLimit     = 100
)

// RepositorySearcher runs one indexed repository search and returns the
// server's results verbatim.
type RepositorySearcher struct {
	builtinTool
	configs domain.ConfigProvider
	client  domain.APIClient
}

// RepositorySearcherArgs are the arguments of the search_repositories tool.
type RepositorySearcherArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// RepositorySearchResult is the terminal payload of search_repositories.
type RepositorySearchResult struct {
	Values     []domain.Repository `json:"values"`
	TotalCount int                 `json:"totalCount"`
}

// NewRepositorySearcher creates the search_repositories tool.
func NewRepositorySearcher(
	configs domain.ConfigProvider, client domain.APIClient,
) *RepositorySearcher {
	return &RepositorySearcher{
		builtinTool: builtinTool{
			name:        "search_repositories",
			description: "Search repositories on the Bitbucket server using the indexed search.",
		},
		configs: configs,
		client:  client,
	}
}

func (t *RepositorySearcher) Call(
	ctx context.Context, arguments json.RawMessage,
) <-chan domain.Event {
	return invoke(ctx, t.name, func(ctx context.Context, emit *emitter) error {
		var args RepositorySearcherArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return domain.NewValidationError("invalid arguments: %v", err)
		}
		if args.Query == "" {
			return domain.NewValidationError("query is required")
		}
		limit := clampLimit(args.Limit, repositoriesDefaultLimit, repositoriesMaxLimit)

		emit.progress(fmt.Sprintf("Searching repositories for %q...", args.Query))

		config, err := t.configs.Resolve(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve server configuration: %w", err)
		}

		body := searchRequest(args.Query, "repositories", limit)
		response, err := t.client.Post(ctx, config, searchEndpoint, body)
		if err != nil {
			return err
		}
		if !response.OK || response.Data == nil {
			return domain.NewTransportError(response)
		}

		var search domain.SearchResponse
		if unmarshalErr := json.Unmarshal(response.Data, &search); unmarshalErr != nil {
			return domain.NewTransportError(response)
		}

		if search.Repositories == nil {
			emit.done(&RepositorySearchResult{Values: []domain.Repository{}, TotalCount: 0})
			return nil
		}

		values := search.Repositories.Values
		if values == nil {
			values = []domain.Repository{}
		}
		emit.done(&RepositorySearchResult{
			Values:     values,
			TotalCount: search.Repositories.Count,
		})
		return nil
	})
}

// searchRequest builds the indexed-search request body for one entity
// category ("repositories" or "code").
func searchRequest(query, entity string, limit int) map[string]any {
	return map[string]any{
		"query":    query,
		"entities": map[string]any{entity: map[string]any{}},
		"limits":   map[string]any{"primary": limit},
	}
}
