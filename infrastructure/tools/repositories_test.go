package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bbtools/domain"
	"github.com/rios0rios0/bbtools/infrastructure/tools"
	testdoubles "github.com/rios0rios0/bbtools/test"
)

const searchPath = "rest/search/latest/search"

func TestRepositorySearcher_Call(t *testing.T) {
	t.Parallel()

	t.Run("should reject a missing query", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		searcher := tools.NewRepositorySearcher(configs, client)

		// when
		events := testdoubles.CollectEvents(searcher.Call(context.Background(), []byte(`{}`)))

		// then
		require.Len(t, events, 1)
		assert.Equal(t, domain.StatusError, events[0].Status)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, events[0].Err, &validationErr)
		assert.Zero(t, client.Calls())
	})

	t.Run("should pass the server results through verbatim", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[searchPath] = []*domain.APIResponse{testdoubles.OKResponse(`{
			"repositories": {
				"values": [
					{"id": 1, "name": "billing", "slug": "billing",
					 "project": {"key": "FIN", "id": 9, "name": "Finance", "public": false, "type": "NORMAL"},
					 "scmId": "git", "state": "AVAILABLE", "forkable": true, "public": false, "archived": false, "statusMessage": "Available"}
				],
				"count": 17
			}
		}`)}
		searcher := tools.NewRepositorySearcher(configs, client)

		// when
		events := testdoubles.CollectEvents(
			searcher.Call(context.Background(), []byte(`{"query": "billing", "limit": 5}`)),
		)

		// then
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusDone, terminal.Status)
		result, ok := terminal.Result.(*tools.RepositorySearchResult)
		require.True(t, ok)
		require.Len(t, result.Values, 1)
		assert.Equal(t, "billing", result.Values[0].Slug)
		assert.Equal(t, "FIN", result.Values[0].Project.Key)
		assert.Equal(t, 17, result.TotalCount, "count is the server's, not the page length")
	})

	t.Run("should send the entity-scoped search request", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[searchPath] = []*domain.APIResponse{testdoubles.OKResponse(
			`{"repositories": {"values": [], "count": 0}}`,
		)}
		searcher := tools.NewRepositorySearcher(configs, client)

		// when
		testdoubles.CollectEvents(
			searcher.Call(context.Background(), []byte(`{"query": "api"}`)),
		)

		// then
		require.Len(t, client.PostCalls, 1)
		body, ok := client.PostCalls[0].Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "api", body["query"])
		entities := body["entities"].(map[string]any)
		assert.Contains(t, entities, "repositories")
		limits := body["limits"].(map[string]any)
		assert.Equal(t, 30, limits["primary"])
	})

	t.Run("should treat a missing repositories category as an empty result", func(t *testing.T) {
		t.Parallel()

		// given — the category key is absent entirely
		configs, client := newSpies()
		client.Responses[searchPath] = []*domain.APIResponse{testdoubles.OKResponse(`{}`)}
		searcher := tools.NewRepositorySearcher(configs, client)

		// when
		events := testdoubles.CollectEvents(
			searcher.Call(context.Background(), []byte(`{"query": "nothing"}`)),
		)

		// then — success with zero count, not an error
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusDone, terminal.Status)
		result := terminal.Result.(*tools.RepositorySearchResult)
		assert.Empty(t, result.Values)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("should surface an ok response without data as a transport error", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[searchPath] = []*domain.APIResponse{{
			OK: true, Status: 200, StatusText: "OK", Text: "not json",
		}}
		searcher := tools.NewRepositorySearcher(configs, client)

		// when
		events := testdoubles.CollectEvents(
			searcher.Call(context.Background(), []byte(`{"query": "x"}`)),
		)

		// then
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusError, terminal.Status)
		var transportErr *domain.TransportError
		require.ErrorAs(t, terminal.Err, &transportErr)
	})

	t.Run("should surface a non-ok response with its status", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[searchPath] = []*domain.APIResponse{
			testdoubles.FailedResponse(503, "Service Unavailable", "search index rebuilding"),
		}
		searcher := tools.NewRepositorySearcher(configs, client)

		// when
		events := testdoubles.CollectEvents(
			searcher.Call(context.Background(), []byte(`{"query": "x"}`)),
		)

		// then
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusError, terminal.Status)
		var transportErr *domain.TransportError
		require.ErrorAs(t, terminal.Err, &transportErr)
		assert.Equal(t, 503, transportErr.Status)
	})
}
