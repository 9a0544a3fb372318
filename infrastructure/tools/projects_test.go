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

const projectsPath = "rest/api/latest/projects"

func newSpies() (*testdoubles.SpyConfigProvider, *testdoubles.SpyAPIClient) {
	configs := &testdoubles.SpyConfigProvider{
		Config: domain.ServerConfig{BaseURL: "https://bitbucket.example.com", Token: "tok"},
	}
	client := &testdoubles.SpyAPIClient{
		Responses: make(map[string][]*domain.APIResponse),
	}
	return configs, client
}

func TestProjectLister_Call(t *testing.T) {
	t.Parallel()

	t.Run("should reject an offset that is not a multiple of limit without any network call", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		lister := tools.NewProjectLister(configs, client)

		// when
		events := testdoubles.CollectEvents(
			lister.Call(context.Background(), []byte(`{"limit": 10, "offset": 7}`)),
		)

		// then — the very first and only event is the error
		require.Len(t, events, 1)
		assert.Equal(t, domain.StatusError, events[0].Status)
		var validationErr *domain.ValidationError
		require.ErrorAs(t, events[0].Err, &validationErr)
		assert.Contains(t, events[0].Err.Error(), "0, 10, 20")
		assert.Zero(t, client.Calls())
		assert.Zero(t, configs.ResolveCalls)
	})

	t.Run("should return one page with the server-reported total", func(t *testing.T) {
		t.Parallel()

		// given — a server holding 5 projects, page at offset 2 with limit 2
		configs, client := newSpies()
		client.Responses[projectsPath] = []*domain.APIResponse{testdoubles.OKResponse(`{
			"size": 5,
			"isLastPage": false,
			"values": [
				{"key": "P3", "id": 3, "name": "P3", "public": true, "type": "NORMAL"},
				{"key": "P4", "id": 4, "name": "P4", "public": false, "type": "NORMAL"}
			],
			"nextPageStart": 4
		}`)}
		lister := tools.NewProjectLister(configs, client)

		// when
		events := testdoubles.CollectEvents(
			lister.Call(context.Background(), []byte(`{"limit": 2, "offset": 2}`)),
		)

		// then
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusDone, terminal.Status)
		result, ok := terminal.Result.(*tools.ProjectListResult)
		require.True(t, ok)
		require.Len(t, result.Values, 2)
		assert.Equal(t, "P3", result.Values[0].Key)
		assert.Equal(t, "P4", result.Values[1].Key)
		assert.Equal(t, 5, result.TotalCount)

		require.Len(t, client.GetCalls, 1)
		assert.Equal(t, "2", client.GetCalls[0].Query.Get("limit"))
		assert.Equal(t, "2", client.GetCalls[0].Query.Get("start"))
	})

	t.Run("should filter by pattern but keep the unfiltered server total", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[projectsPath] = []*domain.APIResponse{testdoubles.OKResponse(`{
			"size": 3,
			"isLastPage": true,
			"values": [
				{"key": "PLAT", "id": 1, "name": "Platform", "public": false, "type": "NORMAL"},
				{"key": "DOCS", "id": 2, "name": "Documentation", "public": true, "type": "NORMAL"},
				{"key": "OPS", "id": 3, "name": "Operations", "description": "platform ops", "public": false, "type": "NORMAL"}
			]
		}`)}
		lister := tools.NewProjectLister(configs, client)

		// when
		events := testdoubles.CollectEvents(
			lister.Call(context.Background(), []byte(`{"pattern": "platform"}`)),
		)

		// then — name and description matches survive, total stays server-reported
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusDone, terminal.Status)
		result := terminal.Result.(*tools.ProjectListResult)
		require.Len(t, result.Values, 2)
		assert.Equal(t, "PLAT", result.Values[0].Key)
		assert.Equal(t, "OPS", result.Values[1].Key)
		assert.Equal(t, 3, result.TotalCount)
	})

	t.Run("should fall back to substring matching for an invalid regex", func(t *testing.T) {
		t.Parallel()

		// given — "(" does not compile as a regex
		configs, client := newSpies()
		client.Responses[projectsPath] = []*domain.APIResponse{testdoubles.OKResponse(`{
			"size": 2,
			"isLastPage": true,
			"values": [
				{"key": "A", "id": 1, "name": "alpha (legacy)", "public": false, "type": "NORMAL"},
				{"key": "B", "id": 2, "name": "beta", "public": false, "type": "NORMAL"}
			]
		}`)}
		lister := tools.NewProjectLister(configs, client)

		// when
		events := testdoubles.CollectEvents(
			lister.Call(context.Background(), []byte(`{"pattern": "("}`)),
		)

		// then — no error, substring match applies
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusDone, terminal.Status)
		result := terminal.Result.(*tools.ProjectListResult)
		require.Len(t, result.Values, 1)
		assert.Equal(t, "A", result.Values[0].Key)
	})

	t.Run("should map a missing description to null", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[projectsPath] = []*domain.APIResponse{testdoubles.OKResponse(`{
			"size": 1,
			"isLastPage": true,
			"values": [{"key": "P", "id": 1, "name": "P", "public": false, "type": "NORMAL"}]
		}`)}
		lister := tools.NewProjectLister(configs, client)

		// when
		events := testdoubles.CollectEvents(lister.Call(context.Background(), []byte(`{}`)))

		// then
		result := testdoubles.Terminal(events).Result.(*tools.ProjectListResult)
		require.Len(t, result.Values, 1)
		assert.Nil(t, result.Values[0].Description)
	})

	t.Run("should use the default limit when none is given", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[projectsPath] = []*domain.APIResponse{testdoubles.OKResponse(
			`{"size": 0, "isLastPage": true, "values": []}`,
		)}
		lister := tools.NewProjectLister(configs, client)

		// when
		testdoubles.CollectEvents(lister.Call(context.Background(), []byte(`{}`)))

		// then
		require.Len(t, client.GetCalls, 1)
		assert.Equal(t, "30", client.GetCalls[0].Query.Get("limit"))
	})

	t.Run("should surface a non-ok response as a transport error", func(t *testing.T) {
		t.Parallel()

		// given
		configs, client := newSpies()
		client.Responses[projectsPath] = []*domain.APIResponse{
			testdoubles.FailedResponse(401, "Unauthorized", "token expired"),
		}
		lister := tools.NewProjectLister(configs, client)

		// when
		events := testdoubles.CollectEvents(lister.Call(context.Background(), []byte(`{}`)))

		// then
		terminal := testdoubles.Terminal(events)
		require.Equal(t, domain.StatusError, terminal.Status)
		var transportErr *domain.TransportError
		require.ErrorAs(t, terminal.Err, &transportErr)
		assert.Equal(t, 401, transportErr.Status)
		assert.Contains(t, terminal.Err.Error(), "token expired")
	})
}
