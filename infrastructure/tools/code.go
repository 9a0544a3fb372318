package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/bbtools/domain"
)

const (
	codeDefaultLimit = 25
	codeMaxLimit     = 100
)

// CodeSearcher runs one indexed code search and applies client-side filters
// by project key, repository slug, and file-path glob.
type CodeSearcher struct {
	builtinTool
	configs domain.ConfigProvider
	client  domain.APIClient
}

// CodeSearcherArgs are the arguments of the code_search tool.
type CodeSearcherArgs struct {
	Query      string `json:"query"`
	Project    string `json:"project"`
	Repository string `json:"repository"`
	FileGlob   string `json:"fileGlob"`
	Limit      int    `json:"limit"`
}

// CodeSearchResult is the terminal payload of code_search. TotalCount is the
// post-filter count and always equals len(Values).
type CodeSearchResult struct {
	Values     []domain.CodeHit `json:"values"`
	TotalCount int              `json:"totalCount"`
}

// NewCodeSearcher creates the code_search tool.
func NewCodeSearcher(configs domain.ConfigProvider, client domain.APIClient) *CodeSearcher {
	return &CodeSearcher{
		builtinTool: builtinTool{
			name: "code_search",
			description: "Search code on the Bitbucket server using the indexed search, " +
				"with optional filters by project key, repository slug, and file glob.",
		},
		configs: configs,
		client:  client,
	}
}

func (t *CodeSearcher) Call(ctx context.Context, arguments json.RawMessage) <-chan domain.Event {
	return invoke(ctx, t.name, func(ctx context.Context, emit *emitter) error {
		var args CodeSearcherArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return domain.NewValidationError("invalid arguments: %v", err)
		}
		if args.Query == "" {
			return domain.NewValidationError("query is required")
		}
		limit := clampLimit(args.Limit, codeDefaultLimit, codeMaxLimit)

		emit.progress(fmt.Sprintf("Searching code for %q...", args.Query))

		config, err := t.configs.Resolve(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve server configuration: %w", err)
		}

		body := searchRequest(args.Query, "code", limit)
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

		if search.Code == nil {
			emit.done(&CodeSearchResult{Values: []domain.CodeHit{}, TotalCount: 0})
			return nil
		}

		values := filterHits(search.Code.Values, args)
		emit.done(&CodeSearchResult{Values: values, TotalCount: len(values)})
		return nil
	})
}

// filterHits applies the client-side filters in order: project key,
// repository slug, file-path glob.
func filterHits(hits []domain.CodeHit, args CodeSearcherArgs) []domain.CodeHit {
	var pathMatcher *regexp.Regexp
	if args.FileGlob != "" {
		pathMatcher = globToRegexp(args.FileGlob)
	}

	filtered := make([]domain.CodeHit, 0, len(hits))
	for _, hit := range hits {
		if args.Project != "" && hit.Repository.Project.Key != args.Project {
			continue
		}
		if args.Repository != "" && hit.Repository.Slug != args.Repository {
			continue
		}
		if pathMatcher != nil && !pathMatcher.MatchString(hit.File) {
			continue
		}
		filtered = append(filtered, hit)
	}
	return filtered
}

// globToRegexp translates a file glob into an anchored regular expression:
// "**" crosses path separators, "*" does not, dots are literal. "**/" also
// matches the empty prefix, so "**/*.go" matches a file at the root.
func globToRegexp(glob string) *regexp.Regexp {
	var expr strings.Builder
	expr.WriteString("^")

	for i := 0; i < len(glob); {
		switch {
		case strings.HasPrefix(glob[i:], "**/"):
			expr.WriteString("(?:.*/)?")
			i += 3
		case strings.HasPrefix(glob[i:], "**"):
			expr.WriteString(".*")
			i += 2
		case glob[i] == '*':
			expr.WriteString("[^/]*")
			i++
		default:
			expr.WriteString(regexp.QuoteMeta(string(glob[i])))
			i++
		}
	}

	expr.WriteString("$")
	return regexp.MustCompile(expr.String())
}
