package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bbtools/domain"
)

const (
	globDefaultLimit = 100
	browsePageSize   = 1000
)

// TreeGlobber enumerates the file tree of a repository and returns the files
// matching a glob pattern, as canonical file identifiers.
type TreeGlobber struct {
	builtinTool
	configs domain.ConfigProvider
	client  domain.APIClient
}

// TreeGlobberArgs are the arguments of the bitbucket_glob tool. A nil Limit
// means the default; an explicit zero disables the limit.
type TreeGlobberArgs struct {
	Project     string `json:"project"`
	Repository  string `json:"repository"`
	FilePattern string `json:"filePattern"`
	Limit       *int   `json:"limit"`
	Offset      int    `json:"offset"`
}

// NewTreeGlobber creates the bitbucket_glob tool.
func NewTreeGlobber(configs domain.ConfigProvider, client domain.APIClient) *TreeGlobber {
	return &TreeGlobber{
		builtinTool: builtinTool{
			name: "bitbucket_glob",
			description: "Find files in a repository matching a glob pattern " +
				"(*, **, braces, and brackets), paginated with limit and offset.",
		},
		configs: configs,
		client:  client,
	}
}

func (t *TreeGlobber) Call(ctx context.Context, arguments json.RawMessage) <-chan domain.Event {
	return invoke(ctx, t.name, func(ctx context.Context, emit *emitter) error {
		var args TreeGlobberArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return domain.NewValidationError("invalid arguments: %v", err)
		}
		if args.Project == "" || args.Repository == "" || args.FilePattern == "" {
			return domain.NewValidationError("project, repository, and filePattern are required")
		}
		if !doublestar.ValidatePattern(args.FilePattern) {
			return domain.NewValidationError("invalid glob pattern %q", args.FilePattern)
		}
		if args.Offset < 0 {
			return domain.NewValidationError("offset must not be negative")
		}

		limit := globDefaultLimit
		if args.Limit != nil {
			limit = *args.Limit
		}

		emit.progress(fmt.Sprintf(
			"Enumerating files in %s/%s...", args.Project, args.Repository,
		))

		config, err := t.configs.Resolve(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve server configuration: %w", err)
		}

		files, err := t.walkTree(ctx, config, args.Project, args.Repository)
		if err != nil {
			return err
		}

		var matched []string
		for _, file := range files {
			if ok, _ := doublestar.Match(args.FilePattern, file); ok {
				matched = append(matched, file)
			}
		}

		matched = slicePage(matched, args.Offset, limit)

		identifiers := make([]string, 0, len(matched))
		for _, file := range matched {
			identifiers = append(identifiers, fileID(args.Project, args.Repository, file))
		}

		emit.done(identifiers)
		return nil
	})
}

// browseFrame is one directory being traversed: the entries of the current
// page still to visit, plus the paging cursor for the next fetch.
type browseFrame struct {
	path    string
	pending []domain.FileTreeEntry
	cursor  int
	last    bool
}

// walkTree enumerates every file in the repository depth-first, in server
// order, using an explicit frame stack. A directory whose page fetch fails
// is skipped; its already-visited entries stay in the result.
func (t *TreeGlobber) walkTree(
	ctx context.Context, config domain.ServerConfig, project, repository string,
) ([]string, error) {
	var files []string
	stack := []*browseFrame{{path: ""}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]

		if len(top.pending) == 0 {
			if top.last {
				stack = stack[:len(stack)-1]
				continue
			}

			children, err := t.fetchChildren(ctx, config, project, repository, top.path, top.cursor)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				logger.Debugf(
					"Skipping inaccessible directory %q in %s/%s: %v",
					top.path, project, repository, err,
				)
				stack = stack[:len(stack)-1]
				continue
			}

			top.pending = children.Values
			top.last = children.IsLastPage
			if children.NextPageStart != nil {
				top.cursor = *children.NextPageStart
			} else {
				top.last = true
			}
			continue
		}

		entry := top.pending[0]
		top.pending = top.pending[1:]

		entryPath := strings.Join(entry.Path.Components, "/")
		if top.path != "" {
			entryPath = top.path + "/" + entryPath
		}

		switch entry.Type {
		case domain.EntryTypeFile:
			files = append(files, entryPath)
		case domain.EntryTypeDirectory:
			stack = append(stack, &browseFrame{path: entryPath})
		}
	}

	return files, nil
}

func (t *TreeGlobber) fetchChildren(
	ctx context.Context, config domain.ServerConfig,
	project, repository, path string, cursor int,
) (*domain.BrowseChildren, error) {
	endpoint := fmt.Sprintf(
		"rest/api/latest/projects/%s/repos/%s/browse",
		url.PathEscape(project), url.PathEscape(repository),
	)
	if path != "" {
		endpoint += "/" + escapePath(path)
	}

	query := url.Values{
		"limit": {strconv.Itoa(browsePageSize)},
		"start": {strconv.Itoa(cursor)},
	}
	response, err := t.client.Get(ctx, config, endpoint, query)
	if err != nil {
		return nil, err
	}
	if !response.OK || response.Data == nil {
		return nil, domain.NewTransportError(response)
	}

	var page domain.BrowsePage
	if unmarshalErr := json.Unmarshal(response.Data, &page); unmarshalErr != nil {
		return nil, domain.NewTransportError(response)
	}
	if page.Children == nil {
		return nil, domain.NewTransportError(response)
	}

	return page.Children, nil
}

// slicePage returns matched[offset : offset+limit]; a zero limit means
// everything from offset on.
func slicePage(matched []string, offset, limit int) []string {
	if offset >= len(matched) {
		return nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}
