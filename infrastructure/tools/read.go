package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rios0rios0/bbtools/domain"
)

// FileReader fetches a file from the default branch of a repository and
// returns its content with line numbers.
type FileReader struct {
	builtinTool
	configs domain.ConfigProvider
	client  domain.APIClient
}

// FileReaderArgs are the arguments of the bitbucket_read tool. ReadRange is
// a [start, end] pair of 1-indexed inclusive line numbers.
type FileReaderArgs struct {
	Project    string `json:"project"`
	Repository string `json:"repository"`
	Path       string `json:"path"`
	ReadRange  []int  `json:"read_range"`
}

// FileReadResult is the terminal payload of bitbucket_read.
type FileReadResult struct {
	AbsolutePath string `json:"absolutePath"`
	Content      string `json:"content"`
	ContentURL   string `json:"contentUrl,omitempty"`
}

// NewFileReader creates the bitbucket_read tool.
func NewFileReader(configs domain.ConfigProvider, client domain.APIClient) *FileReader {
	return &FileReader{
		builtinTool: builtinTool{
			name: "bitbucket_read",
			description: "Read a file from the default branch of a repository, " +
				"optionally restricted to a 1-indexed inclusive line range.",
		},
		configs: configs,
		client:  client,
	}
}

func (t *FileReader) Call(ctx context.Context, arguments json.RawMessage) <-chan domain.Event {
	return invoke(ctx, t.name, func(ctx context.Context, emit *emitter) error {
		var args FileReaderArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return domain.NewValidationError("invalid arguments: %v", err)
		}
		if args.Project == "" || args.Repository == "" || args.Path == "" {
			return domain.NewValidationError("project, repository, and path are required")
		}
		if len(args.ReadRange) != 0 && len(args.ReadRange) != 2 {
			return domain.NewValidationError("read_range must be a [start, end] pair")
		}

		path := normalizePath(args.Path, args.Project, args.Repository)

		emit.progress(fmt.Sprintf("Reading %s/%s/%s...", args.Project, args.Repository, path))

		config, err := t.configs.Resolve(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve server configuration: %w", err)
		}

		endpoint := fmt.Sprintf(
			"rest/api/latest/projects/%s/repos/%s/raw/%s",
			url.PathEscape(args.Project), url.PathEscape(args.Repository), escapePath(path),
		)
		response, err := t.client.Get(ctx, config, endpoint, url.Values{"at": {"HEAD"}})
		if err != nil {
			return err
		}
		if !response.OK {
			return domain.NewTransportError(response)
		}

		emit.done(&FileReadResult{
			AbsolutePath: fileID(args.Project, args.Repository, path),
			Content:      numberLines(response.Text, args.ReadRange),
		})
		return nil
	})
}

// normalizePath turns the accepted path spellings into a repository-relative
// path: a file:// scheme, a leading /{project}/{repository}/ segment, and any
// remaining leading slash are stripped, in that order.
func normalizePath(path, project, repository string) string {
	path = strings.TrimPrefix(path, "file://")
	path = strings.TrimPrefix(path, "/"+project+"/"+repository+"/")
	return strings.TrimLeft(path, "/")
}

// numberLines prefixes each selected line with "{n}: " and joins them with
// newlines. The range is clamped to [1, line count]; an empty range selects
// the whole file.
func numberLines(content string, readRange []int) string {
	lines := strings.Split(content, "\n")

	start, end := 1, len(lines)
	if len(readRange) == 2 {
		if readRange[0] > start {
			start = readRange[0]
		}
		if readRange[1] < end {
			end = readRange[1]
		}
	}

	var numbered []string
	for i := start; i <= end; i++ {
		numbered = append(numbered, fmt.Sprintf("%d: %s", i, lines[i-1]))
	}
	return strings.Join(numbered, "\n")
}
