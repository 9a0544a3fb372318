package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bbtools/domain"
)

const (
	projectsDefaultLimit = 30
	projectsMaxLimit     = 100
)

// ProjectLister lists one page of projects, optionally filtered by a
// case-insensitive pattern over name, key, and description.
type ProjectLister struct {
	builtinTool
	configs domain.ConfigProvider
	client  domain.APIClient
}

// ProjectListerArgs are the arguments of the list_projects tool.
type ProjectListerArgs struct {
	Pattern string `json:"pattern"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

// ProjectSummary is one element of the list_projects result.
type ProjectSummary struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"isPublic"`
	Type        string  `json:"type"`
}

// ProjectListResult is the terminal payload of list_projects. TotalCount is
// the server-reported page size, not the filtered length.
type ProjectListResult struct {
	Values     []ProjectSummary `json:"values"`
	TotalCount int              `json:"totalCount"`
}

// NewProjectLister creates the list_projects tool.
func NewProjectLister(configs domain.ConfigProvider, client domain.APIClient) *ProjectLister {
	return &ProjectLister{
		builtinTool: builtinTool{
			name: "list_projects",
			description: "List projects on the Bitbucket server, " +
				"optionally filtered by a pattern matched against name, key, and description.",
		},
		configs: configs,
		client:  client,
	}
}

func (t *ProjectLister) Call(ctx context.Context, arguments json.RawMessage) <-chan domain.Event {
	return invoke(ctx, t.name, func(ctx context.Context, emit *emitter) error {
		var args ProjectListerArgs
		if err := json.Unmarshal(arguments, &args); err != nil {
			return domain.NewValidationError("invalid arguments: %v", err)
		}

		limit := clampLimit(args.Limit, projectsDefaultLimit, projectsMaxLimit)
		if args.Offset < 0 || args.Offset%limit != 0 {
			return domain.NewValidationError(
				"offset must be a multiple of limit (valid offsets: 0, %d, %d, ...)",
				limit, 2*limit,
			)
		}

		emit.progress(fmt.Sprintf("Listing projects (limit %d, offset %d)...", limit, args.Offset))

		config, err := t.configs.Resolve(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve server configuration: %w", err)
		}

		query := url.Values{
			"limit": {strconv.Itoa(limit)},
			"start": {strconv.Itoa(args.Offset)},
		}
		response, err := t.client.Get(ctx, config, "rest/api/latest/projects", query)
		if err != nil {
			return err
		}
		if !response.OK || response.Data == nil {
			return domain.NewTransportError(response)
		}

		var page domain.ProjectPage
		if unmarshalErr := json.Unmarshal(response.Data, &page); unmarshalErr != nil {
			return domain.NewTransportError(response)
		}

		projects := filterProjects(page.Values, args.Pattern)

		values := make([]ProjectSummary, 0, len(projects))
		for _, project := range projects {
			values = append(values, ProjectSummary{
				Key:         project.Key,
				Name:        project.Name,
				Description: project.Description,
				IsPublic:    project.Public,
				Type:        project.Type,
			})
		}

		totalCount := len(values)
		if page.Size != nil {
			totalCount = *page.Size
		}

		emit.done(&ProjectListResult{Values: values, TotalCount: totalCount})
		return nil
	})
}

// filterProjects keeps projects whose name, key, or description matches the
// pattern as a case-insensitive regular expression. A pattern that does not
// compile degrades to a case-insensitive substring match, never to an error.
func filterProjects(projects []domain.Project, pattern string) []domain.Project {
	if pattern == "" {
		return projects
	}

	var matches func(string) bool
	if expr, err := regexp.Compile("(?i)" + pattern); err == nil {
		matches = expr.MatchString
	} else {
		logger.Debugf("Pattern %q is not a valid regex, falling back to substring match", pattern)
		needle := strings.ToLower(pattern)
		matches = func(field string) bool {
			return strings.Contains(strings.ToLower(field), needle)
		}
	}

	var filtered []domain.Project
	for _, project := range projects {
		description := ""
		if project.Description != nil {
			description = *project.Description
		}
		if matches(project.Name) || matches(project.Key) || matches(description) {
			filtered = append(filtered, project)
		}
	}
	return filtered
}
