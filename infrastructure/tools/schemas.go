package tools

import "github.com/google/jsonschema-go/jsonschema"

func (t *ProjectLister) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"pattern": {
				Type:        "string",
				Description: "Regex (falls back to substring) matched against project name, key, and description",
			},
			"limit": {
				Type:        "integer",
				Description: "Page size, 1-100 (default 30)",
			},
			"offset": {
				Type:        "integer",
				Description: "Page start, must be a multiple of limit (default 0)",
			},
		},
	}
}

func (t *RepositorySearcher) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Search query",
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum results, 1-100 (default 30)",
			},
		},
		Required: []string{"query"},
	}
}

func (t *CodeSearcher) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Search query",
			},
			"project": {
				Type:        "string",
				Description: "Restrict results to this project key",
			},
			"repository": {
				Type:        "string",
				Description: "Restrict results to this repository slug",
			},
			"fileGlob": {
				Type:        "string",
				Description: "Restrict results to file paths matching this glob (e.g. \"**/*.go\")",
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum results, 1-100 (default 25)",
			},
		},
		Required: []string{"query"},
	}
}

func (t *FileReader) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"project": {
				Type:        "string",
				Description: "Project key",
			},
			"repository": {
				Type:        "string",
				Description: "Repository slug",
			},
			"path": {
				Type:        "string",
				Description: "File path within the repository",
			},
			"read_range": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "integer"},
				Description: "Optional [start, end] line range, 1-indexed inclusive",
			},
		},
		Required: []string{"project", "repository", "path"},
	}
}

func (t *TreeGlobber) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"project": {
				Type:        "string",
				Description: "Project key",
			},
			"repository": {
				Type:        "string",
				Description: "Repository slug",
			},
			"filePattern": {
				Type:        "string",
				Description: "Glob pattern matched against repository-relative file paths",
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum results (default 100, 0 for unlimited)",
			},
			"offset": {
				Type:        "integer",
				Description: "Number of matches to skip (default 0)",
			},
		},
		Required: []string{"project", "repository", "filePattern"},
	}
}
