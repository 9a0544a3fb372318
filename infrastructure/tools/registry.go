package tools

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/rios0rios0/bbtools/domain"
)

// Tool is a built-in adapter together with the metadata the host framework
// publishes for it.
type Tool interface {
	domain.Tool
	Source() string
	InputSchema() *jsonschema.Schema
}

// Registry holds the registered tools by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool under its own name.
func (r *Registry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get returns the tool registered under the given name.
func (r *Registry) Get(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %q", name)
	}
	return tool, nil
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	all := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.tools[name])
	}
	return all
}

// NewDefaultRegistry registers the five built-in Bitbucket tools.
func NewDefaultRegistry(configs domain.ConfigProvider, client domain.APIClient) *Registry {
	registry := NewRegistry()
	registry.Register(NewProjectLister(configs, client))
	registry.Register(NewRepositorySearcher(configs, client))
	registry.Register(NewCodeSearcher(configs, client))
	registry.Register(NewFileReader(configs, client))
	registry.Register(NewTreeGlobber(configs, client))
	return registry
}
