//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/bbtools/domain"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ProjectBuilder helps create test projects with a fluent interface.
type ProjectBuilder struct {
	*testkit.BaseBuilder
	key         string
	id          int
	name        string
	description *string
	public      bool
	projectType string
}

// NewProjectBuilder creates a new project builder with sensible defaults.
func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		key:         "PROJ",
		id:          1,
		name:        "Test Project",
		public:      false,
		projectType: "NORMAL",
	}
}

// WithKey sets the project key.
func (b *ProjectBuilder) WithKey(key string) *ProjectBuilder {
	b.key = key
	return b
}

// WithID sets the project id.
func (b *ProjectBuilder) WithID(id int) *ProjectBuilder {
	b.id = id
	return b
}

// WithName sets the project name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.name = name
	return b
}

// WithDescription sets the project description.
func (b *ProjectBuilder) WithDescription(description string) *ProjectBuilder {
	b.description = &description
	return b
}

// WithPublic sets whether the project is public.
func (b *ProjectBuilder) WithPublic(public bool) *ProjectBuilder {
	b.public = public
	return b
}

// Build creates the project (satisfies testkit.Builder interface).
func (b *ProjectBuilder) Build() interface{} {
	return b.BuildProject()
}

// BuildProject creates the project with a concrete return type.
func (b *ProjectBuilder) BuildProject() domain.Project {
	return domain.Project{
		Key:         b.key,
		ID:          b.id,
		Name:        b.name,
		Description: b.description,
		Public:      b.public,
		Type:        b.projectType,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.key = "PROJ"
	b.id = 1
	b.name = "Test Project"
	b.description = nil
	b.public = false
	b.projectType = "NORMAL"
	return b
}

// Clone creates a deep copy of the ProjectBuilder.
func (b *ProjectBuilder) Clone() testkit.Builder {
	clone := &ProjectBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		key:         b.key,
		id:          b.id,
		name:        b.name,
		public:      b.public,
		projectType: b.projectType,
	}
	if b.description != nil {
		description := *b.description
		clone.description = &description
	}
	return clone
}
