//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/bbtools/domain"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	id      int
	name    string
	slug    string
	project domain.Project
	state   string
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		name:        "test-repo",
		slug:        "test-repo",
		project:     NewProjectBuilder().BuildProject(),
		state:       "AVAILABLE",
	}
}

// WithID sets the repository id.
func (b *RepositoryBuilder) WithID(id int) *RepositoryBuilder {
	b.id = id
	return b
}

// WithName sets the repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithSlug sets the repository slug.
func (b *RepositoryBuilder) WithSlug(slug string) *RepositoryBuilder {
	b.slug = slug
	return b
}

// WithProject sets the owning project.
func (b *RepositoryBuilder) WithProject(project domain.Project) *RepositoryBuilder {
	b.project = project
	return b
}

// WithProjectKey sets the owning project by key only.
func (b *RepositoryBuilder) WithProjectKey(key string) *RepositoryBuilder {
	b.project = NewProjectBuilder().WithKey(key).BuildProject()
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() domain.Repository {
	return domain.Repository{
		ID:       b.id,
		Name:     b.name,
		Slug:     b.slug,
		Project:  b.project,
		ScmID:    "git",
		State:    b.state,
		Forkable: true,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.name = "test-repo"
	b.slug = "test-repo"
	b.project = NewProjectBuilder().BuildProject()
	b.state = "AVAILABLE"
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		name:        b.name,
		slug:        b.slug,
		project:     b.project,
		state:       b.state,
	}
}
