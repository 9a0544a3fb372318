package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/bbtools/application"
	"github.com/rios0rios0/bbtools/config"
	"github.com/rios0rios0/bbtools/domain"
	"github.com/rios0rios0/bbtools/infrastructure/bitbucket"
	"github.com/rios0rios0/bbtools/infrastructure/mcpserver"
	"github.com/rios0rios0/bbtools/infrastructure/tools"
)

// RegisterProviders registers all providers with the DIG container,
// bottom-up: config -> client -> tools -> service/server.
func RegisterProviders(container *dig.Container, cfg *config.Config) error {
	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return err
	}
	if err := container.Provide(
		config.NewStaticProvider, dig.As(new(domain.ConfigProvider)),
	); err != nil {
		return err
	}
	if err := container.Provide(
		bitbucket.NewClient, dig.As(new(domain.APIClient)),
	); err != nil {
		return err
	}
	if err := container.Provide(tools.NewDefaultRegistry); err != nil {
		return err
	}
	if err := container.Provide(application.NewToolService); err != nil {
		return err
	}
	if err := container.Provide(mcpserver.NewServer); err != nil {
		return err
	}

	return nil
}
