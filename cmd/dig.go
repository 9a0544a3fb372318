package cmd

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/bbtools/application"
	"github.com/rios0rios0/bbtools/config"
	"github.com/rios0rios0/bbtools/infrastructure/mcpserver"
	"github.com/rios0rios0/bbtools/internal"
)

// loadConfig reads the configuration from --config or the default locations.
func loadConfig() (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.FindConfigFile()
		if err != nil {
			return nil, fmt.Errorf(
				"no config file found: %w\nSpecify one with --config or create bbtools.yaml",
				err,
			)
		}
	}
	return config.Load(cfgPath)
}

func injectToolService(cfg *config.Config) *application.ToolService {
	container := dig.New()

	if err := internal.RegisterProviders(container, cfg); err != nil {
		panic(err)
	}

	var service *application.ToolService
	if err := container.Invoke(func(s *application.ToolService) {
		service = s
	}); err != nil {
		panic(err)
	}

	return service
}

func injectServer(cfg *config.Config) *mcpserver.Server {
	container := dig.New()

	if err := internal.RegisterProviders(container, cfg); err != nil {
		panic(err)
	}

	var server *mcpserver.Server
	if err := container.Invoke(func(s *mcpserver.Server) {
		server = s
	}); err != nil {
		panic(err)
	}

	return server
}
