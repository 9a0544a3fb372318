package config

import (
	"context"
	"strings"

	"github.com/rios0rios0/bbtools/domain"
)

// StaticProvider serves the server configuration loaded at startup.
type StaticProvider struct {
	server domain.ServerConfig
}

// NewStaticProvider builds a provider from a loaded configuration. The base
// URL is normalized to carry no trailing slash.
func NewStaticProvider(cfg *Config) *StaticProvider {
	return &StaticProvider{
		server: domain.ServerConfig{
			BaseURL: strings.TrimRight(cfg.Server.BaseURL, "/"),
			Token:   cfg.Server.Token,
		},
	}
}

func (p *StaticProvider) Resolve(ctx context.Context) (domain.ServerConfig, error) {
	if err := ctx.Err(); err != nil {
		return domain.ServerConfig{}, err
	}
	return p.server, nil
}
