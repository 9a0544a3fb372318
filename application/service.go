package application

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bbtools/domain"
	"github.com/rios0rios0/bbtools/infrastructure/tools"
)

// ErrNoTerminalEvent reports an invocation that ended without a done or
// error event, which only happens when the context is cancelled first.
var ErrNoTerminalEvent = errors.New("invocation ended without a terminal event")

// ToolService invokes registered tools and collapses their event sequence
// into a single outcome.
type ToolService struct {
	registry *tools.Registry
}

// NewToolService creates a service over the given registry.
func NewToolService(registry *tools.Registry) *ToolService {
	return &ToolService{registry: registry}
}

// Invoke runs the named tool to completion. Progress lines are logged as
// they arrive; the terminal event's result or error is returned.
func (s *ToolService) Invoke(
	ctx context.Context, name string, arguments []byte,
) (any, error) {
	tool, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	logger.Infof("Invoking tool %q", name)

	for event := range tool.Call(ctx, arguments) {
		switch event.Status {
		case domain.StatusInProgress:
			for _, line := range event.Progress {
				logger.Debugf("[%s] %s", name, line)
			}
		case domain.StatusDone:
			return event.Result, nil
		case domain.StatusError:
			logger.Errorf("Tool %q failed: %v", name, event.Err)
			return nil, event.Err
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return nil, ErrNoTerminalEvent
}

// Describe returns the name, description, and source of every registered
// tool in registration order.
func (s *ToolService) Describe() []ToolInfo {
	all := s.registry.All()
	infos := make([]ToolInfo, 0, len(all))
	for _, tool := range all {
		infos = append(infos, ToolInfo{
			Name:        tool.Name(),
			Description: tool.Description(),
			Source:      tool.Source(),
		})
	}
	return infos
}

// ToolInfo is the published metadata of one registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}
