package tools

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bbtools/domain"
)

// builtinTool carries the metadata shared by every built-in adapter.
type builtinTool struct {
	name        string
	description string
}

func (t builtinTool) Name() string        { return t.name }
func (t builtinTool) Description() string { return t.description }

// Source marks where the tool comes from; all adapters here are built in.
func (t builtinTool) Source() string { return "builtin" }

// emitter delivers events for one invocation. Delivery is dropped once the
// consumer's context is cancelled, and nothing is delivered after the
// terminal event.
type emitter struct {
	ctx      context.Context
	events   chan<- domain.Event
	terminal bool
}

func (e *emitter) progress(lines ...string) {
	e.deliver(domain.NewProgressEvent(lines...))
}

func (e *emitter) done(result any) {
	e.deliver(domain.NewDoneEvent(result))
	e.terminal = true
}

func (e *emitter) fail(err error) {
	e.deliver(domain.NewErrorEvent(err))
	e.terminal = true
}

func (e *emitter) deliver(event domain.Event) {
	if e.terminal {
		return
	}
	select {
	case e.events <- event:
	case <-e.ctx.Done():
	}
}

// invoke runs one adapter body on its own goroutine and enforces the event
// protocol: a run that returns an error without having emitted a terminal
// event produces a single error event, and a panic never crosses the
// invocation boundary.
func invoke(
	ctx context.Context,
	name string,
	run func(ctx context.Context, emit *emitter) error,
) <-chan domain.Event {
	events := make(chan domain.Event)

	go func() {
		defer close(events)
		emit := &emitter{ctx: ctx, events: events}

		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("Tool %q panicked: %v", name, r)
				emit.fail(fmt.Errorf("unexpected failure in %s: %v", name, r))
			}
		}()

		if err := run(ctx, emit); err != nil {
			emit.fail(err)
		}
	}()

	return events
}

// clampLimit applies the published bounds of the limit argument: zero falls
// back to the default, anything above the ceiling is capped.
func clampLimit(limit, fallback, ceiling int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
