package activity

import (
	"context"
	"strings"
)

// DefaultChannel is applied to events emitted without a channel.
const DefaultChannel = "flatten"

// Config controls emission defaults.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter forwards events to hooks, applying Config defaults.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
}

// NewEmitter constructs an emitter. Nil hooks are dropped and an emitter
// without hooks is disabled regardless of cfg.Enabled.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	var kept Hooks
	for _, hook := range hooks {
		if hook != nil {
			kept = append(kept, hook)
		}
	}
	return &Emitter{
		hooks:   kept,
		enabled: cfg.Enabled && len(kept) > 0,
		channel: channel,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit forwards event to all hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	return e.hooks.Notify(ctx, event)
}
