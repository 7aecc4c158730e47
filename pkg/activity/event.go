// Package activity fans out audit events describing flatten runs to
// pluggable hooks.
package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event describes one audited occurrence. IDs are plain strings so call
// sites are not tied to a UUID type.
type Event struct {
	Verb       string
	ActorID    string
	UserID     string
	TenantID   string
	ObjectType string
	ObjectID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// valid reports whether the event names what happened to which object.
func (e Event) valid() bool {
	return e.Verb != "" && e.ObjectType != "" && e.ObjectID != ""
}

// ActivityHook receives normalized events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []ActivityHook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify normalizes event and forwards it to every hook. Events missing a
// verb, object type or object id are dropped silently. Hook errors are
// joined.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := NormalizeEvent(event)
	if !normalized.valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims identifiers, detaches metadata from the caller and
// stamps OccurredAt when unset.
func NormalizeEvent(event Event) Event {
	normalized := event
	for _, field := range []*string{
		&normalized.Verb,
		&normalized.ActorID,
		&normalized.UserID,
		&normalized.TenantID,
		&normalized.ObjectType,
		&normalized.ObjectID,
		&normalized.Channel,
	} {
		*field = strings.TrimSpace(*field)
	}
	normalized.Metadata = cloneMap(event.Metadata)
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
