// Package usersink forwards flatten run events to a go-users ActivitySink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-flatten/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// DefaultActor is recorded when an event carries no parseable actor,
	// e.g. runs started from the command line.
	DefaultActor uuid.UUID
}

// Notify maps event into an ActivityRecord. Events that are incomplete after
// normalization are skipped.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	actor := parseUUID(normalized.ActorID)
	if actor == uuid.Nil {
		actor = h.DefaultActor
	}

	data := make(map[string]any, len(normalized.Metadata)+1)
	for key, value := range normalized.Metadata {
		data[key] = value
	}
	if normalized.ObjectType == activity.ObjectTypeRun {
		data["run_id"] = normalized.ObjectID
	}

	return h.Sink.Log(ctx, usertypes.ActivityRecord{
		ActorID:    actor,
		UserID:     parseUUID(normalized.UserID),
		TenantID:   parseUUID(normalized.TenantID),
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       data,
		OccurredAt: normalized.OccurredAt,
	})
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
