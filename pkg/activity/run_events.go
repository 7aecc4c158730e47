package activity

import (
	"strings"
	"time"
)

const (
	// VerbRecordsExpanded is emitted once per finished Records run.
	VerbRecordsExpanded = "records.expanded"
	// VerbRecordsWritten is emitted after a sink accepted records.
	VerbRecordsWritten = "records.written"

	// ObjectTypeRun identifies a Records run; its object id is the run id.
	ObjectTypeRun = "flatten.run"
)

// RunEventInput describes a Records run.
type RunEventInput struct {
	RunID        string
	ActorID      string
	UserID       string
	TenantID     string
	Channel      string
	Separator    string
	ListPolicy   string
	ExplodePaths []string
	Filter       string
	Candidates   int
	Records      int
	// Destination names the sink target for VerbRecordsWritten events.
	Destination string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// BuildRecordsExpandedEvent describes a run that produced records.
func BuildRecordsExpandedEvent(input RunEventInput) Event {
	return buildRunEvent(VerbRecordsExpanded, input)
}

// BuildRecordsWrittenEvent describes records handed to a sink.
func BuildRecordsWrittenEvent(input RunEventInput) Event {
	return buildRunEvent(VerbRecordsWritten, input)
}

func buildRunEvent(verb string, input RunEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["candidates"] = input.Candidates
	metadata["records"] = input.Records
	if input.Separator != "" {
		metadata["separator"] = input.Separator
	}
	if input.ListPolicy != "" {
		metadata["list_policy"] = input.ListPolicy
	}
	if len(input.ExplodePaths) > 0 {
		metadata["explode_paths"] = append([]string{}, input.ExplodePaths...)
	}
	if input.Filter != "" {
		metadata["filter"] = input.Filter
	}
	if input.Destination != "" {
		metadata["destination"] = input.Destination
	}

	objectID := strings.TrimSpace(input.RunID)
	if objectID == "" {
		objectID = ObjectTypeRun
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeRun,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
