package config

import "strings"

// SourceLevel ranks where a setting came from. Higher levels override lower
// ones.
type SourceLevel int

const (
	SourceUnknown SourceLevel = iota
	SourceDefaults
	SourceFile
	SourceEnv
	SourceFlags
)

func (l SourceLevel) String() string {
	switch l {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// ParseSourceLevel is case-insensitive and returns SourceUnknown for
// unrecognised names.
func ParseSourceLevel(value string) SourceLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "defaults":
		return SourceDefaults
	case "file":
		return SourceFile
	case "env":
		return SourceEnv
	case "flags":
		return SourceFlags
	default:
		return SourceUnknown
	}
}

// SourcedLayer pairs a layer with the source that produced it.
type SourcedLayer struct {
	Source SourceLevel
	Layer  Layer
}
