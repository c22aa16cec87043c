package ir

// Version constants for persisted records.
const (
	// SchemaVersion is the version of the record layout.
	SchemaVersion = "1"

	// EngineVersion is the bracket engine version.
	EngineVersion = "0.1.0"
)
