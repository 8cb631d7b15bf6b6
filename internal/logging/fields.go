package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. viewer_restarted).
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldCommand is the queued command rendered with command.Command.String.
	FieldCommand = "command"
	// FieldDocumentIndex is the manifest index of a document.
	FieldDocumentIndex = "document_index"
	// FieldPage is a zero-based viewer page number.
	FieldPage = "page"
	// FieldPort is a MIDI port name.
	FieldPort = "port"
)
