package semconv

// Session
const (
	// Unique ID of a driving session. Every `lox` invocation creates one, the
	// interactive prompt keeps it for all lines.
	SessionID = "session_id"

	// Whether the session runs a file or the interactive prompt.
	SessionMode = "session_mode"
)

// Source
const (
	// Path of the source file, empty for prompt input.
	SourceFile = "source_file"

	// Number of the line read by the interactive prompt, starting at 1.
	PromptLine = "prompt_line"
)

// Front end
const (
	TokenCount = "token_count"

	DiagnosticCount = "diagnostic_count"
)
