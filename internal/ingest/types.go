package ingest

// OutputMode selects how the external tool serializes the repository.
type OutputMode string

const (
	// ModeFullText serializes every (non-ignored) file in the repository.
	ModeFullText OutputMode = "full-text"

	// ModeSelectedFiles serializes only the files named by the request's
	// Selection filter.
	ModeSelectedFiles OutputMode = "selected-files"
)

// TransformOptions are caller-supplied content transforms. Pointer booleans
// distinguish "explicitly set" from "absent": a nil field leaves the tool's
// default in place.
type TransformOptions struct {
	Compress         *bool
	RemoveComments   *bool
	RemoveEmptyLines *bool
}

// Request describes one ingestion. Immutable once accepted; each request is
// owned exclusively by one in-flight pipeline.
type Request struct {
	// Reference is the URL of the remote repository to ingest.
	Reference string

	// Mode selects full-text or selected-files output.
	Mode OutputMode

	// Selection is the comma-delimited include filter for ModeSelectedFiles.
	// It is passed through to the tool verbatim; the tool owns interpretation.
	Selection string

	// Transform holds the content transform options.
	Transform TransformOptions
}

// ProcessResult is the outcome of one external tool invocation.
type ProcessResult struct {
	ExitCode int
	Stderr   string
	TimedOut bool
}

// Result is the materialized ingestion output returned to the caller.
type Result struct {
	OutputPath string
	Content    string
}
