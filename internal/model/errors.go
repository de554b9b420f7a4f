package model

import "fmt"

// ErrorKind classifies an operation failure.
type ErrorKind string

const (
	// KindConfinement marks a path that resolves outside the reports root.
	// Always rejected, never auto-corrected.
	KindConfinement ErrorKind = "confinement_violation"

	// KindNotFound marks a missing path or unknown report identifier.
	KindNotFound ErrorKind = "not_found"

	// KindNotADirectory marks a listing target that is not a directory.
	KindNotADirectory ErrorKind = "not_a_directory"

	// KindNotAFile marks a read target that is not a regular file.
	KindNotAFile ErrorKind = "not_a_file"

	// KindUnsupportedPattern marks a glob containing the recursive
	// metacharacter, or one that cannot be parsed.
	KindUnsupportedPattern ErrorKind = "unsupported_pattern"

	// KindReadFailure marks an unreadable target for reasons other than
	// absence, e.g. permissions. Decoding problems are absorbed by the
	// lenient read path and never produce this kind.
	KindReadFailure ErrorKind = "read_failure"
)

// OpError is the structured failure every public operation returns instead
// of letting lower-level errors propagate to the transport.
type OpError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *OpError) Error() string { return e.Message }

// Errf builds an OpError with a formatted message.
func Errf(kind ErrorKind, format string, args ...interface{}) *OpError {
	return &OpError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse is the JSON envelope for a failed tool call. Params echoes
// the inputs that produced the failure.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Kind   ErrorKind         `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}
