package types

import "fmt"

// UnrecognizedFormatError is returned when a stream is structurally
// readable but carries an unknown or invalid codec header: a magic
// sequence no parser claims, an unsupported version field, or a nested
// Skeleton stream.
type UnrecognizedFormatError struct {
	Reason string
}

func (e *UnrecognizedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unrecognized format: %s", e.Reason)
	}
	return "unrecognized or invalid format"
}

// ReadError is returned when the underlying byte source fails. It wraps
// the collaborator's native error.
type ReadError struct {
	// Op names the operation that failed ("read packet", "seek", ...).
	Op string
	// Err is the underlying error.
	Err error
}

func (e *ReadError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("read error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error { return e.Err }

// Warning represents a non-fatal issue encountered while probing.
//
// Warnings indicate degraded results rather than failures: a duration
// that could not be recovered within the tail window, or an Opus
// granule position smaller than the header's pre-skip. They are
// collected in File.Warnings.
type Warning struct {
	// Stage where the warning occurred ("duration", "resolve")
	Stage string

	// Warning message
	Message string

	// Serial of the affected logical stream (0 if not applicable)
	Serial uint32
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Serial != 0 {
		return fmt.Sprintf("%s (stream %d): %s", w.Stage, w.Serial, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
