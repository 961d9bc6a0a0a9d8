package oggmeta

import (
	"github.com/simonhull/oggmeta/internal/types"
)

// UnrecognizedFormatError is an alias to types.UnrecognizedFormatError.
// Returned for structurally readable but invalid or unsupported codec
// headers: unclaimed magic sequences at the API boundary, bad version
// fields, nested Skeleton streams.
type UnrecognizedFormatError = types.UnrecognizedFormatError

// ReadError is an alias to types.ReadError. Wraps I/O failures from the
// underlying byte source; use errors.As to recover it and Unwrap to
// reach the native error.
type ReadError = types.ReadError

// Warning is an alias to types.Warning. Warnings report degraded
// results (absent or clamped durations) that did not fail the probe.
type Warning = types.Warning
