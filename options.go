package oggmeta

import (
	"github.com/simonhull/oggmeta/internal/probe"
)

// Option configures probing behavior.
//
// Options use the functional options pattern:
//
//	file, err := oggmeta.Probe("movie.ogv",
//	    oggmeta.WithTailWindow(512*1024),
//	    oggmeta.WithStrict(),
//	)
type Option func(*probeOptions)

// probeOptions holds configuration for a probe.
type probeOptions struct {
	config probe.Config
	strict bool // Fail on any warning
}

// defaultOptions returns the default configuration.
func defaultOptions() *probeOptions {
	return &probeOptions{}
}

// WithTailWindow sets the backward seek window, in bytes, used to
// recover the duration of single-stream files.
//
// The default is 150 KiB, empirically large enough to contain a page
// boundary for typical encoder page sizes. Raise it for files with
// padded or sparse tails at the cost of extra I/O; durations that fall
// outside the window are reported as absent, never wrong.
func WithTailWindow(bytes int64) Option {
	return func(o *probeOptions) {
		o.config.TailWindow = bytes
	}
}

// WithSkeletonTailWindow sets the backward seek window, in bytes, used
// to finalize multiplexed (Skeleton) files. The default is 200 KiB.
func WithSkeletonTailWindow(bytes int64) Option {
	return func(o *probeOptions) {
		o.config.SkeletonTailWindow = bytes
	}
}

// WithStrict treats any warning as a fatal error.
//
// By default oggmeta degrades gracefully: a duration that cannot be
// recovered within the tail window produces a warning alongside the
// partial result. With strict probing enabled, any warning fails the
// probe.
func WithStrict() Option {
	return func(o *probeOptions) {
		o.strict = true
	}
}
