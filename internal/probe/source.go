// Package probe implements the stream-identification pipeline: magic
// dispatch on first packets, tail-seek duration recovery, and Skeleton
// multi-stream resolution.
package probe

import (
	"github.com/simonhull/oggmeta/internal/types"
)

// Source is the packet-reader collaborator the pipeline consumes.
//
// The canonical implementation is internal/ogg.Reader, but any framing
// layer with the same shape works; tests substitute fakes. The source
// must support random access — purely forward-only inputs cannot serve
// the tail-seek algorithm.
type Source interface {
	// ReadPacket returns the next packet in physical order, or io.EOF
	// at a clean end of the container.
	ReadPacket() (*types.Packet, error)

	// ReadPacketExpected returns the next packet, failing (rather than
	// signaling io.EOF) if the container ends first.
	ReadPacketExpected() (*types.Packet, error)

	// SeekBytes repositions the source to a byte offset interpreted
	// per whence (io.SeekStart, io.SeekCurrent, io.SeekEnd) and
	// returns the absolute position reached.
	SeekBytes(offset int64, whence int) (int64, error)
}

// Config carries the tunable parameters of the pipeline.
//
// The tail windows are empirical: large enough to contain at least one
// page boundary for typical encoder page sizes, with no hard guarantee
// for encoders that pad or leave gaps between pages. Larger windows
// trade extra I/O for a higher duration-recovery success rate.
type Config struct {
	// TailWindow bounds the backward seek for single-stream duration
	// lookups. Zero selects DefaultTailWindow.
	TailWindow int64

	// SkeletonTailWindow bounds the single global backward seek used
	// to finalize multiplexed files. Zero selects
	// DefaultSkeletonTailWindow.
	SkeletonTailWindow int64
}

const (
	// DefaultTailWindow is the default single-stream seek window.
	DefaultTailWindow = 150 * 1024
	// DefaultSkeletonTailWindow is the default multiplexed seek window.
	DefaultSkeletonTailWindow = 200 * 1024
)

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.TailWindow <= 0 {
		c.TailWindow = DefaultTailWindow
	}
	if c.SkeletonTailWindow <= 0 {
		c.SkeletonTailWindow = DefaultSkeletonTailWindow
	}
	return c
}
