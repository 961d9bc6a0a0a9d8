// Package types defines the shared data model for Ogg stream probing.
package types

// Codec identifies the codec carried by a logical Ogg stream.
//
// The set is closed: values are only produced by magic-byte dispatch.
// CodecUnknown is the explicit fallback for unmatched magics.
type Codec int

const (
	// CodecUnknown represents an unrecognized codec.
	CodecUnknown Codec = iota
	// CodecVorbis represents the Vorbis audio codec.
	CodecVorbis
	// CodecOpus represents the Opus audio codec (RFC 7845 encapsulation).
	CodecOpus
	// CodecTheora represents the Theora video codec.
	CodecTheora
	// CodecSpeex represents the Speex audio codec.
	CodecSpeex
	// CodecSkeleton represents an Ogg Skeleton structure stream.
	CodecSkeleton
)

// String returns the human-readable codec name.
func (c Codec) String() string {
	switch c {
	case CodecVorbis:
		return "Vorbis"
	case CodecOpus:
		return "Opus"
	case CodecTheora:
		return "Theora"
	case CodecSpeex:
		return "Speex"
	case CodecSkeleton:
		return "Skeleton"
	case CodecUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}
