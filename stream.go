package oggmeta

import (
	"github.com/simonhull/oggmeta/internal/types"
)

// Codec is an alias to types.Codec.
// Re-exporting from internal/types to keep the data model in one place.
type Codec = types.Codec

// Re-export all codec constants.
const (
	CodecUnknown  = types.CodecUnknown
	CodecVorbis   = types.CodecVorbis
	CodecOpus     = types.CodecOpus
	CodecTheora   = types.CodecTheora
	CodecSpeex    = types.CodecSpeex
	CodecSkeleton = types.CodecSkeleton
)

// StreamMetadata is an alias to types.StreamMetadata, the per-stream
// probe result. Switch on the concrete variant or on Codec():
//
//	switch m := s.(type) {
//	case oggmeta.VorbisMetadata:
//		fmt.Println(m.SampleRate)
//	case oggmeta.UnknownMetadata:
//		// unrecognized stream
//	}
type StreamMetadata = types.StreamMetadata

// VorbisMetadata is an alias to types.VorbisMetadata.
type VorbisMetadata = types.VorbisMetadata

// OpusMetadata is an alias to types.OpusMetadata.
type OpusMetadata = types.OpusMetadata

// TheoraMetadata is an alias to types.TheoraMetadata.
type TheoraMetadata = types.TheoraMetadata

// SpeexMetadata is an alias to types.SpeexMetadata.
type SpeexMetadata = types.SpeexMetadata

// SkeletonMetadata is an alias to types.SkeletonMetadata.
type SkeletonMetadata = types.SkeletonMetadata

// UnknownMetadata is an alias to types.UnknownMetadata.
type UnknownMetadata = types.UnknownMetadata

// Packet is an alias to types.Packet, the unit a PacketSource delivers.
type Packet = types.Packet

// OpusSampleRate is the fixed rate of the Opus granule counter.
const OpusSampleRate = types.OpusSampleRate
