package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/simonhull/oggmeta/internal/types"
)

// VorbisIdent holds the fields consumed from a Vorbis identification
// header.
type VorbisIdent struct {
	Channels   uint8
	SampleRate uint32
}

// ParseVorbisIdent parses a Vorbis identification header.
//
// payload starts after the 7-byte magic. Layout (all little-endian):
// 4-byte version (must be 0), 1-byte channel count, 4-byte sample rate.
//
// A version other than 0 is an UnrecognizedFormatError; a short payload
// is a ReadError, matching the distinction between a recognized-but-
// invalid header and a truncated one.
func ParseVorbisIdent(payload []byte) (VorbisIdent, error) {
	if len(payload) < 9 {
		return VorbisIdent{}, &types.ReadError{Op: "parse vorbis header", Err: io.ErrUnexpectedEOF}
	}

	version := binary.LittleEndian.Uint32(payload[0:4])
	if version != 0 {
		return VorbisIdent{}, &types.UnrecognizedFormatError{
			Reason: fmt.Sprintf("unsupported vorbis version %d", version),
		}
	}

	return VorbisIdent{
		Channels:   payload[4],
		SampleRate: binary.LittleEndian.Uint32(payload[5:9]),
	}, nil
}
