package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/simonhull/oggmeta/internal/types"
)

// OpusIdent holds the fields consumed from an OpusHead identification
// header.
type OpusIdent struct {
	OutputChannels uint8
	// PreSkip is the number of 48 kHz samples a decoder discards at
	// stream start. It is subtracted from the terminal granule
	// position when computing the playable length.
	PreSkip uint16
}

// ParseOpusIdent parses an OpusHead identification header.
//
// payload starts after the 8-byte magic. Layout: 1-byte version,
// 1-byte output channel count, 2-byte little-endian pre-skip.
//
// The version byte is split into major and minor nibbles; any version
// with major half 0 (byte value < 16) is backward compatible and
// accepted. Anything else is an UnrecognizedFormatError.
func ParseOpusIdent(payload []byte) (OpusIdent, error) {
	if len(payload) < 4 {
		return OpusIdent{}, &types.ReadError{Op: "parse opus header", Err: io.ErrUnexpectedEOF}
	}

	version := payload[0]
	if version >= 16 {
		return OpusIdent{}, &types.UnrecognizedFormatError{
			Reason: fmt.Sprintf("incompatible opus version %d", version),
		}
	}

	return OpusIdent{
		OutputChannels: payload[1],
		PreSkip:        binary.LittleEndian.Uint16(payload[2:4]),
	}, nil
}
