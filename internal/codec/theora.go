package codec

import (
	"io"

	"github.com/simonhull/oggmeta/internal/types"
)

// TheoraIdent holds the fields consumed from a Theora identification
// header.
type TheoraIdent struct {
	// PictureWidth and PictureHeight are the visible picture-region
	// dimensions in pixels, as opposed to the padded frame size
	// measured in macroblocks.
	PictureWidth  uint32
	PictureHeight uint32
}

// ParseTheoraIdent parses a Theora identification header.
//
// payload starts after the 7-byte magic. Layout (big-endian): three
// version bytes, 2-byte frame width and height in macroblocks, then
// 3-byte picture-region width and height in pixels. The version and
// macroblock fields are consumed but not validated; only the picture
// region is reported.
func ParseTheoraIdent(payload []byte) (TheoraIdent, error) {
	if len(payload) < 13 {
		return TheoraIdent{}, &types.ReadError{Op: "parse theora header", Err: io.ErrUnexpectedEOF}
	}

	// payload[0:3] version major/minor/revision, payload[3:7] frame
	// size in macroblocks. Skipped.
	return TheoraIdent{
		PictureWidth:  uint24BE(payload[7:10]),
		PictureHeight: uint24BE(payload[10:13]),
	}, nil
}

// uint24BE decodes a 3-byte big-endian unsigned integer.
func uint24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
