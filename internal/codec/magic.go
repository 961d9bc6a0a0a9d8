// Package codec implements magic-byte dispatch and identification-header
// parsing for the codecs that appear inside Ogg containers.
//
// Everything here is pure: parsers consume byte slices and perform no I/O.
package codec

import (
	"bytes"

	"github.com/simonhull/oggmeta/internal/types"
)

// Magic sequences for the first packet of a logical stream, each paired
// with the offset where the codec-specific header payload begins.
//
// https://www.xiph.org/vorbis/doc/Vorbis_I_spec.html#x1-620004.2.1
// https://tools.ietf.org/html/rfc7845#section-5.1
// https://www.theora.org/doc/Theora.pdf (section 6.2)
// http://www.speex.org/docs/manual/speex-manual/node8.html
// https://wiki.xiph.org/SkeletonHeaders
var (
	vorbisMagic   = []byte{0x01, 'v', 'o', 'r', 'b', 'i', 's'}
	opusMagic     = []byte("OpusHead")
	theoraMagic   = []byte{0x80, 't', 'h', 'e', 'o', 'r', 'a'}
	speexMagic    = []byte("Speex   ")
	skeletonMagic = []byte("fishead\x00")
)

// Detect matches the first bytes of a packet against the known magic
// sequences and returns the matched codec plus the offset where the
// codec-specific header payload begins.
//
// An empty or unmatched packet yields (CodecUnknown, 0). Callers treat
// that as an Unknown stream, not as a failure. Matching is exact-byte
// and dispatches on the first byte before comparing the full prefix.
func Detect(packet []byte) (types.Codec, int) {
	if len(packet) == 0 {
		return types.CodecUnknown, 0
	}

	switch packet[0] {
	case 0x01:
		if bytes.HasPrefix(packet, vorbisMagic) {
			return types.CodecVorbis, len(vorbisMagic)
		}
	case 'O':
		if bytes.HasPrefix(packet, opusMagic) {
			return types.CodecOpus, len(opusMagic)
		}
	case 0x80:
		if bytes.HasPrefix(packet, theoraMagic) {
			return types.CodecTheora, len(theoraMagic)
		}
	case 'S':
		if bytes.HasPrefix(packet, speexMagic) {
			return types.CodecSpeex, len(speexMagic)
		}
	case 'f':
		if bytes.HasPrefix(packet, skeletonMagic) {
			return types.CodecSkeleton, len(skeletonMagic)
		}
	}

	return types.CodecUnknown, 0
}
