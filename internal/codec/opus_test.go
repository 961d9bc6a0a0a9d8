package codec

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/simonhull/oggmeta/internal/types"
)

// opusIdentPayload builds an OpusHead payload (the bytes after the
// magic) with the given version, channel count and pre-skip.
func opusIdentPayload(version, channels uint8, preSkip uint16) []byte {
	payload := make([]byte, 4)
	payload[0] = version
	payload[1] = channels
	binary.LittleEndian.PutUint16(payload[2:4], preSkip)
	return payload
}

func TestParseOpusIdent(t *testing.T) {
	tests := []struct {
		name     string
		version  uint8
		channels uint8
		preSkip  uint16
	}{
		{"version 1 stereo", 1, 2, 312},
		{"version 0", 0, 1, 0},
		{"highest compatible minor version", 15, 8, 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := ParseOpusIdent(opusIdentPayload(tt.version, tt.channels, tt.preSkip))
			if err != nil {
				t.Fatalf("ParseOpusIdent() error = %v", err)
			}
			if ident.OutputChannels != tt.channels {
				t.Errorf("OutputChannels = %d, want %d", ident.OutputChannels, tt.channels)
			}
			if ident.PreSkip != tt.preSkip {
				t.Errorf("PreSkip = %d, want %d", ident.PreSkip, tt.preSkip)
			}
		})
	}
}

func TestParseOpusIdentRejectsIncompatibleVersion(t *testing.T) {
	for _, version := range []uint8{16, 17, 255} {
		_, err := ParseOpusIdent(opusIdentPayload(version, 2, 0))
		var ufe *types.UnrecognizedFormatError
		if !errors.As(err, &ufe) {
			t.Errorf("version %d: error = %v, want UnrecognizedFormatError", version, err)
		}
	}
}

func TestParseOpusIdentShortPayload(t *testing.T) {
	_, err := ParseOpusIdent([]byte{1, 2})
	var re *types.ReadError
	if !errors.As(err, &re) {
		t.Errorf("error = %v, want ReadError", err)
	}
}
