package probe

import (
	"errors"
	"testing"

	"github.com/simonhull/oggmeta/internal/types"
)

const skeletonSerial = 100

// skeletonFile lays out a typical multiplexed container: the Skeleton
// BOS packet, the sub-stream BOS packets announced during the Skeleton
// stream's lifetime, the Skeleton EOS packet, then content with the
// sub-streams' terminal packets near the physical end.
func skeletonFile(size int64) *fakeSource {
	return newFakeSource(size).
		add(0, types.Packet{Data: skeletonIdentPacket(), Serial: skeletonSerial, FirstPacket: true}).
		add(100, types.Packet{Data: vorbisIdentPacket(2, 44100), Serial: 1, FirstPacket: true}).
		add(200, types.Packet{Data: opusIdentPacket(2, 312), Serial: 2, FirstPacket: true}).
		add(300, types.Packet{Data: []byte("fisbone..."), Serial: skeletonSerial}).
		add(400, types.Packet{Data: nil, Serial: skeletonSerial, LastPacket: true})
}

func TestIdentifySkeletonResolvesAllStreams(t *testing.T) {
	src := skeletonFile(8192).
		add(4096, types.Packet{Data: []byte{0xAA}, Serial: 1, GranulePosition: 441000, LastPacket: true}).
		add(5000, types.Packet{Data: []byte{0xBB}, Serial: 2, GranulePosition: 48312, LastPacket: true})

	streams, warnings, err := Identify(src, Config{})
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(streams))
	}

	// Streams finalize in terminal-packet order.
	v, ok := streams[0].(types.VorbisMetadata)
	if !ok {
		t.Fatalf("streams[0] = %T, want VorbisMetadata", streams[0])
	}
	if !v.HasLength || v.LengthInSamples != 441000 {
		t.Errorf("vorbis length = %d (has=%v), want 441000", v.LengthInSamples, v.HasLength)
	}

	o, ok := streams[1].(types.OpusMetadata)
	if !ok {
		t.Fatalf("streams[1] = %T, want OpusMetadata", streams[1])
	}
	if !o.HasLength || o.LengthIn48kHzSamples != 48000 {
		t.Errorf("opus length = %d (has=%v), want 48000", o.LengthIn48kHzSamples, o.HasLength)
	}
}

func TestIdentifySkeletonStreamOutsideWindow(t *testing.T) {
	const size = 1 << 20

	// The vorbis terminal packet sits at the head of the file, outside
	// the 200 KiB tail window; the opus one is inside it.
	src := skeletonFile(size).
		add(1000, types.Packet{Data: []byte{0xAA}, Serial: 1, GranulePosition: 441000, LastPacket: true}).
		add(size-1024, types.Packet{Data: []byte{0xBB}, Serial: 2, GranulePosition: 48312, LastPacket: true})

	streams, warnings, err := Identify(src, Config{})
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(streams))
	}

	var sawVorbis, sawOpus bool
	for _, s := range streams {
		switch m := s.(type) {
		case types.VorbisMetadata:
			sawVorbis = true
			if m.HasLength {
				t.Errorf("vorbis outside window has length %d, want absent", m.LengthInSamples)
			}
		case types.OpusMetadata:
			sawOpus = true
			if !m.HasLength || m.LengthIn48kHzSamples != 48000 {
				t.Errorf("opus length = %d (has=%v), want 48000", m.LengthIn48kHzSamples, m.HasLength)
			}
		default:
			t.Errorf("unexpected stream %T", s)
		}
	}
	if !sawVorbis || !sawOpus {
		t.Fatalf("missing stream: vorbis=%v opus=%v", sawVorbis, sawOpus)
	}
	if len(warnings) == 0 {
		t.Errorf("want a missing-duration warning for the vorbis stream")
	}
}

func TestIdentifySkeletonUnknownSubStream(t *testing.T) {
	src := newFakeSource(8192).
		add(0, types.Packet{Data: skeletonIdentPacket(), Serial: skeletonSerial, FirstPacket: true}).
		add(100, types.Packet{Data: []byte("BBCD\x00\x00"), Serial: 1, FirstPacket: true}).
		add(200, types.Packet{Data: opusIdentPacket(1, 0), Serial: 2, FirstPacket: true}).
		add(300, types.Packet{Data: nil, Serial: skeletonSerial, LastPacket: true}).
		add(4096, types.Packet{Data: []byte{0xBB}, Serial: 2, GranulePosition: 96000, LastPacket: true})

	streams, _, err := Identify(src, Config{})
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(streams))
	}
	if _, ok := streams[0].(types.UnknownMetadata); !ok {
		t.Errorf("streams[0] = %T, want UnknownMetadata first in discovery order", streams[0])
	}
	if m, ok := streams[1].(types.OpusMetadata); !ok || !m.HasLength {
		t.Errorf("streams[1] = %#v, want resolved OpusMetadata", streams[1])
	}
}

func TestIdentifyNestedSkeletonFails(t *testing.T) {
	src := newFakeSource(8192).
		add(0, types.Packet{Data: skeletonIdentPacket(), Serial: skeletonSerial, FirstPacket: true}).
		add(100, types.Packet{Data: skeletonIdentPacket(), Serial: 1, FirstPacket: true}).
		add(200, types.Packet{Data: nil, Serial: skeletonSerial, LastPacket: true}).
		add(4096, types.Packet{Data: nil, Serial: 1, GranulePosition: 5, LastPacket: true})

	_, _, err := Identify(src, Config{})
	var ufe *types.UnrecognizedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("error = %v, want UnrecognizedFormatError for nested skeleton", err)
	}
}

// An I/O failure during the bounded tail scan is recovered locally: the
// remaining streams are reported without durations.
func TestIdentifySkeletonTailScanFailsSoftly(t *testing.T) {
	src := skeletonFile(8192).
		add(4096, types.Packet{Data: []byte{0xAA}, Serial: 1, GranulePosition: 441000, LastPacket: true}).
		add(5000, types.Packet{Data: []byte{0xBB}, Serial: 2, GranulePosition: 48312, LastPacket: true})
	// Collect reads indexes 0..4; the tail scan restarts at 0 and dies
	// right after finalizing the vorbis stream at index 5.
	src.failReadAt = 6
	src.readErr = errors.New("connection reset")

	streams, warnings, err := Identify(src, Config{})
	if err != nil {
		t.Fatalf("Identify() error = %v, want soft failure", err)
	}
	if len(streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(streams))
	}

	v := streams[0].(types.VorbisMetadata)
	if !v.HasLength || v.LengthInSamples != 441000 {
		t.Errorf("vorbis length = %d (has=%v), want 441000", v.LengthInSamples, v.HasLength)
	}
	o := streams[1].(types.OpusMetadata)
	if o.HasLength {
		t.Errorf("opus has length %d, want absent after scan stop", o.LengthIn48kHzSamples)
	}
	if len(warnings) == 0 {
		t.Errorf("want warnings describing the early stop")
	}
}

// A seek failure before the tail scan leaves every announced stream
// without a duration, still without failing the probe.
func TestIdentifySkeletonSeekFailsSoftly(t *testing.T) {
	src := skeletonFile(8192)
	src.failSeeks = 0
	src.seekErr = errors.New("pipe closed")

	streams, warnings, err := Identify(src, Config{})
	if err != nil {
		t.Fatalf("Identify() error = %v, want soft failure", err)
	}
	if len(streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(streams))
	}
	for _, s := range streams {
		switch m := s.(type) {
		case types.VorbisMetadata:
			if m.HasLength {
				t.Errorf("vorbis has length, want absent")
			}
		case types.OpusMetadata:
			if m.HasLength {
				t.Errorf("opus has length, want absent")
			}
		default:
			t.Errorf("unexpected stream %T", s)
		}
	}
	if len(warnings) == 0 {
		t.Errorf("want warnings describing the failed seek")
	}
}
