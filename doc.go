// Package oggmeta identifies the codecs carried inside Ogg containers
// and extracts lightweight metadata without decoding the media.
//
// oggmeta answers one question fast: what is in this file? It reports
// channel counts, sample rates, durations and picture dimensions for
// Vorbis, Opus and Theora streams, and detects Speex and Skeleton
// streams, reading only the head and a bounded tail window of the
// container.
//
// # Quick Start
//
// Probing a file:
//
//	file, err := oggmeta.Probe("song.ogg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range file.Streams {
//		fmt.Println(s)
//	}
//
// # Supported Codecs
//
//   - Vorbis: channels, sample rate, duration
//   - Opus: output channels, duration (pre-skip subtracted)
//   - Theora: picture dimensions
//   - Speex: detection
//   - Skeleton: multiplexed files resolve to one entry per announced stream
//
// # Philosophy
//
// oggmeta follows the same principles as its sibling audiometa:
//
// 1. Bounded I/O: durations come from a single seek near the end of the
// file, never a full scan. Probing a multi-gigabyte file costs the same
// as probing a small one.
//
// 2. Graceful Degradation: truncated or partially downloaded files
// return partial data plus warnings, not errors. A stream whose end
// lies outside the tail window is reported without a duration.
//
// 3. Zero Surprises: unrecognized codecs surface as explicit Unknown
// entries, and malformed-but-readable input never panics.
//
// # Architecture
//
// The library is a one-way pipeline:
//
//	[Probe]              - Entry points: Probe, ProbeReader, ProbeMany
//	  └─ [Identify]      - Stream classification over a PacketSource
//	       ├─ magic dispatch and header parsers (pure, no I/O)
//	       ├─ tail-seek duration recovery (bounded window)
//	       └─ Skeleton multi-stream resolution (best effort)
//
// The Ogg page framing lives behind the PacketSource interface; Identify
// accepts any implementation with the right shape.
//
// # Error Handling
//
// oggmeta distinguishes two failure kinds:
//
//   - UnrecognizedFormatError: structurally readable but invalid or
//     unsupported headers (bad version fields, nested Skeleton streams)
//   - ReadError: I/O failure from the underlying source
//
// Everything else degrades to warnings. Check File.Warnings after a
// successful probe:
//
//	if len(file.Warnings) > 0 {
//		for _, w := range file.Warnings {
//			log.Printf("Warning: %s", w)
//		}
//	}
//
// # Limits
//
// The underlying source must support random access; forward-only
// readers cannot serve the tail-seek algorithm. The tail windows are
// heuristics: encoders that pad or leave gaps between pages can defeat
// duration recovery, in which case the length is simply absent.
package oggmeta
