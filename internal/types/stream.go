package types

import (
	"fmt"
	"time"
)

// OpusSampleRate is the fixed rate of the Opus granule counter.
//
// Opus decodes at varying internal rates, but the per-page granule
// position always counts 48 kHz samples.
const OpusSampleRate = 48000

// StreamMetadata is the per-stream probe result.
//
// It is a sealed tagged union: exactly one concrete variant exists per
// Codec value, plus UnknownMetadata for unmatched magics. New variants
// are only added alongside new Codec values.
type StreamMetadata interface {
	// Codec reports which variant this is.
	Codec() Codec

	sealed()
}

// VorbisMetadata describes a Vorbis audio stream.
type VorbisMetadata struct {
	// Channels is the channel count from the identification header.
	Channels uint8
	// SampleRate is the sample rate in Hz.
	SampleRate uint32
	// LengthInSamples is the total sample count recovered from the
	// stream's terminal granule position. Only valid if HasLength.
	LengthInSamples uint64
	// HasLength reports whether the tail scan located the stream's
	// terminal packet.
	HasLength bool
}

// Codec returns CodecVorbis.
func (VorbisMetadata) Codec() Codec { return CodecVorbis }

func (VorbisMetadata) sealed() {}

// Duration returns the stream duration, if the length is known.
func (m VorbisMetadata) Duration() (time.Duration, bool) {
	if !m.HasLength || m.SampleRate == 0 {
		return 0, false
	}
	secs := float64(m.LengthInSamples) / float64(m.SampleRate)
	return time.Duration(secs * float64(time.Second)), true
}

// String returns a human-readable summary.
func (m VorbisMetadata) String() string {
	if d, ok := m.Duration(); ok {
		return fmt.Sprintf("Vorbis, %d channels, %d Hz, %s", m.Channels, m.SampleRate, formatDuration(d))
	}
	return fmt.Sprintf("Vorbis, %d channels, %d Hz", m.Channels, m.SampleRate)
}

// OpusMetadata describes an Opus audio stream.
type OpusMetadata struct {
	// OutputChannels is the decoded channel count.
	OutputChannels uint8
	// LengthIn48kHzSamples is the playable length in 48 kHz units,
	// with the header's pre-skip already subtracted. Only valid if
	// HasLength.
	LengthIn48kHzSamples uint64
	// HasLength reports whether the tail scan located the stream's
	// terminal packet.
	HasLength bool
}

// Codec returns CodecOpus.
func (OpusMetadata) Codec() Codec { return CodecOpus }

func (OpusMetadata) sealed() {}

// Duration returns the stream duration, if the length is known.
func (m OpusMetadata) Duration() (time.Duration, bool) {
	if !m.HasLength {
		return 0, false
	}
	secs := float64(m.LengthIn48kHzSamples) / float64(OpusSampleRate)
	return time.Duration(secs * float64(time.Second)), true
}

// String returns a human-readable summary.
func (m OpusMetadata) String() string {
	if d, ok := m.Duration(); ok {
		return fmt.Sprintf("Opus, %d channels, %s", m.OutputChannels, formatDuration(d))
	}
	return fmt.Sprintf("Opus, %d channels", m.OutputChannels)
}

// TheoraMetadata describes a Theora video stream.
//
// Durations are not recovered for Theora: its granule position encodes
// frame counts split into keyframe and offset halves, which would need
// the granule shift from the setup header to interpret.
type TheoraMetadata struct {
	// PixelWidth is the visible picture-region width in pixels.
	PixelWidth uint32
	// PixelHeight is the visible picture-region height in pixels.
	PixelHeight uint32
}

// Codec returns CodecTheora.
func (TheoraMetadata) Codec() Codec { return CodecTheora }

func (TheoraMetadata) sealed() {}

// String returns a human-readable summary.
func (m TheoraMetadata) String() string {
	return fmt.Sprintf("Theora, %dx%d", m.PixelWidth, m.PixelHeight)
}

// SpeexMetadata marks a detected Speex stream. Detection only.
type SpeexMetadata struct{}

// Codec returns CodecSpeex.
func (SpeexMetadata) Codec() Codec { return CodecSpeex }

func (SpeexMetadata) sealed() {}

// String returns a human-readable summary.
func (SpeexMetadata) String() string { return "Speex" }

// SkeletonMetadata marks a detected Skeleton structure stream.
type SkeletonMetadata struct{}

// Codec returns CodecSkeleton.
func (SkeletonMetadata) Codec() Codec { return CodecSkeleton }

func (SkeletonMetadata) sealed() {}

// String returns a human-readable summary.
func (SkeletonMetadata) String() string { return "Skeleton" }

// UnknownMetadata marks a logical stream whose first packet matched no
// known magic sequence.
type UnknownMetadata struct{}

// Codec returns CodecUnknown.
func (UnknownMetadata) Codec() Codec { return CodecUnknown }

func (UnknownMetadata) sealed() {}

// String returns a human-readable summary.
func (UnknownMetadata) String() string { return "Unknown" }

// formatDuration renders mm:ss.d, hours only when needed.
func formatDuration(d time.Duration) string {
	total := d.Seconds()
	mins := int(total) / 60
	secs := total - float64(mins*60)
	if mins >= 60 {
		return fmt.Sprintf("%d:%02d:%04.1f", mins/60, mins%60, secs)
	}
	return fmt.Sprintf("%02d:%04.1f", mins, secs)
}
