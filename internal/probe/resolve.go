package probe

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/oggmeta/internal/codec"
	"github.com/simonhull/oggmeta/internal/types"
)

// Identify classifies the logical streams of an Ogg container and
// extracts their lightweight metadata.
//
// Single-stream files yield a one-element result. Files led by a
// Skeleton structure stream yield one entry per announced stream,
// including Unknown placeholders for streams no parser claims. An
// unrecognized first-packet magic is itself reported as a single
// Unknown entry, not an error.
//
// Warnings report degraded results: durations that could not be
// recovered within the tail window, or clamped Opus lengths.
func Identify(src Source, cfg Config) ([]types.StreamMetadata, []types.Warning, error) {
	cfg = cfg.withDefaults()

	pck, err := src.ReadPacketExpected()
	if err != nil {
		return nil, nil, err
	}

	tag, off := codec.Detect(pck.Data)
	payload := pck.Data[off:]

	switch tag {
	case types.CodecVorbis:
		ident, err := codec.ParseVorbisIdent(payload)
		if err != nil {
			return nil, nil, err
		}
		granule, found, err := lastGranule(src, cfg.TailWindow, pck.Serial)
		if err != nil {
			// Duration lookup is assumed reliable for single-stream
			// files; failures propagate.
			return nil, nil, wrapRead("tail scan", err)
		}
		m := types.VorbisMetadata{
			Channels:   ident.Channels,
			SampleRate: ident.SampleRate,
		}
		var warnings []types.Warning
		if found {
			m.LengthInSamples = granule
			m.HasLength = true
		} else {
			warnings = append(warnings, missingDuration(pck.Serial))
		}
		return []types.StreamMetadata{m}, warnings, nil

	case types.CodecOpus:
		ident, err := codec.ParseOpusIdent(payload)
		if err != nil {
			return nil, nil, err
		}
		granule, found, err := lastGranule(src, cfg.TailWindow, pck.Serial)
		if err != nil {
			return nil, nil, wrapRead("tail scan", err)
		}
		m := types.OpusMetadata{OutputChannels: ident.OutputChannels}
		var warnings []types.Warning
		if found {
			length, warn := opusLength(granule, ident.PreSkip, pck.Serial)
			m.LengthIn48kHzSamples = length
			m.HasLength = true
			warnings = append(warnings, warn...)
		} else {
			warnings = append(warnings, missingDuration(pck.Serial))
		}
		return []types.StreamMetadata{m}, warnings, nil

	case types.CodecTheora:
		ident, err := codec.ParseTheoraIdent(payload)
		if err != nil {
			return nil, nil, err
		}
		m := types.TheoraMetadata{
			PixelWidth:  ident.PictureWidth,
			PixelHeight: ident.PictureHeight,
		}
		return []types.StreamMetadata{m}, nil, nil

	case types.CodecSpeex:
		return []types.StreamMetadata{types.SpeexMetadata{}}, nil, nil

	case types.CodecSkeleton:
		return resolveSkeleton(src, pck, cfg)

	case types.CodecUnknown:
		return []types.StreamMetadata{types.UnknownMetadata{}}, nil, nil

	default:
		return []types.StreamMetadata{types.UnknownMetadata{}}, nil, nil
	}
}

// lastGranule recovers the absolute granule position of the last packet
// of the given logical stream by seeking near the physical end of the
// container and scanning forward.
//
// found is false when the container ends without the stream's terminal
// packet appearing inside the window. This is a heuristic: it assumes
// the physical tail is dense with valid pages for the window size.
func lastGranule(src Source, window int64, serial uint32) (granule uint64, found bool, err error) {
	if err := seekIntoTail(src, window); err != nil {
		return 0, false, err
	}

	for {
		pck, err := src.ReadPacket()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		if pck.LastPacket && pck.Serial == serial {
			return pck.GranulePosition, true, nil
		}
	}
}

// opusLength converts a terminal granule position into a playable
// length by subtracting the header's pre-skip. A granule smaller than
// pre-skip clamps to zero rather than underflowing, with a warning.
func opusLength(granule uint64, preSkip uint16, serial uint32) (uint64, []types.Warning) {
	if granule < uint64(preSkip) {
		return 0, []types.Warning{{
			Stage:   "duration",
			Serial:  serial,
			Message: fmt.Sprintf("granule position %d smaller than pre-skip %d, clamping length to zero", granule, preSkip),
		}}
	}
	return granule - uint64(preSkip), nil
}

// missingDuration builds the warning attached when a stream's terminal
// packet was not found within the tail window.
func missingDuration(serial uint32) types.Warning {
	return types.Warning{
		Stage:   "duration",
		Serial:  serial,
		Message: "terminal packet not found within tail window",
	}
}

// wrapRead wraps err in a ReadError unless it already is one.
func wrapRead(op string, err error) error {
	var re *types.ReadError
	if errors.As(err, &re) {
		return err
	}
	return &types.ReadError{Op: op, Err: err}
}
