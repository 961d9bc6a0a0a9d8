package probe

import (
	"fmt"
	"io"

	"github.com/simonhull/oggmeta/internal/codec"
	"github.com/simonhull/oggmeta/internal/types"
)

// streamState tracks one announced logical stream between its discovery
// during the collect phase and its finalization. The map of states is
// local to a single resolve call; nothing escapes it.
type streamState struct {
	codec types.Codec
	// payload is the identification-header payload, magic stripped.
	payload []byte
}

// resolveSkeleton handles multiplexed files led by a Skeleton stream.
//
// Phase 1 (collect) walks packets until the Skeleton stream's own last
// packet, recording every other stream's identification header as it is
// announced. Phase 2 seeks into the tail window once and drains
// trailing packets, finalizing each recorded stream from its terminal
// granule position. I/O failures during phase 2 stop the scan without
// failing the call: multiplexed duration recovery is best effort, and a
// truncated file simply yields entries without durations.
func resolveSkeleton(src Source, first *types.Packet, cfg Config) ([]types.StreamMetadata, []types.Warning, error) {
	skeletonSerial := first.Serial

	states := make(map[uint32]*streamState)
	var order []uint32
	var results []types.StreamMetadata
	var warnings []types.Warning

	// Collect phase. Errors here are fatal: without the announcements
	// there is nothing to resolve.
	for {
		pck, err := src.ReadPacketExpected()
		if err != nil {
			return nil, nil, err
		}
		if pck.Serial == skeletonSerial {
			if pck.LastPacket {
				break
			}
			// Fisbone and index packets carry nothing this probe needs.
			continue
		}
		if !pck.FirstPacket {
			continue
		}

		tag, off := codec.Detect(pck.Data)
		if tag == types.CodecUnknown {
			// The identification header is only available in the first
			// packet; an unmatched stream can never be classified later.
			results = append(results, types.UnknownMetadata{})
			continue
		}
		if _, seen := states[pck.Serial]; seen {
			continue
		}
		payload := make([]byte, len(pck.Data)-off)
		copy(payload, pck.Data[off:])
		states[pck.Serial] = &streamState{codec: tag, payload: payload}
		order = append(order, pck.Serial)
	}

	// Bounded tail scan, best effort.
	if len(states) > 0 {
		stopEarly := func(err error) {
			warnings = append(warnings, types.Warning{
				Stage:   "duration",
				Message: fmt.Sprintf("tail scan stopped early: %v", err),
			})
		}

		if err := seekIntoTail(src, cfg.SkeletonTailWindow); err != nil {
			stopEarly(err)
		} else {
			for len(states) > 0 {
				pck, err := src.ReadPacket()
				if err == io.EOF {
					break
				}
				if err != nil {
					stopEarly(err)
					break
				}
				if !pck.LastPacket {
					continue
				}
				st, ok := states[pck.Serial]
				if !ok {
					continue
				}
				m, warn, err := finalizeStream(st, pck.Serial, pck.GranulePosition, true)
				if err != nil {
					return nil, nil, err
				}
				warnings = append(warnings, warn...)
				results = append(results, m)
				delete(states, pck.Serial)
			}
		}
	}

	// Leftover finalization: whatever the window did not cover is
	// reported without a duration, in discovery order.
	for _, serial := range order {
		st, ok := states[serial]
		if !ok {
			continue
		}
		m, warn, err := finalizeStream(st, serial, 0, false)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warn...)
		warnings = append(warnings, missingDuration(serial))
		results = append(results, m)
	}

	return results, warnings, nil
}

// finalizeStream turns a recorded stream state plus its terminal
// granule position (if found) into metadata. A Skeleton stream
// announced inside a Skeleton file is invalid and fails the call.
func finalizeStream(st *streamState, serial uint32, granule uint64, hasGranule bool) (types.StreamMetadata, []types.Warning, error) {
	switch st.codec {
	case types.CodecVorbis:
		ident, err := codec.ParseVorbisIdent(st.payload)
		if err != nil {
			return nil, nil, err
		}
		m := types.VorbisMetadata{
			Channels:   ident.Channels,
			SampleRate: ident.SampleRate,
		}
		if hasGranule {
			m.LengthInSamples = granule
			m.HasLength = true
		}
		return m, nil, nil

	case types.CodecOpus:
		ident, err := codec.ParseOpusIdent(st.payload)
		if err != nil {
			return nil, nil, err
		}
		m := types.OpusMetadata{OutputChannels: ident.OutputChannels}
		var warnings []types.Warning
		if hasGranule {
			length, warn := opusLength(granule, ident.PreSkip, serial)
			m.LengthIn48kHzSamples = length
			m.HasLength = true
			warnings = warn
		}
		return m, warnings, nil

	case types.CodecTheora:
		ident, err := codec.ParseTheoraIdent(st.payload)
		if err != nil {
			return nil, nil, err
		}
		return types.TheoraMetadata{
			PixelWidth:  ident.PictureWidth,
			PixelHeight: ident.PictureHeight,
		}, nil, nil

	case types.CodecSpeex:
		return types.SpeexMetadata{}, nil, nil

	case types.CodecSkeleton:
		return nil, nil, &types.UnrecognizedFormatError{Reason: "nested skeleton stream"}

	default:
		return types.UnknownMetadata{}, nil, nil
	}
}

// seekIntoTail positions the source window bytes before the physical
// end, clamped to the start of the container.
func seekIntoTail(src Source, window int64) error {
	end, err := src.SeekBytes(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if window > end {
		window = end
	}
	_, err = src.SeekBytes(-window, io.SeekEnd)
	return err
}
