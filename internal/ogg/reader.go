// Package ogg implements logical-packet reading over the Ogg physical
// container: page framing, packet reassembly from lacing segments, and
// byte-level seeking with capture-pattern resynchronization.
//
// Page CRCs are not verified; the probing pipeline only needs packet
// boundaries, flags and granule positions, not payload integrity.
package ogg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/oggmeta/internal/binary"
	"github.com/simonhull/oggmeta/internal/types"
)

const (
	// headerSize is the fixed part of an Ogg page header.
	headerSize = 27
	// maxSegmentSize is the largest lacing value; a segment of exactly
	// 255 bytes means the packet continues in the next segment.
	maxSegmentSize = 255

	flagContinued = 0x01
	flagBOS       = 0x02
	flagEOS       = 0x04

	// syncChunkSize is the read granularity when scanning for the
	// "OggS" capture pattern after a byte-level seek.
	syncChunkSize = 64 * 1024
)

var capturePattern = []byte("OggS")

// Reader delivers logical packets from a physical Ogg container.
//
// Reader is not safe for concurrent use. After SeekBytes it discards
// buffered state and resynchronizes on the next page boundary, dropping
// any packet fragment it lands inside of.
type Reader struct {
	sr     *binary.SafeReader
	offset int64

	// queue holds packets completed but not yet delivered.
	queue []*types.Packet
	// partial holds per-stream packet fragments spanning page breaks.
	partial map[uint32]*fragment
	// resync forces a capture-pattern scan before the next page read.
	resync bool
}

// fragment is an in-progress packet spanning a page break. first is
// decided on the page the packet starts on and carried until the
// packet completes.
type fragment struct {
	data  []byte
	first bool
}

// NewReader creates a Reader over a random-access byte source.
func NewReader(r io.ReaderAt, size int64, path string) *Reader {
	return &Reader{
		sr:      binary.NewSafeReader(r, size, path),
		partial: make(map[uint32]*fragment),
		resync:  true,
	}
}

// ReadPacket returns the next logical packet in physical order.
//
// io.EOF signals a clean end of the container. Any other error means
// the container was truncated or corrupted mid-page.
func (r *Reader) ReadPacket() (*types.Packet, error) {
	for len(r.queue) == 0 {
		if err := r.readPage(); err != nil {
			return nil, err
		}
	}
	pck := r.queue[0]
	r.queue = r.queue[1:]
	return pck, nil
}

// ReadPacketExpected returns the next packet, treating end-of-stream as
// a failure. Used where the caller knows a packet must exist.
func (r *Reader) ReadPacketExpected() (*types.Packet, error) {
	pck, err := r.ReadPacket()
	if err == io.EOF {
		return nil, &types.ReadError{Op: "read packet", Err: io.ErrUnexpectedEOF}
	}
	if err != nil {
		return nil, &types.ReadError{Op: "read packet", Err: err}
	}
	return pck, nil
}

// SeekBytes repositions the reader to a byte offset interpreted per
// whence (io.SeekStart, io.SeekCurrent, io.SeekEnd) and returns the
// absolute position. Buffered packets and partial fragments are
// discarded; the next read resynchronizes on a page boundary.
func (r *Reader) SeekBytes(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = r.offset + offset
	case io.SeekEnd:
		pos = r.sr.Size() + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if pos < 0 || pos > r.sr.Size() {
		return 0, fmt.Errorf("seek: position %d out of range (size %d)", pos, r.sr.Size())
	}

	r.offset = pos
	r.queue = r.queue[:0]
	clear(r.partial)
	r.resync = true
	return pos, nil
}

// readPage parses the next page and appends completed packets to the
// queue. Returns io.EOF at a clean container end.
func (r *Reader) readPage() error {
	if r.resync {
		if err := r.syncToCapture(); err != nil {
			return err
		}
		r.resync = false
	}

	if r.offset >= r.sr.Size() {
		// Fragments left behind by a truncated final packet are dropped.
		return io.EOF
	}

	header := make([]byte, headerSize)
	if err := r.sr.ReadAt(header, r.offset, "page header"); err != nil {
		return err
	}
	if !bytes.Equal(header[0:4], capturePattern) {
		return fmt.Errorf("invalid page at offset %d: missing capture pattern", r.offset)
	}
	if header[4] != 0 {
		return fmt.Errorf("unsupported ogg version %d at offset %d", header[4], r.offset)
	}

	headerType := header[5]
	granule, err := binary.ReadLE[uint64](r.sr, r.offset+6, "granule position")
	if err != nil {
		return err
	}
	serial, err := binary.ReadLE[uint32](r.sr, r.offset+14, "serial number")
	if err != nil {
		return err
	}
	segmentCount := int(header[26])

	segments := make([]byte, segmentCount)
	if segmentCount > 0 {
		if err := r.sr.ReadAt(segments, r.offset+headerSize, "segment table"); err != nil {
			return err
		}
	}

	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}
	data := make([]byte, dataSize)
	dataOffset := r.offset + headerSize + int64(segmentCount)
	if dataSize > 0 {
		if err := r.sr.ReadAt(data, dataOffset, "page data"); err != nil {
			return err
		}
	}
	r.offset = dataOffset + int64(dataSize)

	r.splitPackets(headerType, granule, serial, segments, data)
	return nil
}

// splitPackets walks the lacing table and turns segment runs into
// packets, stitching continuations across pages by stream serial.
func (r *Reader) splitPackets(headerType byte, granule uint64, serial uint32, segments, data []byte) {
	var cur fragment
	pending := false
	if frag, ok := r.partial[serial]; ok {
		cur = *frag
		pending = true
		delete(r.partial, serial)
	}

	// A continued page whose head fragment we never saw: the leading
	// segments belong to a packet started before the seek target.
	// Drop them up to the first boundary.
	dropHead := headerType&flagContinued != 0 && !pending
	bosPage := headerType&flagBOS != 0

	// Find the index of the last boundary so the EOS flag can be
	// attributed to the stream's final packet only.
	lastBoundary := -1
	for i, seg := range segments {
		if seg < maxSegmentSize {
			lastBoundary = i
		}
	}

	startedOnPage := 0
	pos := 0
	for i, seg := range segments {
		chunk := data[pos : pos+int(seg)]
		pos += int(seg)

		if !dropHead {
			if !pending {
				// A packet starts here. The first packet starting on a
				// beginning-of-stream page is the stream's first.
				cur = fragment{first: bosPage && startedOnPage == 0}
				startedOnPage++
				pending = true
			}
			cur.data = append(cur.data, chunk...)
		}
		if seg == maxSegmentSize {
			continue
		}

		// Segment boundary: a packet ends here.
		if dropHead {
			dropHead = false
			continue
		}
		pck := &types.Packet{
			Data:            cur.data,
			Serial:          serial,
			GranulePosition: granule,
			FirstPacket:     cur.first,
			LastPacket:      headerType&flagEOS != 0 && i == lastBoundary,
		}
		r.queue = append(r.queue, pck)
		pending = false
		cur = fragment{}
	}

	if pending {
		frag := cur
		r.partial[serial] = &frag
	}
}

// syncToCapture advances the offset to the next "OggS" capture pattern.
// Returns io.EOF if none is found before the end of the source.
func (r *Reader) syncToCapture() error {
	off := r.offset
	size := r.sr.Size()
	for off < size {
		n := int64(syncChunkSize)
		if off+n > size {
			n = size - off
		}
		chunk := make([]byte, n)
		if err := r.sr.ReadAt(chunk, off, "capture pattern scan"); err != nil {
			return err
		}
		if i := bytes.Index(chunk, capturePattern); i >= 0 {
			r.offset = off + int64(i)
			return nil
		}
		// Overlap by 3 bytes so a pattern straddling chunks is found.
		if off+n >= size {
			break
		}
		off += n - int64(len(capturePattern)) + 1
	}
	return io.EOF
}
