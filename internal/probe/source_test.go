package probe

import (
	"encoding/binary"
	"io"

	"github.com/simonhull/oggmeta/internal/types"
)

// fakeSource is an in-memory Source for resolver tests. Each packet is
// pinned to a byte offset so tail seeks behave like they do against a
// real container: seeking repositions the cursor and reading resumes at
// the first packet at or after it.
type fakeSource struct {
	size    int64
	offsets []int64
	packets []*types.Packet

	idx int

	// failReadAt injects a read error when the cursor reaches the
	// given packet index. -1 disables injection.
	failReadAt int
	readErr    error

	// failSeeks injects an error on every SeekBytes call after the
	// first n successful ones. -1 disables injection.
	failSeeks int
	seekErr   error

	seeks int
}

func newFakeSource(size int64) *fakeSource {
	return &fakeSource{size: size, failReadAt: -1, failSeeks: -1}
}

// add pins a packet at a byte offset. Offsets must be non-decreasing.
func (f *fakeSource) add(at int64, pck types.Packet) *fakeSource {
	f.offsets = append(f.offsets, at)
	f.packets = append(f.packets, &pck)
	return f
}

func (f *fakeSource) ReadPacket() (*types.Packet, error) {
	if f.failReadAt >= 0 && f.idx == f.failReadAt {
		return nil, f.readErr
	}
	if f.idx >= len(f.packets) {
		return nil, io.EOF
	}
	pck := f.packets[f.idx]
	f.idx++
	return pck, nil
}

func (f *fakeSource) ReadPacketExpected() (*types.Packet, error) {
	pck, err := f.ReadPacket()
	if err == io.EOF {
		return nil, &types.ReadError{Op: "read packet", Err: io.ErrUnexpectedEOF}
	}
	if err != nil {
		return nil, &types.ReadError{Op: "read packet", Err: err}
	}
	return pck, nil
}

func (f *fakeSource) SeekBytes(offset int64, whence int) (int64, error) {
	if f.failSeeks >= 0 && f.seeks >= f.failSeeks {
		return 0, f.seekErr
	}
	f.seeks++

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = f.currentPos() + offset
	case io.SeekEnd:
		pos = f.size + offset
	}

	f.idx = len(f.packets)
	for i, at := range f.offsets {
		if at >= pos {
			f.idx = i
			break
		}
	}
	return pos, nil
}

func (f *fakeSource) currentPos() int64 {
	if f.idx < len(f.offsets) {
		return f.offsets[f.idx]
	}
	return f.size
}

// Packet payload builders.

func vorbisIdentPacket(channels uint8, sampleRate uint32) []byte {
	data := append([]byte{0x01}, []byte("vorbis")...)
	data = binary.LittleEndian.AppendUint32(data, 0) // version
	data = append(data, channels)
	data = binary.LittleEndian.AppendUint32(data, sampleRate)
	return data
}

func vorbisIdentPacketVersion(version uint32) []byte {
	data := append([]byte{0x01}, []byte("vorbis")...)
	data = binary.LittleEndian.AppendUint32(data, version)
	data = append(data, 2)
	data = binary.LittleEndian.AppendUint32(data, 44100)
	return data
}

func opusIdentPacket(channels uint8, preSkip uint16) []byte {
	data := []byte("OpusHead")
	data = append(data, 1, channels)
	data = binary.LittleEndian.AppendUint16(data, preSkip)
	return data
}

func theoraIdentPacket(picWidth, picHeight uint32) []byte {
	data := append([]byte{0x80}, []byte("theora")...)
	data = append(data, 3, 2, 1)                   // version
	data = binary.BigEndian.AppendUint16(data, 40) // macroblock width
	data = binary.BigEndian.AppendUint16(data, 30) // macroblock height
	data = append(data,
		byte(picWidth>>16), byte(picWidth>>8), byte(picWidth),
		byte(picHeight>>16), byte(picHeight>>8), byte(picHeight))
	return data
}

func speexIdentPacket() []byte {
	return []byte("Speex   1.2rc1\x00")
}

func skeletonIdentPacket() []byte {
	return []byte("fishead\x00\x03\x00\x00\x00")
}
