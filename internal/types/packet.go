package types

// Packet is one logical Ogg packet as delivered by a packet reader.
//
// Only the fields the probing pipeline consumes are represented; the
// page-level framing (CRC, sequence numbers, lacing) stays inside the
// packet reader.
type Packet struct {
	// Data is the raw packet payload.
	Data []byte

	// FirstPacket is set when this is the first packet of its logical
	// stream (it starts on a beginning-of-stream page). Identification
	// headers are only ever found in first packets.
	FirstPacket bool

	// LastPacket is set when this is the final packet of its logical
	// stream (it ends on an end-of-stream page).
	LastPacket bool

	// GranulePosition is the absolute granule position of the page the
	// packet ends on. Its meaning is codec-defined: cumulative 48 kHz
	// samples for Opus, cumulative PCM samples for Vorbis.
	GranulePosition uint64

	// Serial identifies the packet's logical stream within the
	// physical container.
	Serial uint32
}
