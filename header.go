// Binary header for encoded filters.
//
// The header is exactly 32 bytes, little-endian, followed by the raw block
// array:
//
//	0   4  magic "BDY1"
//	4   1  format version
//	5   1  hash algorithm
//	6   2  block size in bytes (32)
//	8   4  number of blocks
//	12  4  reserved, zero
//	16  8  seed
//	24  8  xxh3 checksum of the block payload
package bloomsday

import (
	"encoding/binary"
	"fmt"
)

// Encoding format constants.
const (
	HeaderBytes   = 32
	Magic         = "BDY1"
	FormatVersion = 1
)

// header is the decoded form of the 32-byte prefix.
type header struct {
	Algorithm int
	NumBlocks uint32
	Seed      uint64
	Checksum  uint64
}

// payloadBytes is the length of the block array that follows the header.
func (h header) payloadBytes() int64 {
	return int64(h.NumBlocks) * BlockBytes
}

// encode writes h into buf, which must be at least HeaderBytes long.
func (h header) encode(buf []byte) {
	copy(buf[0:4], Magic)
	buf[4] = FormatVersion
	buf[5] = byte(h.Algorithm)
	binary.LittleEndian.PutUint16(buf[6:8], BlockBytes)
	binary.LittleEndian.PutUint32(buf[8:12], h.NumBlocks)
	clear(buf[12:16])
	binary.LittleEndian.PutUint64(buf[16:24], h.Seed)
	binary.LittleEndian.PutUint64(buf[24:32], h.Checksum)
}

// decodeHeader parses and validates the 32-byte prefix of buf.
func decodeHeader(buf []byte) (header, error) {
	if len(buf) < HeaderBytes {
		return header{}, fmt.Errorf("%w: %d bytes, want %d", ErrCorruptHeader, len(buf), HeaderBytes)
	}
	if string(buf[0:4]) != Magic {
		return header{}, fmt.Errorf("%w: %q", ErrBadMagic, buf[0:4])
	}
	if buf[4] != FormatVersion {
		return header{}, fmt.Errorf("%w: %d", ErrBadVersion, buf[4])
	}
	if bs := binary.LittleEndian.Uint16(buf[6:8]); bs != BlockBytes {
		return header{}, fmt.Errorf("%w: block size %d", ErrCorruptHeader, bs)
	}
	if binary.LittleEndian.Uint32(buf[12:16]) != 0 {
		return header{}, fmt.Errorf("%w: reserved bytes set", ErrCorruptHeader)
	}

	h := header{
		Algorithm: int(buf[5]),
		NumBlocks: binary.LittleEndian.Uint32(buf[8:12]),
		Seed:      binary.LittleEndian.Uint64(buf[16:24]),
		Checksum:  binary.LittleEndian.Uint64(buf[24:32]),
	}
	if !validAlgorithm(h.Algorithm) {
		return header{}, fmt.Errorf("%w: %d", ErrBadAlgorithm, h.Algorithm)
	}
	if h.NumBlocks == 0 {
		return header{}, fmt.Errorf("%w: 0", ErrBadBlockCount)
	}
	return h, nil
}
