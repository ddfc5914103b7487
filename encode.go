// Binary encoding of a filter: header plus the raw block array.
//
// Lanes are written little-endian in block order, so the payload is the
// filter's memory image on little-endian machines. The checksum covers the
// payload only; the header fields are validated structurally.
package bloomsday

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// chunkBlocks bounds the scratch buffer used when streaming blocks.
const chunkBlocks = 128

// putBlocks writes blocks into buf as little-endian lanes. buf must hold
// len(blocks)*BlockBytes bytes.
func putBlocks(buf []byte, blocks []Block) {
	for i := range blocks {
		for j, lane := range blocks[i] {
			binary.LittleEndian.PutUint32(buf[i*BlockBytes+j*4:], lane)
		}
	}
}

// getBlocks is the inverse of putBlocks.
func getBlocks(blocks []Block, buf []byte) {
	for i := range blocks {
		for j := range blocks[i] {
			blocks[i][j] = binary.LittleEndian.Uint32(buf[i*BlockBytes+j*4:])
		}
	}
}

func (f *Filter) header(checksum uint64) header {
	return header{
		Algorithm: f.alg,
		NumBlocks: f.numBlocks,
		Seed:      f.seed,
		Checksum:  checksum,
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f *Filter) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderBytes+f.SizeBytes())
	payload := buf[HeaderBytes:]
	putBlocks(payload, f.blocks)
	f.header(xxh3.Hash(payload)).encode(buf)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error f is
// left unchanged.
func (f *Filter) UnmarshalBinary(data []byte) error {
	h, err := decodeHeader(data)
	if err != nil {
		return err
	}
	payload := data[HeaderBytes:]
	if n := int64(len(payload)); n != h.payloadBytes() {
		if n < h.payloadBytes() {
			return fmt.Errorf("%w: %d of %d bytes", ErrTruncated, n, h.payloadBytes())
		}
		return fmt.Errorf("%w: %d trailing bytes", ErrBadBlockCount, n-h.payloadBytes())
	}
	return f.load(h, payload)
}

// load verifies payload against h and replaces f's contents.
func (f *Filter) load(h header, payload []byte) error {
	if sum := xxh3.Hash(payload); sum != h.Checksum {
		return fmt.Errorf("%w: got %016x, want %016x", ErrChecksum, sum, h.Checksum)
	}
	nf := newFilter(h.NumBlocks, h.Seed, h.Algorithm)
	getBlocks(nf.blocks, payload)
	*f = *nf
	return nil
}

// WriteTo implements io.WriterTo. Blocks are streamed in chunks, so no
// copy of the whole array is made.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	var scratch [chunkBlocks * BlockBytes]byte

	sum := xxh3.New()
	for i := 0; i < len(f.blocks); i += chunkBlocks {
		chunk := f.blocks[i:min(i+chunkBlocks, len(f.blocks))]
		buf := scratch[:len(chunk)*BlockBytes]
		putBlocks(buf, chunk)
		sum.Write(buf)
	}

	var hdr [HeaderBytes]byte
	f.header(sum.Sum64()).encode(hdr[:])
	written, err := w.Write(hdr[:])
	total := int64(written)
	if err != nil {
		return total, err
	}

	for i := 0; i < len(f.blocks); i += chunkBlocks {
		chunk := f.blocks[i:min(i+chunkBlocks, len(f.blocks))]
		buf := scratch[:len(chunk)*BlockBytes]
		putBlocks(buf, chunk)
		written, err = w.Write(buf)
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom implements io.ReaderFrom. It reads exactly one encoded filter.
// The payload buffer grows as data arrives, so a corrupt block count
// cannot force a large allocation up front. On error f is left unchanged.
func (f *Filter) ReadFrom(r io.Reader) (int64, error) {
	var hdr [HeaderBytes]byte
	n, err := io.ReadFull(r, hdr[:])
	total := int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: %w", ErrCorruptHeader, err)
	}
	h, err := decodeHeader(hdr[:])
	if err != nil {
		return total, err
	}

	var payload bytes.Buffer
	copied, err := io.CopyN(&payload, r, h.payloadBytes())
	total += copied
	if err != nil {
		if err == io.EOF {
			return total, fmt.Errorf("%w: %d of %d bytes", ErrTruncated, copied, h.payloadBytes())
		}
		return total, err
	}
	return total, f.load(h, payload.Bytes())
}
