// Compressed text encoding of a filter.
//
// MarshalText takes the binary encoding, Zstd-compresses it, then
// Ascii85-encodes the result. The output is printable and newline-free,
// so it can sit inside a JSON string or a single config line. Lightly
// loaded filters are mostly zero lanes and shrink to a small fraction of
// their raw size.
package bloomsday

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder, both safe for concurrent use. Construction is
// expensive, so they are built once.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func compress(data []byte) []byte {
	compressed := zstdEncoder.EncodeAll(data, nil)

	var encoded bytes.Buffer
	enc := ascii85.NewEncoder(&encoded)
	// bytes.Buffer.Write never errors; enc.Close flushes trailing padding.
	_, _ = enc.Write(compressed)
	_ = enc.Close()

	return encoded.Bytes()
}

func decompress(encoded []byte) ([]byte, error) {
	dec := ascii85.NewDecoder(bytes.NewReader(encoded))
	compressed, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: ascii85: %w", ErrDecompress, err)
	}

	out, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f *Filter) MarshalText() ([]byte, error) {
	raw, err := f.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return compress(raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On error f is left
// unchanged.
func (f *Filter) UnmarshalText(text []byte) error {
	raw, err := decompress(text)
	if err != nil {
		return err
	}
	return f.UnmarshalBinary(raw)
}
