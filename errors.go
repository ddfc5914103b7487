// Package bloomsday provides a cache-line blocked Bloom filter. Every key
// maps to a single 256-bit block and sets eight bits inside it, one per
// 32-bit lane, so a lookup touches exactly one cache line instead of
// scattering probes across the whole bit array.
//
// The filter answers "definitely absent" or "possibly present". It never
// produces false negatives; the false-positive rate is governed by the
// sizing chosen at construction. Bits are never cleared, so the filter
// only grows more saturated over its lifetime.
//
// Hashes can be supplied directly (InsertHash, MayMatchHash) or derived
// from keys with a seeded 64-bit streaming hash (InsertKey, MayMatchKey).
// Filters can be encoded as a raw block array (binary), JSON, compressed
// text, or saved to a locked file.
package bloomsday

import "errors"

// Sentinel errors for programmatic handling. Filter operations themselves
// never fail; these are returned only by the codecs and file helpers.
var (
	ErrCorruptHeader = errors.New("corrupt header")
	ErrBadMagic      = errors.New("bad magic")
	ErrBadVersion    = errors.New("unsupported format version")
	ErrBadAlgorithm  = errors.New("unknown hash algorithm")
	ErrBadBlockCount = errors.New("invalid block count")
	ErrBadBlock      = errors.New("block does not have 8 lanes")
	ErrTruncated     = errors.New("truncated block data")
	ErrChecksum      = errors.New("block checksum mismatch")
	ErrDecompress    = errors.New("decompression failed")
)
