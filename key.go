// Key-based convenience API.
//
// Keys are hashed with the filter's algorithm and seed, then handed to
// InsertHash or MayMatchHash. Each call builds one hasher, so this path
// allocates where the hash path does not.
package bloomsday

import (
	"encoding/binary"
	"hash"
)

// Hashable is implemented by keys that can feed a stable byte sequence
// into a hash. The bytes written must depend only on the key's value.
type Hashable interface {
	WriteHash(h hash.Hash)
}

// Bytes adapts a byte slice to Hashable.
type Bytes []byte

func (b Bytes) WriteHash(h hash.Hash) { h.Write(b) }

// String adapts a string to Hashable. It hashes the same bytes as
// Bytes([]byte(s)).
type String string

func (s String) WriteHash(h hash.Hash) { h.Write([]byte(s)) }

// Uint64 adapts an integer to Hashable as 8 little-endian bytes.
type Uint64 uint64

func (u Uint64) WriteHash(h hash.Hash) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(u))
	h.Write(buf[:])
}

// HashKey returns the 64-bit hash the filter uses for k.
func (f *Filter) HashKey(k Hashable) uint64 {
	h := newHasher(f.alg, f.seed)
	k.WriteHash(h)
	return h.Sum64()
}

// InsertKey hashes k and inserts the result.
func (f *Filter) InsertKey(k Hashable) { f.InsertHash(f.HashKey(k)) }

// MayMatchKey hashes k and queries the result.
func (f *Filter) MayMatchKey(k Hashable) bool { return f.MayMatchHash(f.HashKey(k)) }

// InsertBytes is InsertKey(Bytes(b)).
func (f *Filter) InsertBytes(b []byte) { f.InsertKey(Bytes(b)) }

// MayMatchBytes is MayMatchKey(Bytes(b)).
func (f *Filter) MayMatchBytes(b []byte) bool { return f.MayMatchKey(Bytes(b)) }

// InsertString is InsertKey(String(s)).
func (f *Filter) InsertString(s string) { f.InsertKey(String(s)) }

// MayMatchString is MayMatchKey(String(s)).
func (f *Filter) MayMatchString(s string) bool { return f.MayMatchKey(String(s)) }
