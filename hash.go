// Seeded 64-bit streaming hashers for the key API.
//
// The algorithm identifier is written into every encoded filter, so a
// filter reloaded in another process hashes keys exactly as the one that
// built it. Five algorithms are supported, selectable via
// Config.HashAlgorithm.
package bloomsday

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants. These values are persisted.
const (
	AlgXXHash64 = 1 // Default
	AlgXXHash3  = 2 // Fastest on long keys
	AlgMurmur3  = 3 // Native 32-bit seed; the high half is hashed as a prefix
	AlgFNV1a    = 4 // No external dependencies
	AlgBlake2b  = 5 // Keyed, best distribution
)

func validAlgorithm(alg int) bool {
	return alg >= AlgXXHash64 && alg <= AlgBlake2b
}

// newHasher returns a fresh hasher for alg primed with seed, or nil for an
// unknown algorithm.
func newHasher(alg int, seed uint64) hash.Hash64 {
	switch alg {
	case AlgXXHash64:
		return xxhash.NewWithSeed(seed)
	case AlgXXHash3:
		return xxh3.NewSeed(seed)
	case AlgMurmur3:
		h := murmur3.New64WithSeed(uint32(seed))
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(seed>>32))
		h.Write(buf[:])
		return h
	case AlgFNV1a:
		h := fnv.New64a()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], seed)
		h.Write(buf[:])
		return h
	case AlgBlake2b:
		var key [8]byte
		binary.LittleEndian.PutUint64(key[:], seed)
		h, _ := blake2b.New(8, key[:]) // 8 bytes = 64 bits
		return blake64{h}
	default:
		return nil
	}
}

// blake64 exposes an 8-byte BLAKE2b digest as a hash.Hash64.
type blake64 struct {
	hash.Hash
}

func (b blake64) Sum64() uint64 {
	var buf [8]byte
	return binary.LittleEndian.Uint64(b.Sum(buf[:0]))
}
