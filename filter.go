// Core filter type: construction, block addressing, insert and query.
//
// A 64-bit hash is split in two. The high 32 bits pick the block with a
// multiply-shift range reduction; the low 32 bits pick one bit in each of
// the block's eight lanes. Neither InsertHash nor MayMatchHash allocates
// or branches on filter contents.
package bloomsday

import (
	"math/bits"
	"slices"
)

// Filter is a cache-line blocked Bloom filter.
//
// A Filter does no locking. Concurrent MayMatch calls on a filter that is
// not being modified are safe; an insert concurrent with any other call is
// a data race. Use Synced for shared writers.
//
// Assigning a Filter value shares its blocks; use Clone for an
// independent copy.
//
// The zero Filter has no blocks and is only a target for the decoders
// (UnmarshalBinary, ReadFrom, UnmarshalJSON, UnmarshalText). Inserting
// into or querying it panics; obtain filters from New, NewWithSeed,
// NewWithConfig or a decoder.
type Filter struct {
	blocks    []Block
	numBlocks uint32
	seed      uint64
	alg       int
}

// New returns a filter sized for entries keys at false-positive rate fpr,
// with seed 0 and the default hash algorithm.
func New(entries int, fpr float64) *Filter {
	return NewWithConfig(entries, fpr, Config{})
}

// NewWithSeed is New with a custom key-hash seed.
func NewWithSeed(entries int, fpr float64, seed uint64) *Filter {
	return NewWithConfig(entries, fpr, Config{Seed: seed})
}

// NewWithConfig returns a filter sized for entries keys at rate fpr.
// Construction never fails: an unusable fpr falls back to
// DefaultBitsPerKey and a zero entry count yields a single block.
func NewWithConfig(entries int, fpr float64, cfg Config) *Filter {
	cfg = cfg.withDefaults()

	bpk := BitsPerKey(fpr)
	if !(fpr > 0 && fpr < 1) {
		cfg.Logger.Debug("bloomsday: false positive rate out of range, using default",
			"fpr", fpr, "bits_per_key", bpk)
	}
	if entries <= 0 {
		cfg.Logger.Debug("bloomsday: no expected entries, using one block", "entries", entries)
	}
	n := NumBlocks(entries, bpk)
	cfg.Logger.Debug("bloomsday: filter sized",
		"entries", entries, "bits_per_key", bpk, "blocks", n, "algorithm", cfg.HashAlgorithm)

	return newFilter(n, cfg.Seed, cfg.HashAlgorithm)
}

// newFilter allocates n aligned zero blocks. n must be at least 1 and alg
// must be valid.
func newFilter(n uint32, seed uint64, alg int) *Filter {
	return &Filter{
		blocks:    allocBlocks(int(n)),
		numBlocks: n,
		seed:      seed,
		alg:       alg,
	}
}

// NumBlocks returns the number of 256-bit blocks. Always at least 1.
func (f *Filter) NumBlocks() uint32 { return f.numBlocks }

// Seed returns the key-hash seed.
func (f *Filter) Seed() uint64 { return f.seed }

// HashAlgorithm returns the key-hash algorithm identifier.
func (f *Filter) HashAlgorithm() int { return f.alg }

// SizeBytes returns the size of the block array in bytes.
func (f *Filter) SizeBytes() int { return int(f.numBlocks) * BlockBytes }

// fastMap reduces a 32-bit hash to a block index in [0, numBlocks)
// without division.
func (f *Filter) fastMap(h uint32) uint32 {
	return uint32((uint64(h) * uint64(f.numBlocks)) >> 32)
}

// InsertHash adds a precomputed 64-bit hash. Inserting the same hash again
// has no further effect.
func (f *Filter) InsertHash(h uint64) {
	f.blocks[f.fastMap(uint32(h>>32))].insert(uint32(h))
}

// MayMatchHash reports whether h may have been inserted. A false result is
// definite; a true result may be a false positive.
func (f *Filter) MayMatchHash(h uint64) bool {
	return f.blocks[f.fastMap(uint32(h>>32))].check(uint32(h))
}

// Clone returns a deep copy with its own aligned block array.
func (f *Filter) Clone() *Filter {
	c := newFilter(f.numBlocks, f.seed, f.alg)
	copy(c.blocks, f.blocks)
	return c
}

// Equal reports whether two filters have identical geometry, hashing and
// bits. A nil filter equals only another nil filter.
func (f *Filter) Equal(o *Filter) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.numBlocks == o.numBlocks &&
		f.seed == o.seed &&
		f.alg == o.alg &&
		slices.Equal(f.blocks, o.blocks)
}

// FillRatio returns the fraction of bits set across all blocks. A ratio
// near 1 means the filter is saturated and matches almost everything.
func (f *Filter) FillRatio() float64 {
	var set int
	for i := range f.blocks {
		for _, w := range f.blocks[i].Words() {
			set += bits.OnesCount64(w)
		}
	}
	return float64(set) / float64(len(f.blocks)*BlockBits)
}
