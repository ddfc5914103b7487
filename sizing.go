// Filter geometry.
//
// Sizing reuses the classic Bloom formula m/n = -ln(p) / ln(2)^2. For a
// blocked filter this is an approximation: confining all probes to one
// block costs some accuracy, so the observed false-positive rate lands
// somewhat above p. Callers who need a tighter bound can pass a smaller
// rate or compute their own block count.
package bloomsday

import (
	"math"
	"math/bits"
)

// DefaultBitsPerKey is used when the requested false-positive rate is
// outside the open interval (0, 1).
const DefaultBitsPerKey = 10

// BlockBits is the number of bits in a Block.
const BlockBits = BlockBytes * 8

// BitsPerKey returns ceil(-ln(fpr) / ln(2)^2), or DefaultBitsPerKey if
// fpr is not a usable probability.
func BitsPerKey(fpr float64) int {
	if !(fpr > 0 && fpr < 1) {
		return DefaultBitsPerKey
	}
	return int(math.Ceil(-math.Log(fpr) / (math.Ln2 * math.Ln2)))
}

// NumBlocks returns ceil(entries*bitsPerKey / BlockBits), clamped to
// [1, math.MaxUint32]. Negative arguments count as zero.
func NumBlocks(entries, bitsPerKey int) uint32 {
	if entries <= 0 || bitsPerKey <= 0 {
		return 1
	}
	hi, lo := bits.Mul64(uint64(entries), uint64(bitsPerKey))
	if hi != 0 {
		return math.MaxUint32
	}
	n := lo / BlockBits
	if lo%BlockBits != 0 {
		n++
	}
	switch {
	case n == 0:
		return 1
	case n > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(n)
}
