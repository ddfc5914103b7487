package bloomsday

import (
	"strconv"
	"testing"

	"github.com/bits-and-blooms/bloom/v3"
)

const benchEntries = 1 << 20

// classicBloom is a conventional Bloom filter using double hashing across
// the whole bit array. It is the baseline the blocked layout is measured
// against: same bits per key, k probes scattered over many cache lines.
type classicBloom struct {
	bits  []uint64
	nbits uint64
	k     uint64
}

func newClassicBloom(entries int, fpr float64) *classicBloom {
	nbits := uint64(entries * BitsPerKey(fpr))
	return &classicBloom{
		bits:  make([]uint64, (nbits+63)/64),
		nbits: nbits,
		k:     7,
	}
}

func (b *classicBloom) insert(h uint64) {
	h1, h2 := h, h>>32|h<<32
	for i := range b.k {
		pos := (h1 + i*h2) % b.nbits
		b.bits[pos/64] |= 1 << (pos % 64)
	}
}

func (b *classicBloom) contains(h uint64) bool {
	h1, h2 := h, h>>32|h<<32
	for i := range b.k {
		pos := (h1 + i*h2) % b.nbits
		if b.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

func benchHashes(n int) []uint64 {
	r := newRand()
	hs := make([]uint64, n)
	for i := range hs {
		hs[i] = r.Uint64()
	}
	return hs
}

func benchKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte("key-" + strconv.Itoa(i))
	}
	return keys
}

func BenchmarkInsertHash(b *testing.B) {
	f := New(benchEntries, 0.01)
	hs := benchHashes(benchEntries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.InsertHash(hs[i%len(hs)])
	}
}

func BenchmarkMayMatchHash(b *testing.B) {
	f := New(benchEntries, 0.01)
	hs := benchHashes(benchEntries)
	for _, h := range hs {
		f.InsertHash(h)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MayMatchHash(hs[i%len(hs)])
	}
}

func BenchmarkMayMatchHashMiss(b *testing.B) {
	f := New(benchEntries, 0.01)
	for _, h := range benchHashes(benchEntries) {
		f.InsertHash(h)
	}
	probes := benchHashes(benchEntries)
	for i := range probes {
		probes[i] = ^probes[i]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MayMatchHash(probes[i%len(probes)])
	}
}

func BenchmarkClassicInsertHash(b *testing.B) {
	f := newClassicBloom(benchEntries, 0.01)
	hs := benchHashes(benchEntries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.insert(hs[i%len(hs)])
	}
}

func BenchmarkClassicContainsHash(b *testing.B) {
	f := newClassicBloom(benchEntries, 0.01)
	hs := benchHashes(benchEntries)
	for _, h := range hs {
		f.insert(h)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.contains(hs[i%len(hs)])
	}
}

func BenchmarkInsertKey(b *testing.B) {
	for _, alg := range allAlgorithms {
		b.Run(strconv.Itoa(alg), func(b *testing.B) {
			f := NewWithConfig(benchEntries, 0.01, Config{HashAlgorithm: alg})
			keys := benchKeys(benchEntries)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f.InsertBytes(keys[i%len(keys)])
			}
		})
	}
}

func BenchmarkMayMatchKey(b *testing.B) {
	f := New(benchEntries, 0.01)
	keys := benchKeys(benchEntries)
	for _, k := range keys {
		f.InsertBytes(k)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MayMatchBytes(keys[i%len(keys)])
	}
}

func BenchmarkBitsAndBloomsAdd(b *testing.B) {
	f := bloom.NewWithEstimates(benchEntries, 0.01)
	keys := benchKeys(benchEntries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(keys[i%len(keys)])
	}
}

func BenchmarkBitsAndBloomsTest(b *testing.B) {
	f := bloom.NewWithEstimates(benchEntries, 0.01)
	keys := benchKeys(benchEntries)
	for _, k := range keys {
		f.Add(k)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Test(keys[i%len(keys)])
	}
}

func BenchmarkMarshalBinary(b *testing.B) {
	f := New(benchEntries, 0.01)
	for _, h := range benchHashes(benchEntries) {
		f.InsertHash(h)
	}
	b.SetBytes(int64(HeaderBytes + f.SizeBytes()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MarshalBinary()
	}
}

// TestFalsePositiveRateVsClassic reports the blocked layout's accuracy
// cost next to the classic filter and bits-and-blooms at equal load. The
// blocked filter is allowed to be worse, but not by more than the 2.5x
// tolerance.
func TestFalsePositiveRateVsClassic(t *testing.T) {
	const (
		entries = 20000
		fpr     = 0.01
		probes  = 50000
	)
	blocked := New(entries, fpr)
	classic := newClassicBloom(entries, fpr)
	reference := bloom.NewWithEstimates(entries, fpr)

	for _, h := range benchHashes(entries) {
		blocked.InsertHash(h)
		classic.insert(h)
		reference.Add(leBytes(h))
	}

	r := probeRand()
	var fpBlocked, fpClassic, fpReference int
	for range probes {
		h := r.Uint64()
		if blocked.MayMatchHash(h) {
			fpBlocked++
		}
		if classic.contains(h) {
			fpClassic++
		}
		if reference.Test(leBytes(h)) {
			fpReference++
		}
	}
	t.Logf("false positive rate: blocked %.4f classic %.4f bits-and-blooms %.4f",
		float64(fpBlocked)/probes, float64(fpClassic)/probes, float64(fpReference)/probes)

	if rate := float64(fpBlocked) / probes; rate >= fpr*2.5 {
		t.Errorf("blocked rate %.4f exceeds %.4f", rate, fpr*2.5)
	}
}

// leBytes returns h as 8 little-endian bytes, the encoding the
// Uint64 key type hashes.
func leBytes(h uint64) []byte {
	return []byte{byte(h), byte(h >> 8), byte(h >> 16), byte(h >> 24),
		byte(h >> 32), byte(h >> 40), byte(h >> 48), byte(h >> 56)}
}
