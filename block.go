// Fixed-size filter blocks and the salted intra-block bit derivation.
//
// A block is 256 bits held as eight 32-bit lanes. One hash sets exactly one
// bit in every lane; the bit in lane i is the top five bits of the low 32
// bits of the hash multiplied by salt i.
package bloomsday

// BlockBytes is the size of a Block in bytes.
const BlockBytes = 32

// Salts are odd multipliers, one per lane. These values are persisted
// implicitly in every encoded filter and must never change.
const (
	salt0 = 0x47b6137b
	salt1 = 0x44974d91
	salt2 = 0x8824ad5b
	salt3 = 0xa2b7289d
	salt4 = 0x705495c7
	salt5 = 0x2df1424b
	salt6 = 0x9efc4947
	salt7 = 0x5c6bfb31
)

// Block is 256 bits of filter state laid out as eight 32-bit lanes.
type Block [8]uint32

// Words returns the block as four 64-bit words. Word i holds lane 2i in
// its low half and lane 2i+1 in its high half, which matches the memory
// layout on little-endian machines.
func (b *Block) Words() [4]uint64 {
	return [4]uint64{
		uint64(b[0]) | uint64(b[1])<<32,
		uint64(b[2]) | uint64(b[3])<<32,
		uint64(b[4]) | uint64(b[5])<<32,
		uint64(b[6]) | uint64(b[7])<<32,
	}
}

// mask returns the single-bit-per-lane pattern for the low hash bits x.
// Unrolled; the loop version costs several times more per call.
func mask(x uint32) Block {
	return Block{
		0: 1 << ((x * salt0) >> 27),
		1: 1 << ((x * salt1) >> 27),
		2: 1 << ((x * salt2) >> 27),
		3: 1 << ((x * salt3) >> 27),
		4: 1 << ((x * salt4) >> 27),
		5: 1 << ((x * salt5) >> 27),
		6: 1 << ((x * salt6) >> 27),
		7: 1 << ((x * salt7) >> 27),
	}
}

func (b *Block) insert(x uint32) {
	m := mask(x)
	b[0] |= m[0]
	b[1] |= m[1]
	b[2] |= m[2]
	b[3] |= m[3]
	b[4] |= m[4]
	b[5] |= m[5]
	b[6] |= m[6]
	b[7] |= m[7]
}

// check reports whether every bit of mask(x) is set. The missing bits of
// all lanes are folded into one word and compared once.
func (b *Block) check(x uint32) bool {
	m := mask(x)
	missing := m[0] &^ b[0]
	missing |= m[1] &^ b[1]
	missing |= m[2] &^ b[2]
	missing |= m[3] &^ b[3]
	missing |= m[4] &^ b[4]
	missing |= m[5] &^ b[5]
	missing |= m[6] &^ b[6]
	missing |= m[7] &^ b[7]
	return missing == 0
}
