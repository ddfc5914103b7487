// Aligned block storage.
//
// Go has no alignment annotation for heap slices, so blocks are carved out
// of a byte arena whose start is rounded up to the cache line size. With
// 32-byte blocks at 32-byte offsets from an aligned base, no block can
// straddle a cache line.
package bloomsday

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// blockAlign is the byte alignment of the first block: the target's cache
// line size, never less than BlockBytes.
var blockAlign = max(int(unsafe.Sizeof(cpu.CacheLinePad{})), BlockBytes)

// allocBlocks returns n zeroed blocks starting on a blockAlign boundary.
// The arena is owned by the returned slice; the interior pointer keeps it
// alive.
func allocBlocks(n int) []Block {
	arena := make([]byte, n*BlockBytes+blockAlign)
	off := 0
	if r := int(uintptr(unsafe.Pointer(&arena[0])) % uintptr(blockAlign)); r != 0 {
		off = blockAlign - r
	}
	return unsafe.Slice((*Block)(unsafe.Pointer(&arena[off])), n)
}

// aligned reports whether the first block sits on a blockAlign boundary.
func aligned(blocks []Block) bool {
	if len(blocks) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&blocks[0]))%uintptr(blockAlign) == 0
}
