// JSON encoding of a filter.
//
// The document carries the three core fields plus the hash algorithm:
//
//	{"num_blocks":2,"seed":0,"alg":1,"blocks":[[0,0,0,0,0,0,0,0],[...]]}
//
// Each block is its eight 32-bit lanes. This form is verbose and meant for
// inspection and interchange; use the binary or text encodings for
// storage.
package bloomsday

import (
	"fmt"

	json "github.com/goccy/go-json"
)

type jsonFilter struct {
	NumBlocks uint32  `json:"num_blocks"`
	Seed      uint64  `json:"seed"`
	Algorithm int     `json:"alg"`
	Blocks    []Block `json:"blocks"`
}

// jsonInput decodes blocks as plain lists so that a block with the wrong
// number of lanes is rejected rather than padded or truncated.
type jsonInput struct {
	NumBlocks uint32     `json:"num_blocks"`
	Seed      uint64     `json:"seed"`
	Algorithm int        `json:"alg"`
	Blocks    [][]uint32 `json:"blocks"`
}

// MarshalJSON implements json.Marshaler.
func (f *Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFilter{
		NumBlocks: f.numBlocks,
		Seed:      f.seed,
		Algorithm: f.alg,
		Blocks:    f.blocks,
	})
}

// UnmarshalJSON implements json.Unmarshaler. On error f is left unchanged.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var jf jsonInput
	if err := json.Unmarshal(data, &jf); err != nil {
		return err
	}
	if !validAlgorithm(jf.Algorithm) {
		return fmt.Errorf("%w: %d", ErrBadAlgorithm, jf.Algorithm)
	}
	if jf.NumBlocks == 0 || len(jf.Blocks) != int(jf.NumBlocks) {
		return fmt.Errorf("%w: num_blocks %d, %d blocks", ErrBadBlockCount, jf.NumBlocks, len(jf.Blocks))
	}

	for i, lanes := range jf.Blocks {
		if len(lanes) != len(Block{}) {
			return fmt.Errorf("%w: block %d has %d lanes", ErrBadBlock, i, len(lanes))
		}
	}

	nf := newFilter(jf.NumBlocks, jf.Seed, jf.Algorithm)
	for i, lanes := range jf.Blocks {
		copy(nf.blocks[i][:], lanes)
	}
	*f = *nf
	return nil
}
