package slots

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	ErrFieldOutOfWord = errors.New("packed field does not fit in a word")
	ErrFieldOverflow  = errors.New("value does not fit in packed field")
	ErrFieldOverlap   = errors.New("packed fields overlap")
)

// Field is one value type sharing a storage word with others. Offset is in
// bytes from the low-order end of the word, matching how solc packs struct
// members from right to left.
type Field struct {
	Value  *uint256.Int
	Offset int
	Size   int
}

// Pack combines fields into one word.
func Pack(fields ...Field) (common.Hash, error) {
	var (
		word uint256.Int
		used [common.HashLength]bool
	)
	for _, f := range fields {
		if f.Size <= 0 || f.Offset < 0 || f.Offset+f.Size > common.HashLength {
			return common.Hash{}, fmt.Errorf("%w: offset %d size %d", ErrFieldOutOfWord, f.Offset, f.Size)
		}
		for i := f.Offset; i < f.Offset+f.Size; i++ {
			if used[i] {
				return common.Hash{}, fmt.Errorf("%w: byte %d", ErrFieldOverlap, i)
			}
			used[i] = true
		}
		if f.Value == nil {
			continue
		}
		if f.Value.BitLen() > f.Size*8 {
			return common.Hash{}, fmt.Errorf("%w: %s in %d bytes", ErrFieldOverflow, f.Value.Dec(), f.Size)
		}
		var v uint256.Int
		v.Lsh(f.Value, uint(f.Offset*8))
		word.Or(&word, &v)
	}
	return word.Bytes32(), nil
}

// MaxOfSize is the largest unsigned value that fits in size bytes.
func MaxOfSize(size int) *uint256.Int {
	v := new(uint256.Int).Lsh(uint256.NewInt(1), uint(size*8))
	return v.SubUint64(v, 1)
}
