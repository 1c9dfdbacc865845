package slots

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// ShortStringMax is the longest byte string stored inline with its length.
	ShortStringMax = 31

	// MaxStringLength bounds the byte length of any encoded string. Lengths
	// are tracked as uint64 while deriving the length word (len*2+1), and the
	// contracts never hold anything close to this.
	MaxStringLength = 1<<32 - 1
)

// ErrStringTooLong is returned for byte strings above MaxStringLength.
var ErrStringTooLong = errors.New("string exceeds storage encoding bound")

// EncodeString writes s into the field at slot following Solidity's
// string/bytes storage rule:
//
//   - up to 31 bytes: one word, data left-aligned, len*2 in the last byte;
//   - longer: len*2+1 at slot, data in 32-byte chunks from keccak256(slot).
func EncodeString(m Map, slot common.Hash, s string) error {
	return EncodeBytes(m, slot, []byte(s))
}

// EncodeBytes is EncodeString for raw byte strings.
func EncodeBytes(m Map, slot common.Hash, b []byte) error {
	return encodeBytes(m, slot, b, MaxStringLength)
}

// EncodeShortBytesField applies the two-branch rule to a bytes value that is
// assigned straight to a struct field.
func EncodeShortBytesField(m Map, slot common.Hash, b []byte) error {
	return encodeBytes(m, slot, b, MaxStringLength)
}

// EncodeLongString always uses the long form, whatever the length of s. Public
// keys are laid down this way.
func EncodeLongString(m Map, slot common.Hash, s string) error {
	return encodeLong(m, slot, []byte(s), MaxStringLength)
}

func encodeBytes(m Map, slot common.Hash, b []byte, limit uint64) error {
	if uint64(len(b)) > limit {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	if len(b) <= ShortStringMax {
		m.Set(slot, ShortString(b))
		return nil
	}
	return encodeLong(m, slot, b, limit)
}

func encodeLong(m Map, slot common.Hash, b []byte, limit uint64) error {
	if uint64(len(b)) > limit {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	m.Set(slot, LongStringLength(len(b)))

	data := ArrayDataSlot(slot)
	for i, chunk := range Chunks(b) {
		m.Set(AddSlot(data, uint64(i)), chunk)
	}
	return nil
}

// ShortString packs up to 31 bytes with their doubled length in the last byte.
// It panics on longer input; callers go through EncodeBytes.
func ShortString(b []byte) common.Hash {
	if len(b) > ShortStringMax {
		panic(fmt.Sprintf("short string of %d bytes", len(b)))
	}
	w := PadRight(b)
	w[common.HashLength-1] |= byte(len(b) * 2)
	return w
}

// LongStringLength is the word stored at the field slot of a long string.
func LongStringLength(n int) common.Hash {
	l := uint256.NewInt(uint64(n))
	l.Lsh(l, 1)
	l.AddUint64(l, 1)
	return l.Bytes32()
}

// Chunks splits b into words, zero-padding the last one on the right.
func Chunks(b []byte) []common.Hash {
	out := make([]common.Hash, 0, (len(b)+common.HashLength-1)/common.HashLength)
	for len(b) > 0 {
		n := min(len(b), common.HashLength)
		out = append(out, PadRight(b[:n]))
		b = b[n:]
	}
	return out
}
