// Package slots re-implements the subset of the Solidity storage layout rules
// needed to pre-compute contract storage without running the EVM: scalar
// words, mapping slot derivation, dynamic array addressing, string packing and
// sub-word packing of value types.
package slots

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Uint encodes v as a left zero-padded big-endian word.
func Uint(v uint64) common.Hash {
	return uint256.NewInt(v).Bytes32()
}

// Uint256 encodes v as a big-endian word. A nil v encodes as zero.
func Uint256(v *uint256.Int) common.Hash {
	if v == nil {
		return common.Hash{}
	}
	return v.Bytes32()
}

// PadRight left-aligns b into a word, as Solidity does for bytesN and the
// inline form of short strings. Input longer than a word is truncated.
func PadRight(b []byte) common.Hash {
	var h common.Hash
	copy(h[:], b)
	return h
}

// Address encodes an address the way it sits in a storage word.
func Address(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

// Bool encodes a boolean storage word.
func Bool(b bool) common.Hash {
	if b {
		return Uint(1)
	}
	return common.Hash{}
}

// AddSlot treats base as an unsigned 256-bit integer and adds offset modulo
// 2^256. Struct fields and array elements are addressed this way.
func AddSlot(base common.Hash, offset uint64) common.Hash {
	var x uint256.Int
	x.SetBytes32(base[:])
	x.Add(&x, uint256.NewInt(offset))
	return x.Bytes32()
}

// MappingSlot derives the slot of mapping[key] for a mapping declared at base:
// keccak256(key ++ base). The key comes first.
func MappingSlot(key, base common.Hash) common.Hash {
	return crypto.Keccak256Hash(key[:], base[:])
}

// ArrayDataSlot is where the elements of a dynamic array (or the data words of
// a long string) declared at slot begin.
func ArrayDataSlot(slot common.Hash) common.Hash {
	return crypto.Keccak256Hash(slot[:])
}

// ArrayElementSlot addresses element i of a dynamic array of single-word
// elements declared at slot.
func ArrayElementSlot(slot common.Hash, i uint64) common.Hash {
	return AddSlot(ArrayDataSlot(slot), i)
}

// PoolID is the canonical identifier of a validator: sha256 over the raw
// public key bytes.
func PoolID(pubkey []byte) common.Hash {
	return common.Hash(sha256.Sum256(pubkey))
}

// ERC7201Location computes the namespaced storage root of an ERC-7201
// namespace id:
//
//	keccak256(abi.encode(uint256(keccak256(id)) - 1)) & ~bytes32(uint256(0xff))
func ERC7201Location(id string) common.Hash {
	var x uint256.Int
	x.SetBytes(crypto.Keccak256([]byte(id)))
	x.SubUint64(&x, 1)
	word := x.Bytes32()
	loc := crypto.Keccak256Hash(word[:])
	loc[common.HashLength-1] = 0
	return loc
}
