package slots

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Map is the storage pre-image of one contract: slot key to word value.
// Iteration order carries no meaning; Keys returns a stable order for output.
type Map map[common.Hash]common.Hash

// NewMap returns an empty Map.
func NewMap() Map {
	return make(Map)
}

// Set writes value at key, overwriting whatever was there.
func (m Map) Set(key, value common.Hash) {
	m[key] = value
}

// Get returns the word at key and whether it has been written.
func (m Map) Get(key common.Hash) (common.Hash, bool) {
	v, ok := m[key]
	return v, ok
}

// Merge copies every entry of other into m (insert-or-overwrite). Keys of m
// that other does not mention are left as they are.
func (m Map) Merge(other Map) {
	for k, v := range other {
		m[k] = v
	}
}

// Len is the number of written slots.
func (m Map) Len() int {
	return len(m)
}

// Keys returns the slot keys in ascending byte order.
func (m Map) Keys() []common.Hash {
	keys := make([]common.Hash, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

// Strings renders m in the genesis document format: 0x-prefixed 64 hex
// characters for both keys and values.
func (m Map) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k.Hex()] = v.Hex()
	}
	return out
}
