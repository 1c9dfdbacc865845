package sysgen

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/zircuit-labs/genesis-ops/core/layout"
	"github.com/zircuit-labs/genesis-ops/core/slots"
)

// ConfigEntry is one key/value pair of the chain configuration. The position
// of an entry in its list decides where it is stored.
type ConfigEntry struct {
	Key   string
	Value string
}

// BuildChainConfig lays down the chain configuration contract: a single genesis
// checkpoint at block 0 carrying entries in the given order, and the pointer
// back to the staking contract.
func BuildChainConfig(entries []ConfigEntry, staking common.Address) (slots.Map, error) {
	var (
		m  = slots.NewMap()
		cc = layout.ChainConfig
	)

	checkpoints := slots.Uint(cc.Checkpoints)
	m.Set(checkpoints, slots.Uint(1))

	genesisCp := slots.ArrayElementSlot(checkpoints, 0)
	blockNums, err := slots.Pack(
		slots.Field{Value: uint256.NewInt(0), Offset: cc.BlockNum.Offset, Size: cc.BlockNum.Size},
		slots.Field{Value: uint256.NewInt(0), Offset: cc.EffectiveBlockNum.Offset, Size: cc.EffectiveBlockNum.Size},
	)
	if err != nil {
		return nil, err
	}
	m.Set(genesisCp, blockNums)

	configs := slots.AddSlot(genesisCp, cc.CheckpointConfigs)
	m.Set(configs, slots.Uint(uint64(len(entries))))

	data := slots.ArrayDataSlot(configs)
	for i, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("%w: config key at position %d", ErrEmptyField, i)
		}
		entry := slots.AddSlot(data, uint64(i)*cc.ConfigEntryWords)
		if err := slots.EncodeString(m, entry, e.Key); err != nil {
			return nil, fmt.Errorf("config %q key: %w", e.Key, err)
		}
		if err := slots.EncodeString(m, slots.AddSlot(entry, 1), e.Value); err != nil {
			return nil, fmt.Errorf("config %q value: %w", e.Key, err)
		}
	}

	m.Set(slots.Uint(cc.Staking), slots.Address(staking))
	return m, nil
}
