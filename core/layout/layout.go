// Package layout holds every fixed address, namespace anchor and struct field
// offset of the system contracts whose storage is pre-computed at genesis.
//
// Nothing in here is derived at runtime. A change to a contract's storage layout
// must show up as a new versioned table below, never as an edited literal inside
// the encoders.
package layout

import (
	"github.com/ethereum/go-ethereum/common"
)

// System contract proxies.
var (
	StakingAddress     = common.HexToAddress("0x4100000000000000000000000000000000000000")
	ChainConfigAddress = common.HexToAddress("0x3100000000000000000000000000000000000000")
	RuleManagerAddress = common.HexToAddress("0x2100000000000000000000000000000000000000")
)

// IntrinsicSender is the sender of protocol-issued transactions. It is granted
// the default admin role on every system contract.
var IntrinsicSender = common.HexToAddress("0x1111111111111111111111111111111111111111")

// Placeholder addresses baked into genesis templates. They are replaced by the
// configured admin and proxy admin when a template is compiled.
var (
	TemplateAdminAddress      = common.HexToAddress("0x2cc298bdee7cfeac9b49f9659e2f3d637e149696")
	TemplateProxyAdminAddress = common.HexToAddress("0x0278872d3f68b15156e486da1551bcd34493220d")
)

// OpenZeppelin ERC-7201 storage locations.
var (
	// keccak256(abi.encode(uint256(keccak256("openzeppelin.storage.AccessControl")) - 1)) & ~bytes32(uint256(0xff))
	AccessControlStorageLocation = common.HexToHash("0x02dd7bc7dec4dceedda775e58dd541e08a116c6c53815c0bd028192f7b626800")

	// keccak256(abi.encode(uint256(keccak256("openzeppelin.storage.Initializable")) - 1)) & ~bytes32(uint256(0xff))
	InitializableStorageLocation = common.HexToHash("0xf0c57e16840df040f15088dc2f81fe391c3923bec73e23a9662efc9c229c6a00")
)

const (
	// GweiToWei converts stake denominations.
	GweiToWei = 1_000_000_000

	// EpochStartTimestampKey is the chain config entry stamped at compile time.
	EpochStartTimestampKey = "chain.epoch_start_timestamp"

	// AdminAccountBalance funds the admin account at genesis.
	AdminAccountBalance = "0xc097ce7bc90715b34b9f1000000000"
)

// Contract describes one system contract family: where it lives and which
// namespace anchors its upgradeable base contracts use.
type Contract struct {
	Name          string
	Address       common.Address
	AccessControl common.Hash
	Initializable common.Hash
}

// SystemContracts is the single table of contracts touched at genesis, in the
// order the compiler processes them.
var SystemContracts = []Contract{
	{
		Name:          "staking",
		Address:       StakingAddress,
		AccessControl: AccessControlStorageLocation,
		Initializable: InitializableStorageLocation,
	},
	{
		Name:          "chaincfg",
		Address:       ChainConfigAddress,
		AccessControl: AccessControlStorageLocation,
		Initializable: InitializableStorageLocation,
	},
	{
		Name:          "rulemng",
		Address:       RuleManagerAddress,
		AccessControl: AccessControlStorageLocation,
		Initializable: InitializableStorageLocation,
	},
}

// ContractByName looks up an entry of SystemContracts.
func ContractByName(name string) (Contract, bool) {
	for _, c := range SystemContracts {
		if c.Name == name {
			return c, true
		}
	}
	return Contract{}, false
}
