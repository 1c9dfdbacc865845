package layout

// StakingLayout is the storage layout of the staking contract.
//
//	mapping(bytes32 => Validator) public validators;  // slot ValidatorsMap
//	bytes32[] public activePoolIds;                   // slot ActivePoolIDs
//	...
//	uint256 public currentEpoch;                      // slot Epoch
//	uint256 public totalStake;                        // slot TotalStake
//	address public chainConfig;                       // slot ChainConfig
type StakingLayout struct {
	Version string

	ValidatorsMap uint64
	ActivePoolIDs uint64
	Epoch         uint64
	TotalStake    uint64
	ChainConfig   uint64

	Validator ValidatorLayout
}

// ValidatorLayout holds the field offsets of the Validator struct relative to
// its mapping-derived base slot. The gaps (2, 4) belong to the second word of
// fields that are not written at genesis.
type ValidatorLayout struct {
	Description           uint64
	PublicKey             uint64
	BLSPublicKey          uint64
	Endpoint              uint64
	Status                uint64
	PoolID                uint64
	TotalStake            uint64
	Owner                 uint64
	StakeSnapshot         uint64
	PendingWithdrawStake  uint64
	PendingWithdrawWindow uint64
}

// ChainConfigLayout is the storage layout of the chain configuration contract.
//
//	address public staking;                 // slot Staking
//	ConfigCheckpoint[] public configCps;    // slot Checkpoints
//
//	struct ConfigCheckpoint {
//	    uint64 blockNum;                    // word 0, bytes [24,32)
//	    uint64 effectiveBlockNum;           // word 0, bytes [16,24)
//	    Config[] configs;                   // word CheckpointConfigs
//	}
//	struct Config { string key; string value; }
type ChainConfigLayout struct {
	Version string

	Staking           uint64
	Checkpoints       uint64
	BlockNum          PackedField
	EffectiveBlockNum PackedField
	CheckpointConfigs uint64
	ConfigEntryWords  uint64
}

// RuleManagerLayout is the storage layout of the rule manager contract.
type RuleManagerLayout struct {
	Version string

	Administrator uint64
}

// AccessControlLayout describes OpenZeppelin's AccessControlUpgradeable:
//
//	struct RoleData { mapping(address => bool) hasRole; bytes32 adminRole; }
//	struct AccessControlStorage { mapping(bytes32 role => RoleData) _roles; }
type AccessControlLayout struct {
	Roles            uint64
	RoleAdminRole    uint64
	DefaultAdminRole uint64
}

// InitializableLayout describes OpenZeppelin's Initializable:
//
//	struct InitializableStorage { uint64 _initialized; bool _initializing; }
type InitializableLayout struct {
	Initialized  PackedField
	Initializing PackedField
}

// PackedField locates a value type that shares a word with its neighbours.
// Offset counts bytes from the low-order (rightmost) end of the word.
type PackedField struct {
	Offset int
	Size   int
}

var (
	StakingV1 = StakingLayout{
		Version:       "staking/v1",
		ValidatorsMap: 0,
		ActivePoolIDs: 1,
		Epoch:         5,
		TotalStake:    6,
		ChainConfig:   7,
		Validator: ValidatorLayout{
			Description:           0,
			PublicKey:             1,
			BLSPublicKey:          3,
			Endpoint:              5,
			Status:                6,
			PoolID:                7,
			TotalStake:            8,
			Owner:                 9,
			StakeSnapshot:         10,
			PendingWithdrawStake:  11,
			PendingWithdrawWindow: 12,
		},
	}

	ChainConfigV1 = ChainConfigLayout{
		Version:           "chaincfg/v1",
		Staking:           0,
		Checkpoints:       1,
		BlockNum:          PackedField{Offset: 0, Size: 8},
		EffectiveBlockNum: PackedField{Offset: 8, Size: 8},
		CheckpointConfigs: 1,
		ConfigEntryWords:  2,
	}

	RuleManagerV1 = RuleManagerLayout{
		Version:       "rulemng/v1",
		Administrator: 5,
	}

	AccessControlOZ5 = AccessControlLayout{
		Roles:            0,
		RoleAdminRole:    1,
		DefaultAdminRole: 0,
	}

	InitializableOZ5 = InitializableLayout{
		Initialized:  PackedField{Offset: 0, Size: 8},
		Initializing: PackedField{Offset: 8, Size: 1},
	}
)

// Layouts used by the compiler.
var (
	Staking       = StakingV1
	ChainConfig   = ChainConfigV1
	RuleManager   = RuleManagerV1
	AccessControl = AccessControlOZ5
	Initializable = InitializableOZ5
)

// ValidatorStatusActive is the Validator.status value of a bonded validator.
const ValidatorStatusActive = 1
