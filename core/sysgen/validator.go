// Package sysgen lays down the genesis storage of the system contracts: the
// staking registry, the chain configuration registry and the OpenZeppelin
// access control / initializer state they all share.
package sysgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/zircuit-labs/genesis-ops/core/layout"
	"github.com/zircuit-labs/genesis-ops/core/slots"
)

var (
	ErrEmptyField   = errors.New("required field is empty")
	ErrMalformedHex = errors.New("malformed hex")
	ErrBadIndex     = errors.New("validator index out of range")
)

// DescriptionPrefix is prepended to the ordinal index to form the on-chain
// validator description.
const DescriptionPrefix = "domain"

// Validator is one entry of the genesis validator set.
type Validator struct {
	Label        string
	Index        int
	PublicKey    string // hex text, optional 0x prefix
	BLSPublicKey string // hex text, optional 0x prefix
	Endpoint     string
	Stake        *uint256.Int // wei
}

// Validate checks that every field needed to lay down the validator is present
// and well formed.
func (v *Validator) Validate() error {
	switch {
	case v.Label == "":
		return fmt.Errorf("%w: label", ErrEmptyField)
	case v.Endpoint == "":
		return fmt.Errorf("%w: %s endpoint", ErrEmptyField, v.Label)
	case v.Stake == nil:
		return fmt.Errorf("%w: %s stake", ErrEmptyField, v.Label)
	case v.Index < 0:
		return fmt.Errorf("%w: %s index %d", ErrBadIndex, v.Label, v.Index)
	}
	if _, err := decodeHexField(v.Label+" public key", v.PublicKey); err != nil {
		return err
	}
	if _, err := decodeHexField(v.Label+" bls public key", v.BLSPublicKey); err != nil {
		return err
	}
	return nil
}

// PublicKeyBytes decodes the raw public key.
func (v *Validator) PublicKeyBytes() ([]byte, error) {
	return decodeHexField(v.Label+" public key", v.PublicKey)
}

// PoolID is sha256 over the raw public key bytes.
func (v *Validator) PoolID() (common.Hash, error) {
	raw, err := v.PublicKeyBytes()
	if err != nil {
		return common.Hash{}, err
	}
	return slots.PoolID(raw), nil
}

// Description is the on-chain description of the validator.
func (v *Validator) Description() string {
	return DescriptionPrefix + strconv.Itoa(v.Index)
}

// BuildValidator lays down validators[poolId], its slot in activePoolIds and
// the shared counters of the staking contract. The activePoolIds length word is
// rewritten to total on every call, so it must be called once for each
// validator of the final set.
func BuildValidator(v Validator, total int, admin common.Address) (slots.Map, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if v.Index >= total {
		return nil, fmt.Errorf("%w: %s index %d of %d", ErrBadIndex, v.Label, v.Index, total)
	}
	poolID, err := v.PoolID()
	if err != nil {
		return nil, err
	}

	var (
		m      = slots.NewMap()
		st     = layout.Staking
		fields = st.Validator
		base   = slots.MappingSlot(poolID, slots.Uint(st.ValidatorsMap))
		field  = func(off uint64) common.Hash { return slots.AddSlot(base, off) }
	)

	// Short by construction, the index never pushes it past 31 bytes.
	if err := slots.EncodeString(m, field(fields.Description), v.Description()); err != nil {
		return nil, err
	}
	// Public keys are stored as their hex text and always in the long form,
	// whatever their length.
	if err := slots.EncodeLongString(m, field(fields.PublicKey), strip0x(v.PublicKey)); err != nil {
		return nil, err
	}
	if err := slots.EncodeLongString(m, field(fields.BLSPublicKey), strip0x(v.BLSPublicKey)); err != nil {
		return nil, err
	}
	if err := slots.EncodeShortBytesField(m, field(fields.Endpoint), []byte(v.Endpoint)); err != nil {
		return nil, err
	}
	m.Set(field(fields.Status), slots.Uint(layout.ValidatorStatusActive))
	m.Set(field(fields.PoolID), poolID)
	m.Set(field(fields.TotalStake), slots.Uint256(v.Stake))
	m.Set(field(fields.Owner), slots.Address(admin))
	m.Set(field(fields.StakeSnapshot), slots.Uint256(v.Stake))
	m.Set(field(fields.PendingWithdrawStake), slots.Uint(0))
	m.Set(field(fields.PendingWithdrawWindow), slots.Uint(0))

	active := slots.Uint(st.ActivePoolIDs)
	m.Set(active, slots.Uint(uint64(total)))
	m.Set(slots.ArrayElementSlot(active, uint64(v.Index)), poolID)

	m.Set(slots.Uint(st.ChainConfig), slots.Address(layout.ChainConfigAddress))
	return m, nil
}

// StakingCounters returns the scalar words written once per genesis after all
// validators: the epoch counter and the aggregate stake.
func StakingCounters(totalStake *uint256.Int) slots.Map {
	m := slots.NewMap()
	m.Set(slots.Uint(layout.Staking.Epoch), slots.Uint(0))
	m.Set(slots.Uint(layout.Staking.TotalStake), slots.Uint256(totalStake))
	m.Set(slots.Uint(layout.Staking.ChainConfig), slots.Address(layout.ChainConfigAddress))
	return m
}

func strip0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

func decodeHexField(name, s string) ([]byte, error) {
	s = strip0x(s)
	if s == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyField, name)
	}
	raw, err := hexutil.Decode("0x" + s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedHex, name, err)
	}
	return raw, nil
}
