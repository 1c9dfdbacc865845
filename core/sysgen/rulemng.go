package sysgen

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/zircuit-labs/genesis-ops/core/layout"
	"github.com/zircuit-labs/genesis-ops/core/slots"
)

// RuleManagerAdministratorSlot holds administrator_ of the rule manager. The
// address shares the word with other packed fields.
func RuleManagerAdministratorSlot() common.Hash {
	return slots.Uint(layout.RuleManager.Administrator)
}

// SetAdministrator replaces the low-order 20 bytes of the template's
// administrator word with admin, keeping whatever is packed above them.
func SetAdministrator(current common.Hash, admin common.Address) common.Hash {
	w := current
	copy(w[common.HashLength-common.AddressLength:], admin.Bytes())
	return w
}
