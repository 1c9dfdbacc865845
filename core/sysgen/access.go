package sysgen

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/zircuit-labs/genesis-ops/core/layout"
	"github.com/zircuit-labs/genesis-ops/core/slots"
)

// DefaultAdminRoleSlot is where _roles[DEFAULT_ADMIN_ROLE] lives for the
// AccessControl storage rooted at anchor.
func DefaultAdminRoleSlot(anchor common.Hash) common.Hash {
	ac := layout.AccessControl
	roles := slots.AddSlot(anchor, ac.Roles)
	return slots.MappingSlot(slots.Uint(ac.DefaultAdminRole), roles)
}

// HasRoleSlot is where _roles[DEFAULT_ADMIN_ROLE].hasRole[account] lives.
func HasRoleSlot(anchor common.Hash, account common.Address) common.Hash {
	return slots.MappingSlot(slots.Address(account), DefaultAdminRoleSlot(anchor))
}

// GrantDefaultAdmin emulates _grantRole(DEFAULT_ADMIN_ROLE, account).
//
// With isPrimaryAdmin set, the role's adminRole is also written as
// DEFAULT_ADMIN_ROLE, which makes the role administer itself. Only the
// configured admin should be granted that way. Granting twice is a no-op.
func GrantDefaultAdmin(m slots.Map, anchor common.Hash, account common.Address, isPrimaryAdmin bool) {
	m.Set(HasRoleSlot(anchor, account), slots.Bool(true))
	if isPrimaryAdmin {
		role := DefaultAdminRoleSlot(anchor)
		m.Set(slots.AddSlot(role, layout.AccessControl.RoleAdminRole), slots.Uint(layout.AccessControl.DefaultAdminRole))
	}
}

// FreezeInitializers emulates _disableInitializers(): _initialized is set to
// type(uint64).max and _initializing to false, both packed in the anchor word.
func FreezeInitializers(m slots.Map, anchor common.Hash) error {
	in := layout.Initializable
	w, err := slots.Pack(
		slots.Field{Value: slots.MaxOfSize(in.Initialized.Size), Offset: in.Initialized.Offset, Size: in.Initialized.Size},
		slots.Field{Value: uint256.NewInt(0), Offset: in.Initializing.Offset, Size: in.Initializing.Size},
	)
	if err != nil {
		return err
	}
	m.Set(anchor, w)
	return nil
}

// Bootstrap grants the default admin role to admin (as primary) and to the
// intrinsic sender, then freezes the initializers, using the anchors of c.
func Bootstrap(m slots.Map, c layout.Contract, admin common.Address) error {
	GrantDefaultAdmin(m, c.AccessControl, admin, true)
	GrantDefaultAdmin(m, c.AccessControl, layout.IntrinsicSender, false)
	return FreezeInitializers(m, c.Initializable)
}
