package assetlock

import (
	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// PendingRelease returns the steps still needed to give the asset back,
// in the only safe order: thaw, optional transfer to newOwner, remove the
// freeze delegate, remove the transfer delegate. The registry refuses to
// remove a frozen delegate or move a frozen asset, so thaw must come first.
// A zero newOwner releases without a transfer.
func (m *Manager) PendingRelease(l Lock, newOwner types.AccountID) ([]Step, error) {
	info, err := m.registry.Asset(l.Asset)
	if err != nil {
		return nil, err
	}
	freeze, err := m.registry.Delegate(l.Asset, asset.FreezeDelegate)
	if err != nil {
		return nil, err
	}
	transfer, err := m.registry.Delegate(l.Asset, asset.TransferDelegate)
	if err != nil {
		return nil, err
	}

	heldFreeze := freeze != nil && freeze.Authority == l.Authority
	heldTransfer := transfer != nil && transfer.Authority == l.Authority

	var steps []Step
	if heldFreeze && freeze.Frozen {
		steps = append(steps, StepThaw)
	}
	if !newOwner.IsZero() && info.Owner != newOwner {
		steps = append(steps, StepTransferAsset)
	}
	if heldFreeze {
		steps = append(steps, StepRemoveFreeze)
	}
	if heldTransfer {
		steps = append(steps, StepRemoveTransferDelegate)
	}
	return steps, nil
}

// Release returns control of the asset to its owner, or moves it to
// newOwner first when newOwner is set. Delegations installed by other
// parties are left alone.
func (m *Manager) Release(l Lock, newOwner types.AccountID) error {
	steps, err := m.PendingRelease(l, newOwner)
	if err != nil {
		return err
	}
	return m.run(l, steps, newOwner)
}
