package assetlock

import (
	"github.com/LeJamon/goAuctiond/internal/core/asset"
)

// PendingAcquire returns the steps still needed to hand control of the
// asset to the lock authority. Every precondition is checked before any
// step is returned, so a refused lock never leaves partial changes.
func (m *Manager) PendingAcquire(l Lock) ([]Step, error) {
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

	// An interrupted acquire may already hold both delegates.
	held := freeze != nil && freeze.Authority == l.Authority && freeze.Frozen
	if info.Owner != l.Owner && !held {
		return nil, ErrNotOwner
	}

	var steps []Step
	switch {
	case freeze == nil:
		steps = append(steps, StepAddFreeze)
	case freeze.Authority == l.Authority:
		if !freeze.Frozen {
			steps = append(steps, StepFreeze)
		}
	case freeze.Authority != l.Owner:
		return nil, ErrFreezeDelegateNotOwner
	case freeze.Frozen:
		return nil, ErrFrozenAsset
	default:
		steps = append(steps, StepApproveFreeze, StepFreeze)
	}

	switch {
	case transfer == nil:
		steps = append(steps, StepAddTransferDelegate)
	case transfer.Authority == l.Authority:
	case transfer.Authority != l.Owner:
		return nil, ErrTransferDelegateNotOwner
	default:
		steps = append(steps, StepApproveTransferDelegate)
	}
	return steps, nil
}

// Acquire freezes the asset under the lock authority and makes it the
// transfer delegate. Afterwards only the authority can thaw or move the
// asset.
func (m *Manager) Acquire(l Lock) error {
	steps, err := m.PendingAcquire(l)
	if err != nil {
		return err
	}
	return m.run(l, steps, l.Owner)
}
