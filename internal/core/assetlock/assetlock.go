// Package assetlock moves freeze and transfer control of an asset between
// its owner and an auction record. Both directions are ordered step
// sequences over the asset registry. Each step checks whether it already
// took effect, so a sequence interrupted between steps can be run again and
// picks up where it stopped.
package assetlock

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/types"
)

var (
	ErrNotOwner                 = errors.New("lister does not own the asset")
	ErrFrozenAsset              = errors.New("asset is already frozen")
	ErrFreezeDelegateNotOwner   = errors.New("freeze delegate is not controlled by the owner")
	ErrTransferDelegateNotOwner = errors.New("transfer delegate is not controlled by the owner")
)

// Step is one registry mutation of a lock sequence.
type Step int

const (
	// Acquire steps
	StepAddFreeze Step = iota + 1
	StepApproveFreeze
	StepFreeze
	StepAddTransferDelegate
	StepApproveTransferDelegate

	// Release steps
	StepThaw
	StepTransferAsset
	StepRemoveFreeze
	StepRemoveTransferDelegate
)

func (s Step) String() string {
	switch s {
	case StepAddFreeze:
		return "add_freeze"
	case StepApproveFreeze:
		return "approve_freeze"
	case StepFreeze:
		return "freeze"
	case StepAddTransferDelegate:
		return "add_transfer_delegate"
	case StepApproveTransferDelegate:
		return "approve_transfer_delegate"
	case StepThaw:
		return "thaw"
	case StepTransferAsset:
		return "transfer_asset"
	case StepRemoveFreeze:
		return "remove_freeze"
	case StepRemoveTransferDelegate:
		return "remove_transfer_delegate"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Lock names an asset, its lister and the authority that takes control.
type Lock struct {
	Asset     types.AccountID
	Owner     types.AccountID
	Authority types.AccountID
}

// StepError reports the step a sequence stopped at.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Manager runs lock sequences against a registry.
type Manager struct {
	registry asset.Registry
	log      *slog.Logger
}

// New returns a Manager. A nil logger discards output.
func New(registry asset.Registry, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{registry: registry, log: log}
}

func (m *Manager) run(l Lock, steps []Step, newOwner types.AccountID) error {
	for _, step := range steps {
		if err := m.apply(l, step, newOwner); err != nil {
			m.log.Debug("asset lock step failed", "asset", l.Asset, "step", step, "error", err)
			return &StepError{Step: step, Err: err}
		}
		m.log.Debug("asset lock step applied", "asset", l.Asset, "step", step)
	}
	return nil
}

func (m *Manager) apply(l Lock, step Step, newOwner types.AccountID) error {
	switch step {
	case StepAddFreeze:
		return m.registry.AddDelegate(l.Asset, l.Owner, asset.Delegate{
			Kind:      asset.FreezeDelegate,
			Authority: l.Authority,
			Frozen:    true,
		})
	case StepApproveFreeze:
		return m.registry.ApproveDelegateAuthority(l.Asset, asset.FreezeDelegate, l.Owner, l.Authority)
	case StepFreeze:
		return m.registry.UpdateFreeze(l.Asset, l.Authority, true)
	case StepAddTransferDelegate:
		return m.registry.AddDelegate(l.Asset, l.Owner, asset.Delegate{
			Kind:      asset.TransferDelegate,
			Authority: l.Authority,
		})
	case StepApproveTransferDelegate:
		return m.registry.ApproveDelegateAuthority(l.Asset, asset.TransferDelegate, l.Owner, l.Authority)
	case StepThaw:
		return m.registry.UpdateFreeze(l.Asset, l.Authority, false)
	case StepTransferAsset:
		return m.registry.Transfer(l.Asset, l.Authority, newOwner)
	case StepRemoveFreeze:
		return m.registry.RemoveDelegate(l.Asset, asset.FreezeDelegate, l.Authority)
	case StepRemoveTransferDelegate:
		return m.registry.RemoveDelegate(l.Asset, asset.TransferDelegate, l.Authority)
	default:
		return fmt.Errorf("unknown step %d", int(step))
	}
}
