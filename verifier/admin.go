package verifier

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Uranium-Digi/go-data-streams-verifier/evm"
	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// requireOwner gates the admin surface.
func requireOwner(state *VerifierAccount, caller host.Principal) error {
	if caller != state.Config.Owner {
		return ErrUnauthorized
	}
	return nil
}

// TransferOwnership proposes a new owner. The proposal is idempotent and can
// be overwritten until accepted.
func (v *Verifier) TransferOwnership(acc *host.Account, caller, proposedOwner host.Principal) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if err := requireOwner(state, caller); err != nil {
		return err
	}
	state.Config.ProposedOwner = proposedOwner
	return v.storeAccount(acc, state)
}

// AcceptOwnership completes a transfer. Only the proposed owner may call it;
// the proposal is cleared on acceptance.
func (v *Verifier) AcceptOwnership(acc *host.Account, caller host.Principal) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if caller.IsZero() || caller != state.Config.ProposedOwner {
		return ErrUnauthorized
	}
	state.Config.Owner = state.Config.ProposedOwner
	state.Config.ProposedOwner = host.Principal{}
	return v.storeAccount(acc, state)
}

// SetAccessController binds the access controller consulted by Verify, or
// disables the gate when accessController is nil. Owner only.
func (v *Verifier) SetAccessController(acc *host.Account, caller host.Principal, accessController *host.Principal) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if err := requireOwner(state, caller); err != nil {
		return err
	}
	controller := host.Principal{}
	if accessController != nil {
		controller = *accessController
	}
	state.Config.AccessController = controller
	if err := v.storeAccount(acc, state); err != nil {
		return err
	}
	v.Events.Emit(AccessControllerSet{AccessController: controller})
	return nil
}

// SetConfigWithActivationTime appends a DON config to the history. Owner
// only. signers is sorted before storage so the config id is deterministic;
// activationTime must not be in the future and must be strictly after the
// last config's.
func (v *Verifier) SetConfigWithActivationTime(
	acc *host.Account, caller host.Principal, signers []common.Address, f uint8, activationTime uint32,
) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if err := requireOwner(state, caller); err != nil {
		return err
	}

	if f == 0 {
		return ErrFaultToleranceMustBePositive
	}
	// The comparison is made in int so a large f cannot wrap the byte width
	// of the signer count and sneak past the bound.
	if len(signers) <= 3*int(f) {
		return ErrInsufficientSigners
	}
	if len(signers) > MaxOracles {
		return ErrExcessSigners
	}
	if int64(activationTime) > v.Clock.Now().Unix() {
		return ErrBadActivationTime
	}
	if state.DonConfigs.Len >= MaxConfigs {
		return ErrMaxNumberOfConfigsReached
	}

	sorted := make([]common.Address, len(signers))
	copy(sorted, signers)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return ErrNonUniqueSignatures
		}
	}

	donConfigID := evm.ComputeDonConfigID(evm.EncodeDonConfigID(sorted, f))

	if last := state.DonConfigs.Last(); last != nil {
		// Re-setting the current config would only deepen the history scan
		// for no change in behaviour.
		if last.DonConfigID == donConfigID {
			return ErrDonConfigAlreadyExists
		}
		if last.ActivationTime >= activationTime {
			return ErrBadActivationTime
		}
	}

	config := DonConfig{
		ActivationTime: activationTime,
		DonConfigID:    donConfigID,
		F:              f,
		IsActive:       true,
	}
	for _, signer := range sorted {
		if signer == (common.Address{}) {
			return ErrZeroAddress
		}
		config.Signers.Push(signer)
	}
	state.DonConfigs.Push(config)

	if err := v.storeAccount(acc, state); err != nil {
		return err
	}
	v.Events.Emit(ConfigSet{
		DonConfigID:    donConfigID.String(),
		Signers:        sorted,
		F:              f,
		DonConfigIndex: state.DonConfigs.Len - 1,
	})
	return nil
}

// SetConfig is SetConfigWithActivationTime with the activation time set to
// now.
func (v *Verifier) SetConfig(acc *host.Account, caller host.Principal, signers []common.Address, f uint8) error {
	return v.SetConfigWithActivationTime(acc, caller, signers, f, uint32(v.Clock.Now().Unix()))
}

// SetConfigActive toggles the active flag of the config at index. Owner
// only. A deactivated config still participates in selection by timestamp;
// reports it governs are rejected rather than served by an older config.
func (v *Verifier) SetConfigActive(acc *host.Account, caller host.Principal, index uint64, isActive bool) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if err := requireOwner(state, caller); err != nil {
		return err
	}
	config := state.DonConfigs.At(index)
	if config == nil {
		return ErrDonConfigDoesNotExist
	}
	config.IsActive = isActive
	if err := v.storeAccount(acc, state); err != nil {
		return err
	}
	v.Events.Emit(ConfigActivated{
		DonConfigID: config.DonConfigID.String(),
		IsActive:    isActive,
	})
	return nil
}

// RemoveLatestConfig pops the newest config from the history. Owner only.
func (v *Verifier) RemoveLatestConfig(acc *host.Account, caller host.Principal) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if err := requireOwner(state, caller); err != nil {
		return err
	}
	config, ok := state.DonConfigs.Pop()
	if !ok {
		return ErrDonConfigDoesNotExist
	}
	if err := v.storeAccount(acc, state); err != nil {
		return err
	}
	v.Events.Emit(ConfigRemoved{DonConfigID: config.DonConfigID.String()})
	return nil
}
