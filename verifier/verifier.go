// Package verifier decides whether a compressed, EVM-ABI encoded signed
// oracle report carries enough valid signatures from a currently authorized
// signer set. It owns the DON config history the decision is made against,
// the admin surface that maintains that history, and the access gate in
// front of verification.
package verifier

import (
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// InitialAccountSize is the allocation made by Initialize. It is smaller
// than AccountDataSize on purpose: hosts cap single-step account creation,
// so the account is created small and grown with ReallocAccount before
// InitializeAccountData runs.
const InitialAccountSize = 10 * 1024

// VerifierConfig carries the construction-time configuration.
type VerifierConfig struct {
	// ProgramID is the verifier's own principal. It seeds config account
	// derivation, and an access controller bound to it means "disabled".
	ProgramID host.Principal
}

// Verifier executes the operations surface against a host account. It holds
// no report or config state itself; all persistent state lives in the
// account and is committed atomically per operation.
type Verifier struct {
	Cfg    VerifierConfig
	Log    logger.Logger
	Clock  host.Clock
	Events Emitter
}

func NewVerifier(cfg VerifierConfig, log logger.Logger, clock host.Clock, events Emitter) *Verifier {
	v := &Verifier{
		Cfg:    cfg,
		Log:    log,
		Clock:  clock,
		Events: events,
	}
	if v.Clock == nil {
		v.Clock = host.WallClock{}
	}
	if v.Events == nil {
		v.Events = NopEmitter{}
	}
	return v
}

// Initialize allocates the verifier account at its initial size. The account
// is not usable until it has been grown and InitializeAccountData has run.
func (v *Verifier) Initialize(acc *host.Account) error {
	return acc.Allocate(InitialAccountSize)
}

// ReallocAccount grows the account data to size bytes, zero filled.
func (v *Verifier) ReallocAccount(acc *host.Account, size uint32) error {
	if err := acc.Grow(int(size)); err != nil {
		return err
	}
	v.Log.Debugf("reallocated to len: %d", size)
	return nil
}

// InitializeAccountData writes the initial state into a freshly allocated
// account: version 1, the owner, and optionally the access controller.
// Exactly one call succeeds for a given account; re-initialization fails.
func (v *Verifier) InitializeAccountData(acc *host.Account, owner host.Principal, accessController *host.Principal) error {
	state, err := v.loadAccount(acc)
	if err != nil {
		return err
	}
	if state.Version != 0 {
		return ErrInvalidInputs
	}
	state.Version = 1
	state.Config.Owner = owner
	if accessController != nil {
		state.Config.AccessController = *accessController
	}
	return v.storeAccount(acc, state)
}

// loadAccount decodes the account state. Mutating operations work on the
// decoded copy and commit with storeAccount only on success, so a failure
// part way through an operation leaves the account untouched.
func (v *Verifier) loadAccount(acc *host.Account) (*VerifierAccount, error) {
	state := &VerifierAccount{}
	if err := state.UnmarshalBinary(acc.Data); err != nil {
		return nil, err
	}
	return state, nil
}

func (v *Verifier) storeAccount(acc *host.Account, state *VerifierAccount) error {
	data, err := state.MarshalBinary()
	if err != nil {
		return err
	}
	if len(acc.Data) < len(data) {
		return host.ErrAccountTooSmall
	}
	copy(acc.Data, data)
	return nil
}
