package verifier

import (
	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// VerifierAccountConfig is the administrative state of the verifier.
type VerifierAccountConfig struct {
	// Owner may mutate admin state.
	Owner host.Principal
	// ProposedOwner is the pending transferee; zero when no transfer is in
	// flight, zeroed again on acceptance.
	ProposedOwner host.Principal
	// AccessController restricts who may verify. The zero principal, or the
	// program's own identifier, disables the gate.
	AccessController host.Principal
}

// VerifierAccount is the verifier's single persistent state record.
type VerifierAccount struct {
	// Version is 0 until InitializeAccountData runs, 1 thereafter. The
	// guard makes initialization exactly once.
	Version uint8
	Config  VerifierAccountConfig
	// DonConfigs is the history of signer configurations consulted when
	// verifying a report.
	DonConfigs DonConfigs
}
