package verifier

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Uranium-Digi/go-data-streams-verifier/accesscontroller"
	"github.com/Uranium-Digi/go-data-streams-verifier/evm"
	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// Verify decides whether signedReport is trustworthy: it must decompress and
// decode, every signature must recover to a distinct non-zero address, and
// the recovered set must clear the fault tolerance bound of the config that
// governed the report's timestamp, with every recovered address a member of
// that config.
//
// caller is admitted through the access gate first; configAccount is the
// derived config principal the submitter claims the report belongs to. On
// success the raw report payload is returned byte for byte and a
// ReportVerified event is emitted. Verification never mutates the account:
// resubmitting an identical report repeats the identical outcome.
func (v *Verifier) Verify(
	acc *host.Account,
	controller accesscontroller.AccessController,
	caller host.Principal,
	configAccount host.Principal,
	signedReport []byte,
) ([]byte, error) {
	state, err := v.loadAccount(acc)
	if err != nil {
		return nil, err
	}

	if err := v.gateCaller(state, controller, caller); err != nil {
		return nil, err
	}

	decompressed, err := Decompress(signedReport)
	if err != nil {
		return nil, ErrBadVerification
	}
	sr, err := evm.ParseSignedReport(decompressed)
	if err != nil {
		return nil, ErrBadVerification
	}

	expected := host.DeriveConfigAccount(sr.ReportContext[0], v.Cfg.ProgramID)
	if expected != configAccount {
		return nil, ErrInvalidConfigAccount
	}

	if len(sr.Rs) != len(sr.Ss) {
		return nil, ErrMismatchedSignatures
	}
	if len(sr.Rs) == 0 {
		return nil, ErrNoSigners
	}
	// RawVs carries one parity byte per signature; more signatures than
	// parity bytes is structurally impossible in an honest report.
	if len(sr.Rs) > len(sr.RawVs) {
		return nil, ErrBadVerification
	}

	digest := evm.ReportDigest(sr.ReportData, sr.ReportContext)

	signers := make([]common.Address, 0, len(sr.Rs))
	seen := make(map[common.Address]struct{}, len(sr.Rs))
	for i := range sr.Rs {
		addr, err := evm.RecoverSigner(digest, sr.Rs[i], sr.Ss[i], sr.RawVs[i])
		if err != nil {
			return nil, ErrBadVerification
		}
		if addr == (common.Address{}) {
			return nil, ErrBadVerification
		}
		if _, dup := seen[addr]; dup {
			return nil, ErrBadVerification
		}
		seen[addr] = struct{}{}
		signers = append(signers, addr)
	}

	report, err := evm.ParseReportDetails(sr.ReportData)
	if err != nil {
		return nil, ErrBadVerification
	}

	config := state.DonConfigs.FindByTimestamp(report.ReportTimestamp)
	if config == nil {
		return nil, ErrBadVerification
	}
	if !config.IsActive {
		return nil, ErrConfigDeactivated
	}
	if len(signers) <= int(config.F) {
		return nil, ErrBadVerification
	}
	for _, signer := range signers {
		if !config.Signers.Contains(signer) {
			return nil, ErrBadVerification
		}
	}

	var feedID [32]byte
	copy(feedID[:], report.FeedID)
	v.Events.Emit(ReportVerified{FeedID: feedID, Requester: caller})
	v.Log.Debugf("report verified: feed=%x signers=%d", feedID, len(signers))

	// The decoded views die with the decompressed buffer; the payload is
	// copied out at the API boundary.
	return append([]byte(nil), sr.ReportData...), nil
}

// gateCaller applies the access gate. A zero stored controller, or one bound
// to the program's own identifier, admits every caller. Otherwise the
// supplied controller must be the stored one and must list the caller.
func (v *Verifier) gateCaller(
	state *VerifierAccount, controller accesscontroller.AccessController, caller host.Principal,
) error {
	stored := state.Config.AccessController
	if stored.IsZero() || stored == v.Cfg.ProgramID {
		return nil
	}
	if controller == nil || controller.Key() != stored {
		return ErrInvalidAccessController
	}
	admitted, err := controller.HasAccess(caller)
	if err != nil || !admitted {
		return ErrUnauthorized
	}
	return nil
}
