package verifier

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// Event is implemented by every verifier event. Events are emitted only when
// the operation that produced them has committed; a failed operation emits
// nothing.
type Event interface {
	// EventName is the stable name the event is identified by on the wire.
	EventName() string
}

// ConfigSet is emitted when a DON config is appended to the history.
type ConfigSet struct {
	// DonConfigID is the 24-byte id, lowercase hex.
	DonConfigID string `cbor:"1,keyasint"`
	// Signers is the stored (sorted) signer set.
	Signers []common.Address `cbor:"2,keyasint"`
	F       uint8            `cbor:"3,keyasint"`
	// DonConfigIndex is the history index the config was stored at.
	DonConfigIndex uint16 `cbor:"4,keyasint"`
}

func (ConfigSet) EventName() string { return "ConfigSet" }

// ConfigActivated is emitted when a config's active flag is toggled.
type ConfigActivated struct {
	DonConfigID string `cbor:"1,keyasint"`
	IsActive    bool   `cbor:"2,keyasint"`
}

func (ConfigActivated) EventName() string { return "ConfigActivated" }

// ConfigRemoved is emitted when the latest config is popped.
type ConfigRemoved struct {
	DonConfigID string `cbor:"1,keyasint"`
}

func (ConfigRemoved) EventName() string { return "ConfigRemoved" }

// ReportVerified is emitted for every successfully verified report.
type ReportVerified struct {
	FeedID    [32]byte       `cbor:"1,keyasint"`
	Requester host.Principal `cbor:"2,keyasint"`
}

func (ReportVerified) EventName() string { return "ReportVerified" }

// AccessControllerSet is emitted when the access controller binding changes.
// A disabled gate is reported as the zero principal.
type AccessControllerSet struct {
	AccessController host.Principal `cbor:"1,keyasint"`
}

func (AccessControllerSet) EventName() string { return "AccessControllerSet" }

// Emitter receives events from committed operations.
type Emitter interface {
	Emit(ev Event)
}

// NopEmitter discards events.
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}

// Recorder collects events in order. It is the Emitter tests use.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}
