package verifier

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"
)

// Committed events are published as program log lines of the form
//
//	Program data: base64(discriminator || payload)
//
// where the discriminator is the first 8 bytes of sha256("event:" + name)
// and the payload is the deterministic CBOR encoding of the event. Clients
// scan transaction logs for the prefix and match on the discriminator.
const (
	ProgramDataPrefix = "Program data: "
	discriminatorSize = 8
)

// NewEventCodec returns the codec used for event payloads.
func NewEventCodec() (commoncbor.CBORCodec, error) {
	codec, err := commoncbor.NewCBORCodec(eventEncOptions, eventDecOptions)
	if err != nil {
		return commoncbor.CBORCodec{}, err
	}
	return codec, nil
}

var (
	eventEncOptions = commoncbor.NewDeterministicEncOpts()
	eventDecOptions = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsForbidden,
	}
)

// EventDiscriminator returns the 8-byte wire discriminator for an event name.
func EventDiscriminator(name string) [discriminatorSize]byte {
	sum := sha256.Sum256([]byte("event:" + name))
	var d [discriminatorSize]byte
	copy(d[:], sum[:])
	return d
}

// EncodeEventLine renders ev as a program data log line.
func EncodeEventLine(codec commoncbor.CBORCodec, ev Event) (string, error) {
	payload, err := codec.MarshalCBOR(ev)
	if err != nil {
		return "", err
	}
	d := EventDiscriminator(ev.EventName())
	return ProgramDataPrefix + base64.StdEncoding.EncodeToString(append(d[:], payload...)), nil
}

// DecodeEventLogs scans logs for the first program data line carrying an
// event named name and decodes its payload into out. It returns false when no
// line matches; lines that are not program data, are not valid base64, are
// shorter than a discriminator, or carry a different discriminator are
// skipped. A matching line whose payload fails to decode returns the error.
func DecodeEventLogs(codec commoncbor.CBORCodec, logs []string, name string, out any) (bool, error) {
	want := EventDiscriminator(name)
	for _, line := range logs {
		data, ok := strings.CutPrefix(line, ProgramDataPrefix)
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil || len(raw) < discriminatorSize {
			continue
		}
		if [discriminatorSize]byte(raw[:discriminatorSize]) != want {
			continue
		}
		if err := codec.UnmarshalInto(raw[discriminatorSize:], out); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// LogEmitter renders committed events as program data lines.
type LogEmitter struct {
	Codec commoncbor.CBORCodec
	Lines []string
}

func (e *LogEmitter) Emit(ev Event) {
	line, err := EncodeEventLine(e.Codec, ev)
	if err != nil {
		// An event that cannot be encoded is dropped rather than failing
		// the already committed operation.
		return
	}
	e.Lines = append(e.Lines, line)
}
