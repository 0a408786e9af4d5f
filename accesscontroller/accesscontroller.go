// Package accesscontroller defines the external membership oracle the
// verifier delegates caller admission to, and a concrete list-backed
// implementation of it.
package accesscontroller

import (
	"errors"

	"github.com/Uranium-Digi/go-data-streams-verifier/host"
)

// ErrNotOwner is returned when a mutating call is made by a principal other
// than the access list owner.
var ErrNotOwner = errors.New("only the access list owner may mutate it")

// AccessController answers membership queries for a set of principals. The
// verifier treats it as an opaque collaborator: it reads the identity so it
// can be matched against the configured controller, and it asks whether a
// caller is admitted.
type AccessController interface {
	// Key is the principal the controller is known by on the host.
	Key() host.Principal
	// HasAccess reports whether user is admitted.
	HasAccess(user host.Principal) (bool, error)
}

// AccessList is an owner-administered AccessController.
type AccessList struct {
	key     host.Principal
	owner   host.Principal
	members map[host.Principal]struct{}
}

// NewAccessList creates an empty access list identified by key and
// administered by owner.
func NewAccessList(key, owner host.Principal) *AccessList {
	return &AccessList{
		key:     key,
		owner:   owner,
		members: map[host.Principal]struct{}{},
	}
}

func (l *AccessList) Key() host.Principal { return l.key }

func (l *AccessList) HasAccess(user host.Principal) (bool, error) {
	_, ok := l.members[user]
	return ok, nil
}

// AddAccess admits user. Owner only.
func (l *AccessList) AddAccess(caller, user host.Principal) error {
	if caller != l.owner {
		return ErrNotOwner
	}
	l.members[user] = struct{}{}
	return nil
}

// RemoveAccess revokes user. Owner only.
func (l *AccessList) RemoveAccess(caller, user host.Principal) error {
	if caller != l.owner {
		return ErrNotOwner
	}
	delete(l.members, user)
	return nil
}
