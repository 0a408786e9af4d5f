package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uranium-Digi/go-data-streams-verifier/accesscontroller"
)

func TestSetAccessController(t *testing.T) {
	ts := newTestSetup(t)
	controllerKey := principalFor("access controller")

	assert.ErrorIs(t,
		ts.v.SetAccessController(ts.acc, principalFor("stranger"), &controllerKey),
		ErrUnauthorized)

	require.NoError(t, ts.v.SetAccessController(ts.acc, ts.owner, &controllerKey))
	assert.Equal(t, controllerKey, ts.state(t).Config.AccessController)
	ev, ok := ts.lastEvent(t).(AccessControllerSet)
	require.True(t, ok)
	assert.Equal(t, controllerKey, ev.AccessController)

	// unbinding stores, and reports, the zero principal
	require.NoError(t, ts.v.SetAccessController(ts.acc, ts.owner, nil))
	assert.True(t, ts.state(t).Config.AccessController.IsZero())
	ev, ok = ts.lastEvent(t).(AccessControllerSet)
	require.True(t, ok)
	assert.True(t, ev.AccessController.IsZero())
}

func TestVerifyAccessGate(t *testing.T) {
	ts := newTestSetup(t)
	compressed, configAccount, _ := generatedReport(t, ts, 16, 6, 5)
	user := principalFor("report consumer")

	// no controller configured: everyone is admitted
	_, err := ts.v.Verify(ts.acc, nil, user, configAccount, compressed)
	require.NoError(t, err)

	controllerKey := principalFor("access controller")
	controller := accesscontroller.NewAccessList(controllerKey, ts.owner)
	require.NoError(t, ts.v.SetAccessController(ts.acc, ts.owner, &controllerKey))

	// the configured controller must be the one presented
	_, err = ts.v.Verify(ts.acc, nil, user, configAccount, compressed)
	assert.ErrorIs(t, err, ErrInvalidAccessController)

	imposter := accesscontroller.NewAccessList(principalFor("imposter"), ts.owner)
	_, err = ts.v.Verify(ts.acc, imposter, user, configAccount, compressed)
	assert.ErrorIs(t, err, ErrInvalidAccessController)

	// authenticated but unlisted
	_, err = ts.v.Verify(ts.acc, controller, user, configAccount, compressed)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, controller.AddAccess(ts.owner, user))
	_, err = ts.v.Verify(ts.acc, controller, user, configAccount, compressed)
	assert.NoError(t, err)

	require.NoError(t, controller.RemoveAccess(ts.owner, user))
	_, err = ts.v.Verify(ts.acc, controller, user, configAccount, compressed)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// Binding the controller to the program's own identifier is the operational
// spelling of "disabled".
func TestVerifyAccessGateProgramSentinel(t *testing.T) {
	ts := newTestSetup(t)
	compressed, configAccount, _ := generatedReport(t, ts, 16, 6, 5)

	programID := ts.programID
	require.NoError(t, ts.v.SetAccessController(ts.acc, ts.owner, &programID))

	_, err := ts.v.Verify(ts.acc, nil, principalFor("anyone"), configAccount, compressed)
	assert.NoError(t, err)
}

func TestAccessListOwnerGating(t *testing.T) {
	owner := principalFor("ac owner")
	list := accesscontroller.NewAccessList(principalFor("ac"), owner)
	user := principalFor("user")

	assert.ErrorIs(t, list.AddAccess(user, user), accesscontroller.ErrNotOwner)
	require.NoError(t, list.AddAccess(owner, user))

	admitted, err := list.HasAccess(user)
	require.NoError(t, err)
	assert.True(t, admitted)

	assert.ErrorIs(t, list.RemoveAccess(user, user), accesscontroller.ErrNotOwner)
	require.NoError(t, list.RemoveAccess(owner, user))
	admitted, err = list.HasAccess(user)
	require.NoError(t, err)
	assert.False(t, admitted)
}
