package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lan-collab/domain"
	"lan-collab/errors"
)

func TestRegistry_Allocate_Monotonic_UIDs(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When three users log in
	alice, err := registry.Allocate("alice")
	req.NoError(err)
	bob, err := registry.Allocate("bob")
	req.NoError(err)
	carol, err := registry.Allocate("carol")
	req.NoError(err)

	// Then uids are strictly increasing from 1
	req.Equal(domain.UID(1), alice.UID)
	req.Equal(domain.UID(2), bob.UID)
	req.Equal(domain.UID(3), carol.UID)
}

func TestRegistry_Allocate_Rejects_Duplicate_Username(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	_, err := registry.Allocate("alice")
	req.NoError(err)

	// When the same username logs in again
	_, err = registry.Allocate("alice")

	// Then the second login is rejected and no participant is created
	req.ErrorIs(err, errors.ErrUsernameTaken)
	req.Equal(1, registry.Count())
}

func TestRegistry_Allocate_Rejects_Empty_Username(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	_, err := registry.Allocate("")
	req.ErrorIs(err, errors.ErrUsernameRequired)
}

func TestRegistry_UIDs_Never_Reused_After_Release(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice, err := registry.Allocate("alice")
	req.NoError(err)

	// When alice leaves and logs in again
	_, released := registry.Release(alice.UID)
	req.True(released)

	again, err := registry.Allocate("alice")
	req.NoError(err)

	// Then the username is reusable but the uid is fresh
	req.Greater(again.UID, alice.UID)
}

func TestRegistry_Release_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice, err := registry.Allocate("alice")
	req.NoError(err)

	_, released := registry.Release(alice.UID)
	req.True(released)

	// A second release of the same uid is a no-op
	_, released = registry.Release(alice.UID)
	req.False(released)
}

func TestRegistry_Single_Presenter_Invariant(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice, _ := registry.Allocate("alice")
	bob, _ := registry.Allocate("bob")

	// When alice starts presenting
	req.NoError(registry.StartPresenting(alice.UID))

	// Then bob is rejected while the slot is held
	req.ErrorIs(registry.StartPresenting(bob.UID), errors.ErrPresenterBusy)

	presenter, busy := registry.Presenter()
	req.True(busy)
	req.Equal(alice.UID, presenter)

	// When alice stops, bob can take the slot immediately
	req.NoError(registry.StopPresenting(alice.UID))
	req.NoError(registry.StartPresenting(bob.UID))
}

func TestRegistry_StopPresenting_Requires_The_Slot(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	bob, _ := registry.Allocate("bob")

	req.ErrorIs(registry.StopPresenting(bob.UID), errors.ErrNotPresenting)
}

func TestRegistry_Release_Frees_Presenter_Slot(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice, _ := registry.Allocate("alice")
	bob, _ := registry.Allocate("bob")
	req.NoError(registry.StartPresenting(alice.UID))

	// When the presenter disappears without a present_stop
	registry.Release(alice.UID)

	// Then the slot is free for the next taker
	req.NoError(registry.StartPresenting(bob.UID))
}

func TestRegistry_Snapshot_Is_UID_Ordered(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Allocate("carol")
	registry.Allocate("alice")
	registry.Allocate("bob")

	snapshot := registry.Snapshot()

	req.Len(snapshot, 3)
	req.Equal(domain.UID(1), snapshot[0].UID)
	req.Equal(domain.UID(2), snapshot[1].UID)
	req.Equal(domain.UID(3), snapshot[2].UID)
}

func TestRegistry_Expired_Finds_Lapsed_Participants(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice, _ := registry.Allocate("alice")
	bob, _ := registry.Allocate("bob")

	// Given alice went silent
	registry.mu.Lock()
	registry.byUID[alice.UID].LastHeartbeat = time.Now().Add(-time.Minute)
	registry.mu.Unlock()

	lapsed := registry.Expired(30 * time.Second)

	req.Len(lapsed, 1)
	req.Equal(alice.UID, lapsed[0].UID)

	// Touch keeps bob out of the lapsed set
	registry.Touch(bob.UID)
	req.Len(registry.Expired(30*time.Second), 1)
}

func TestRegistry_FindByUsername(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	alice, _ := registry.Allocate("alice")

	found, ok := registry.FindByUsername("alice")
	req.True(ok)
	req.Equal(alice.UID, found.UID)

	// Case-sensitive exact match only
	_, ok = registry.FindByUsername("Alice")
	req.False(ok)
}
