// Package runtime owns the server-side session state: the participant
// registry and the bounded chat history. It contains no network code.
package runtime

import (
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"lan-collab/domain"
	"lan-collab/errors"
)

// Registry is the single source of truth for logged-in participants.
// The uid index and the username index are kept consistent under one lock:
// every live username maps to exactly one uid and vice versa.
type Registry struct {
	mu        sync.RWMutex
	nextUID   domain.UID
	byUID     map[domain.UID]*domain.Participant
	byName    map[string]domain.UID
	presenter domain.UID // 0 while the slot is free
}

func NewRegistry() *Registry {
	return &Registry{
		nextUID: 1,
		byUID:   make(map[domain.UID]*domain.Participant),
		byName:  make(map[string]domain.UID),
	}
}

// Allocate reserves a username and issues the next uid. Usernames are
// matched case-sensitively and never shared between live participants.
func (r *Registry) Allocate(username string) (domain.Participant, error) {
	if username == "" {
		return domain.Participant{}, errors.ErrUsernameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[username]; taken {
		return domain.Participant{}, errors.ErrUsernameTaken
	}

	now := time.Now()
	p := &domain.Participant{
		UID:           r.nextUID,
		Username:      username,
		JoinTime:      now,
		LastHeartbeat: now,
	}
	r.nextUID++

	r.byUID[p.UID] = p
	r.byName[p.Username] = p.UID
	return *p, nil
}

// Release removes a participant and frees its username for reuse.
// The second return value reports whether the uid was still registered,
// which keeps the cleanup path idempotent.
func (r *Registry) Release(uid domain.UID) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUID[uid]
	if !ok {
		return domain.Participant{}, false
	}
	delete(r.byUID, uid)
	delete(r.byName, p.Username)
	if r.presenter == uid {
		r.presenter = 0
	}
	return *p, true
}

func (r *Registry) Find(uid domain.UID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUID[uid]
	if !ok {
		return domain.Participant{}, false
	}
	return *p, true
}

func (r *Registry) FindByUsername(username string) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uid, ok := r.byName[username]
	if !ok {
		return domain.Participant{}, false
	}
	return *r.byUID[uid], true
}

// Touch refreshes a participant's liveness timestamp. Called for every
// inbound control message, not only heartbeats.
func (r *Registry) Touch(uid domain.UID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byUID[uid]; ok {
		p.LastHeartbeat = time.Now()
	}
}

// Expired returns the participants whose last heartbeat is older than ttl.
func (r *Registry) Expired(ttl time.Duration) []domain.Participant {
	cutoff := time.Now().Add(-ttl)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var lapsed []domain.Participant
	for _, p := range r.byUID {
		if p.LastHeartbeat.Before(cutoff) {
			lapsed = append(lapsed, *p)
		}
	}
	return lapsed
}

// StartPresenting claims the presenter slot for uid. At most one
// participant holds the slot at any instant.
func (r *Registry) StartPresenting(uid domain.UID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUID[uid]
	if !ok {
		return errors.ErrUnknownUID
	}
	if r.presenter != 0 && r.presenter != uid {
		return errors.ErrPresenterBusy
	}
	r.presenter = uid
	p.IsPresenting = true
	return nil
}

// StopPresenting releases the slot if uid holds it.
func (r *Registry) StopPresenting(uid domain.UID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUID[uid]
	if !ok || r.presenter != uid {
		return errors.ErrNotPresenting
	}
	r.presenter = 0
	p.IsPresenting = false
	return nil
}

// Presenter reports which participant currently holds the slot.
func (r *Registry) Presenter() (domain.UID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.presenter, r.presenter != 0
}

// Snapshot returns a uid-ordered copy of all logged-in participants.
func (r *Registry) Snapshot() []domain.Participant {
	r.mu.RLock()
	participants := lo.Map(lo.Values(r.byUID), func(p *domain.Participant, _ int) domain.Participant {
		return *p
	})
	r.mu.RUnlock()

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].UID < participants[j].UID
	})
	return participants
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUID)
}
