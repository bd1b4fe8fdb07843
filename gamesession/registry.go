package gamesession

import (
	"fmt"
	"sync"
	"time"
)

// Registry maps a channel to its single active session. It is owned by the
// composition root and injected wherever sessions are created, so tests can
// run independent registries side by side.
type Registry struct {
	mu        sync.Mutex
	byChannel map[int64]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byChannel: make(map[int64]*Session),
	}
}

// Register claims the channel for the session. It fails when another
// session already holds the channel and has not ended.
func (r *Registry) Register(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byChannel[s.ChannelID]; ok && !existing.Ended() {
		return fmt.Errorf("channel %d already has an active %s session", s.ChannelID, existing.module.Name())
	}

	r.byChannel[s.ChannelID] = s
	return nil
}

// Get returns the session registered for the channel, or nil.
func (r *Registry) Get(channelID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byChannel[channelID]
}

// Deregister removes the channel's entry if it still belongs to the given
// session. Idempotent: deregistering an absent or replaced entry is a no-op.
func (r *Registry) Deregister(channelID int64, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byChannel[channelID]; ok && existing.ID == sessionID {
		delete(r.byChannel, channelID)
	}
}

// Idle returns sessions whose last activity is older than maxIdle. The idle
// sweeper force-ends them so a stuck lobby cannot hold a channel forever.
func (r *Registry) Idle(maxIdle time.Duration) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idle []*Session
	cutoff := time.Now().Add(-maxIdle)
	for _, s := range r.byChannel {
		if s.LastActivity().Before(cutoff) {
			idle = append(idle, s)
		}
	}
	return idle
}
