// Package store persists issued invite credentials so repeat requests
// from the same wallet reuse the original link instead of minting a
// new one.
package store

import (
	"context"
	"sync"
	"time"

	"tokengate/internal/invite"
	"tokengate/pkg/platform/sentinel"
)

type memoryEntry struct {
	credential invite.Credential
	expiresAt  time.Time
}

// InMemory is a map-backed issued-credential store. Entries expire on
// read once their TTL elapses. Suitable for tests and single-process
// deployments.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   func() time.Time
}

// NewInMemory creates an empty in-memory store with the given entry TTL.
func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

// WithClock overrides the time source. Used in tests.
func (m *InMemory) WithClock(clock func() time.Time) *InMemory {
	m.clock = clock
	return m
}

func issueKey(policyID, wallet string) string {
	return policyID + ":" + wallet
}

// Find returns the credential previously saved for the policy and
// wallet, or sentinel.ErrNotFound if none exists or it has expired.
func (m *InMemory) Find(_ context.Context, policyID, wallet string) (invite.Credential, error) {
	m.mu.RLock()
	entry, ok := m.entries[issueKey(policyID, wallet)]
	m.mu.RUnlock()

	if !ok {
		return invite.Credential{}, sentinel.ErrNotFound
	}
	if !m.clock().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, issueKey(policyID, wallet))
		m.mu.Unlock()
		return invite.Credential{}, sentinel.ErrNotFound
	}
	return entry.credential, nil
}

// Save records the credential for the policy and wallet, replacing any
// prior entry.
func (m *InMemory) Save(_ context.Context, policyID, wallet string, cred invite.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[issueKey(policyID, wallet)] = memoryEntry{
		credential: cred,
		expiresAt:  m.clock().Add(m.ttl),
	}
	return nil
}
