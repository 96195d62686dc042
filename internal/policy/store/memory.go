package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tokengate/internal/policy/models"
	"tokengate/pkg/platform/sentinel"
)

// InMemory keeps policies in a map. Used by tests and by deployments that run
// without a database configured.
type InMemory struct {
	mu       sync.RWMutex
	policies map[uuid.UUID]models.GatingPolicy
	byChat   map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		policies: make(map[uuid.UUID]models.GatingPolicy),
		byChat:   make(map[string]uuid.UUID),
	}
}

// Create inserts a policy unless the chat already has one. The check-then-insert
// is atomic under the store mutex, matching the partial unique index the
// postgres store relies on.
func (s *InMemory) Create(_ context.Context, p *models.GatingPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byChat[p.ChatID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.policies[p.ID]; exists {
		return sentinel.ErrConflict
	}
	s.policies[p.ID] = *p
	s.byChat[p.ChatID] = p.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.GatingPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.policies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *InMemory) FindByChatID(_ context.Context, chatID string) (*models.GatingPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byChat[chatID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p := s.policies[id]
	return &p, nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.policies[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.policies, id)
	delete(s.byChat, p.ChatID)
	return nil
}

func (s *InMemory) DeleteByChatID(_ context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byChat[chatID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.policies, id)
	delete(s.byChat, chatID)
	return nil
}

// Update persists mutable display fields. Identity fields (chat, token, chain,
// threshold) are immutable once created; callers go through delete-then-create
// to change them.
func (s *InMemory) Update(_ context.Context, p *models.GatingPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.policies[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	current.Name = p.Name
	current.ImageURL = p.ImageURL
	current.Description = p.Description
	current.UpdatedAt = p.UpdatedAt
	s.policies[p.ID] = current
	return nil
}
