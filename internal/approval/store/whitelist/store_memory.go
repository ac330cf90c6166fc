package whitelist

import (
	"context"
	"fmt"
	"sync"

	"consentd/internal/approval/models"
	"consentd/pkg/platform/sentinel"
)

// InMemoryStore holds at most one whitelist entry per client.
type InMemoryStore struct {
	mu       sync.RWMutex
	byClient map[string]*models.WhitelistedSite
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byClient: make(map[string]*models.WhitelistedSite)}
}

func (s *InMemoryStore) FindByClientID(_ context.Context, clientID string) (*models.WhitelistedSite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.byClient[clientID]
	if !ok {
		return nil, fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	out := *ws
	out.AllowedScopes = ws.AllowedScopes.Clone()
	return &out, nil
}

// Put creates the entry for ws.ClientID, or replaces the scopes and creator
// of an existing one. An existing entry keeps its ID and CreatedAt so approved
// sites materialized from it still reference it.
func (s *InMemoryStore) Put(_ context.Context, ws *models.WhitelistedSite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *ws
	stored.AllowedScopes = ws.AllowedScopes.Clone()
	if existing, ok := s.byClient[ws.ClientID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}
	s.byClient[ws.ClientID] = &stored
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byClient[clientID]; !ok {
		return fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	delete(s.byClient, clientID)
	return nil
}
