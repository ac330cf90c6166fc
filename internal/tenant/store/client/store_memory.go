package client

import (
	"context"
	"fmt"
	"sync"

	"consentd/internal/tenant/models"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

// InMemory indexes clients by ID and by OAuth client_id.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.ClientID]*models.Client
	byOAuth map[string]id.ClientID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.ClientID]*models.Client),
		byOAuth: make(map[string]id.ClientID),
	}
}

// Create rejects a duplicate ID or OAuth client_id with sentinel.ErrConflict.
func (s *InMemory) Create(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[c.ID]; ok {
		return fmt.Errorf("client already exists: %w", sentinel.ErrConflict)
	}
	if _, ok := s.byOAuth[c.OAuthClientID]; ok {
		return fmt.Errorf("client_id already registered: %w", sentinel.ErrConflict)
	}
	s.byID[c.ID] = clone(c)
	s.byOAuth[c.OAuthClientID] = c.ID
	return nil
}

// Update replaces name, scopes and status. The OAuth client_id is immutable.
func (s *InMemory) Update(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[c.ID]
	if !ok {
		return fmt.Errorf("client not found: %w", sentinel.ErrNotFound)
	}
	updated := clone(c)
	updated.OAuthClientID = existing.OAuthClientID
	updated.CreatedAt = existing.CreatedAt
	s.byID[c.ID] = updated
	return nil
}

func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[clientID]
	if !ok {
		return nil, fmt.Errorf("client not found: %w", sentinel.ErrNotFound)
	}
	return clone(c), nil
}

func (s *InMemory) FindByOAuthClientID(_ context.Context, oauthClientID string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clientID, ok := s.byOAuth[oauthClientID]
	if !ok {
		return nil, fmt.Errorf("client not found: %w", sentinel.ErrNotFound)
	}
	return clone(s.byID[clientID]), nil
}

func clone(c *models.Client) *models.Client {
	out := *c
	out.AllowedScopes = c.AllowedScopes.Clone()
	return &out
}
