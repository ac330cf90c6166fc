package approvedsite

import (
	"context"
	"fmt"
	"sync"

	"consentd/internal/approval/models"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

// Error Contract:
// - Return sentinel.ErrNotFound when the requested site does not exist
// - Return nil for successful operations
// - Wrap infrastructure failures with context (Postgres implementation)

// InMemoryStore keeps approved sites in memory for tests and development.
// Callers receive copies, so mutations only land through Save.
type InMemoryStore struct {
	mu    sync.RWMutex
	sites map[id.ApprovedSiteID]*models.ApprovedSite
}

// NewInMemory constructs an empty in-memory approved site store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		sites: make(map[id.ApprovedSiteID]*models.ApprovedSite),
	}
}

func (s *InMemoryStore) Create(_ context.Context, site *models.ApprovedSite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sites[site.ID]; exists {
		return fmt.Errorf("approved site %s: %w", site.ID, sentinel.ErrConflict)
	}
	s.sites[site.ID] = clone(site)
	return nil
}

// Save persists the access date of an existing site. Allowed scopes are fixed
// at creation and are not overwritten.
func (s *InMemoryStore) Save(_ context.Context, site *models.ApprovedSite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sites[site.ID]
	if !ok {
		return fmt.Errorf("approved site not found: %w", sentinel.ErrNotFound)
	}
	stored.AccessDate = site.AccessDate
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, siteID id.ApprovedSiteID) (*models.ApprovedSite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	site, ok := s.sites[siteID]
	if !ok {
		return nil, fmt.Errorf("approved site not found: %w", sentinel.ErrNotFound)
	}
	return clone(site), nil
}

func (s *InMemoryStore) ListByClientAndUser(_ context.Context, clientID, userID string) ([]*models.ApprovedSite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ApprovedSite
	for _, site := range s.sites {
		if site.ClientID == clientID && site.UserID == userID {
			out = append(out, clone(site))
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*models.ApprovedSite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ApprovedSite
	for _, site := range s.sites {
		if site.UserID == userID {
			out = append(out, clone(site))
		}
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, siteID id.ApprovedSiteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[siteID]; !ok {
		return fmt.Errorf("approved site not found: %w", sentinel.ErrNotFound)
	}
	delete(s.sites, siteID)
	return nil
}

func clone(site *models.ApprovedSite) *models.ApprovedSite {
	out := *site
	out.AllowedScopes = site.AllowedScopes.Clone()
	if site.TimeoutDate != nil {
		t := *site.TimeoutDate
		out.TimeoutDate = &t
	}
	if site.WhitelistedSiteID != nil {
		ws := *site.WhitelistedSiteID
		out.WhitelistedSiteID = &ws
	}
	return &out
}
