package service

import (
	"context"
	"errors"
	"log/slog"

	"consentd/internal/approval/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/sentinel"
	"consentd/pkg/requestcontext"
)

// SiteRegistry is the read/revoke side of approved-site storage.
type SiteRegistry interface {
	ListByUser(ctx context.Context, userID string) ([]*models.ApprovedSite, error)
	FindByID(ctx context.Context, siteID id.ApprovedSiteID) (*models.ApprovedSite, error)
	Delete(ctx context.Context, siteID id.ApprovedSiteID) error
}

// WhitelistRegistry is the administrative side of whitelist storage.
type WhitelistRegistry interface {
	FindByClientID(ctx context.Context, clientID string) (*models.WhitelistedSite, error)
	Put(ctx context.Context, ws *models.WhitelistedSite) error
	Delete(ctx context.Context, clientID string) error
}

// Manager lets users review and revoke their standing grants and lets
// operators maintain the whitelist.
type Manager struct {
	sites     SiteRegistry
	whitelist WhitelistRegistry
	logger    *slog.Logger
}

func NewManager(sites SiteRegistry, whitelist WhitelistRegistry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{sites: sites, whitelist: whitelist, logger: logger}
}

// ListSites returns the user's approved sites, expired ones included.
func (m *Manager) ListSites(ctx context.Context, userID string) ([]*models.ApprovedSite, error) {
	sites, err := m.sites.ListByUser(ctx, userID)
	if err != nil {
		return nil, translateStoreError(err, "failed to list approved sites")
	}
	return sites, nil
}

// RevokeSite deletes one of the user's approved sites. Sites owned by someone
// else are reported as not found.
func (m *Manager) RevokeSite(ctx context.Context, userID string, siteID id.ApprovedSiteID) error {
	site, err := m.sites.FindByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "approved site not found")
		}
		return translateStoreError(err, "failed to load approved site")
	}
	if site.UserID != userID {
		return dErrors.New(dErrors.CodeNotFound, "approved site not found")
	}
	if err := m.sites.Delete(ctx, siteID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "approved site not found")
		}
		return translateStoreError(err, "failed to delete approved site")
	}
	m.logger.InfoContext(ctx, "approved site revoked",
		"request_id", requestcontext.RequestID(ctx),
		"approved_site", siteID.String(),
		"client_id", site.ClientID,
	)
	return nil
}

// PutWhitelist creates or replaces the whitelist entry for a client.
func (m *Manager) PutWhitelist(ctx context.Context, clientID string, scopes models.ScopeSet, creatorUserID string) (*models.WhitelistedSite, error) {
	ws, err := models.NewWhitelistedSite(clientID, scopes, creatorUserID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := m.whitelist.Put(ctx, ws); err != nil {
		return nil, translateStoreError(err, "failed to store whitelist entry")
	}
	// Re-read: an upsert keeps the existing entry's ID.
	stored, err := m.whitelist.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, translateStoreError(err, "failed to load whitelist entry")
	}
	m.logger.InfoContext(ctx, "whitelist entry stored",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", clientID,
		"scopes", stored.AllowedScopes.Slice(),
	)
	return stored, nil
}

// GetWhitelist returns the client's whitelist entry.
func (m *Manager) GetWhitelist(ctx context.Context, clientID string) (*models.WhitelistedSite, error) {
	ws, err := m.whitelist.FindByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "whitelist entry not found")
		}
		return nil, translateStoreError(err, "failed to load whitelist entry")
	}
	return ws, nil
}

// DeleteWhitelist removes the client's whitelist entry. Approved sites already
// materialized from it stay in place.
func (m *Manager) DeleteWhitelist(ctx context.Context, clientID string) error {
	if err := m.whitelist.Delete(ctx, clientID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "whitelist entry not found")
		}
		return translateStoreError(err, "failed to delete whitelist entry")
	}
	m.logger.InfoContext(ctx, "whitelist entry deleted",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", clientID,
	)
	return nil
}
